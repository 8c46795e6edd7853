package wire

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// bomUTF8 is the UTF-8 Byte Order Mark
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize performs input normalization at the wire boundary:
// 1. Strips UTF-8 BOM if present
// 2. Applies Unicode NFC normalization
//
// Identifier text inside a wire program becomes resolver map keys verbatim,
// so two encodings of the same visible name ("café" in NFC vs NFD) must
// decode to identical bytes or they would silently resolve as two distinct
// bindings.
func Normalize(data []byte) []byte {
	data = bytes.TrimPrefix(data, bomUTF8)

	// IsNormal() is fast and avoids allocation if already normalized
	if !norm.NFC.IsNormal(data) {
		data = norm.NFC.Bytes(data)
	}

	return data
}
