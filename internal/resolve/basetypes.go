package resolve

// baseTypeNames short-circuit name resolution and are passed through
// untouched (§4.4 "Base type names... short-circuit name resolution").
var baseTypeNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f16": true, "f32": true, "f64": true,
	"char": true, "bool": true, "unit": true, "str": true,
}

func isBaseType(name string) bool {
	return baseTypeNames[name]
}
