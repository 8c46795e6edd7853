package repl

import (
	"bytes"
	"strings"
	"testing"
)

const fnDouble = `{"kind":"func","name":"double","params":[{"name":"n","annot":{"name":"i32"}}],
  "body":{"kind":"binop","op":"+","left":{"kind":"ident","name":"n"},"right":{"kind":"ident","name":"n"}}}`

const fnBroken = `{"kind":"func","name":"broken",
  "body":{"kind":"if","cond":{"kind":"lit","lit_kind":"bool","value":true},
    "then":{"kind":"lit","lit_kind":"int","value":1},
    "else":{"kind":"lit","lit_kind":"bool","value":false}}}`

func TestSubmitAcceptedDeclarationPrintsScheme(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.Submit(fnDouble, &out)

	if len(r.decls) != 1 {
		t.Fatalf("expected 1 accepted declaration, got %d", len(r.decls))
	}
	if !strings.Contains(out.String(), "(Int32) -> Int32") {
		t.Fatalf("expected inferred scheme in output, got %q", out.String())
	}
}

func TestSubmitRejectedDeclarationRollsBack(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.Submit(fnDouble, &out)
	out.Reset()

	r.Submit(fnBroken, &out)
	if len(r.decls) != 1 {
		t.Fatalf("rejected declaration should roll back; have %d decls", len(r.decls))
	}
	if !strings.Contains(out.String(), "type mismatch") {
		t.Fatalf("expected a mismatch diagnostic, got %q", out.String())
	}

	// The surviving module still checks: a later reference to double works.
	out.Reset()
	r.Submit(`{"kind":"func","name":"quad","params":[{"name":"n","annot":{"name":"i32"}}],
	  "body":{"kind":"call","func":{"kind":"ident","name":"double"},
	    "args":[{"kind":"call","func":{"kind":"ident","name":"double"},
	      "args":[{"kind":"ident","name":"n"}]}]}}`, &out)
	if len(r.decls) != 2 {
		t.Fatalf("expected 2 accepted declarations, got %d", len(r.decls))
	}
	if !strings.Contains(out.String(), "(Int32) -> Int32") {
		t.Fatalf("expected quad's scheme in output, got %q", out.String())
	}
}

func TestSubmitInvalidJSONRejectedWithoutStateChange(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.Submit(`{"kind":`, &out)
	if len(r.decls) != 0 {
		t.Fatalf("invalid JSON must not be recorded; have %d decls", len(r.decls))
	}
	if out.Len() == 0 {
		t.Fatal("expected an error message")
	}
}

func TestHandleCommandReset(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.Submit(fnDouble, &out)
	r.HandleCommand(":reset", &out)
	if len(r.decls) != 0 {
		t.Fatalf("reset should clear the module; have %d decls", len(r.decls))
	}
}

func TestHandleCommandNames(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.Submit(fnDouble, &out)
	out.Reset()
	r.HandleCommand(":names", &out)
	if !strings.Contains(out.String(), "double") {
		t.Fatalf("expected double in :names output, got %q", out.String())
	}
}
