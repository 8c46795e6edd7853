package wire

import (
	"testing"

	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/infer"
	"github.com/sunholo/juno/internal/resolve"
	"github.com/sunholo/juno/internal/testutil"
	"github.com/sunholo/juno/internal/types"
)

// A JSON program exercising every declaration kind, decoded and pushed
// through the full resolve+infer pipeline.
const fullProgram = `{
  "modules": [
    {
      "path": ["main"],
      "top_levels": [
        {
          "kind": "type",
          "name": "Option",
          "is_pub": true,
          "type_params": ["T"],
          "constructors": [
            {"name": "Some", "args": [{"name": "T"}]},
            {"name": "None", "args": []}
          ]
        },
        {
          "kind": "extern",
          "name": "putchar",
          "param_types": [{"name": "char"}],
          "ret_type": {"name": "i32"}
        },
        {
          "kind": "oper",
          "symbol": "**",
          "assoc": "right",
          "precedence": 10,
          "params": [
            {"name": "base", "annot": {"name": "i32"}},
            {"name": "exp", "annot": {"name": "i32"}}
          ],
          "body": {
            "kind": "binop", "op": "*",
            "left": {"kind": "ident", "name": "base"},
            "right": {"kind": "ident", "name": "exp"}
          }
        },
        {
          "kind": "func",
          "name": "unwrap",
          "params": [{"name": "o"}],
          "body": {
            "kind": "match",
            "scrutinee": {"kind": "ident", "name": "o"},
            "arms": [
              {"pattern": {"kind": "pcon", "con": "Some", "args": ["x"]},
               "body": {"kind": "ident", "name": "x"}},
              {"pattern": {"kind": "pwild"},
               "body": {"kind": "lit", "lit_kind": "int", "value": 0}}
            ]
          }
        },
        {
          "kind": "func",
          "name": "main",
          "body": {
            "kind": "block",
            "decls": [
              {"kind": "dvar", "name": "x", "mutable": true,
               "value": {"kind": "lit", "lit_kind": "int", "value": 1}},
              {"kind": "dexpr", "value": {
                "kind": "assign",
                "lhs": {"kind": "ident", "name": "x"},
                "rhs": {"kind": "binop", "op": "**",
                  "left": {"kind": "ident", "name": "x"},
                  "right": {"kind": "lit", "lit_kind": "int", "value": 12}}
              }}
            ],
            "result": {"kind": "call",
              "func": {"kind": "ident", "name": "unwrap"},
              "args": [{"kind": "call",
                "func": {"kind": "ident", "name": "Some"},
                "args": [{"kind": "ident", "name": "x"}]}]}
          }
        }
      ]
    }
  ]
}`

func TestDecodeProgramAndAnalyze(t *testing.T) {
	prog, err := DecodeProgram([]byte(fullProgram))
	testutil.RequireNoError(t, err)

	if len(prog.Modules) != 1 || len(prog.Modules[0].TopLevels) != 5 {
		t.Fatalf("unexpected program shape: %d modules", len(prog.Modules))
	}

	testutil.RequireNoError(t, resolve.Resolve(prog))
	typed, res, err := infer.AnalyzeWithSchemes(prog)
	testutil.RequireNoError(t, err)

	powKey := ast.NewQualified([]string{"main"}, "**").Key()
	pow, ok := res.Schemes[powKey]
	if !ok {
		t.Fatal("no scheme recorded for **")
	}
	wantPow := &types.TFunc{Params: []types.Type{types.TInt32, types.TInt32}, Return: types.TInt32}
	testutil.AssertTypeEqual(t, types.Type(wantPow), pow.Body)

	// main's result is unwrap(Some(x)) and x pins to Int32 via **.
	mainDecl := typed.Modules[0].TopLevels[4].(*ast.FuncDecl)
	testutil.AssertTypeEqual(t, types.TInt32, mainDecl.Body.GetType())
}

func TestDecodeTopLevelKinds(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  interface{}
	}{
		{"func", `{"kind":"func","name":"f","body":{"kind":"lit","lit_kind":"unit"}}`, &ast.FuncDecl{}},
		{"oper", `{"kind":"oper","symbol":"+","assoc":"left","precedence":6,"body":{"kind":"lit","lit_kind":"int","value":0}}`, &ast.OperDecl{}},
		{"type", `{"kind":"type","name":"T","constructors":[{"name":"MkT","args":[]}]}`, &ast.TypeDecl{}},
		{"extern", `{"kind":"extern","name":"exit","param_types":[{"name":"i32"}],"ret_type":{"name":"unit"}}`, &ast.ExternDecl{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tl, err := DecodeTopLevel([]byte(tc.input))
			testutil.RequireNoError(t, err)
			switch tc.want.(type) {
			case *ast.FuncDecl:
				if _, ok := tl.(*ast.FuncDecl); !ok {
					t.Fatalf("expected FuncDecl, got %T", tl)
				}
			case *ast.OperDecl:
				if _, ok := tl.(*ast.OperDecl); !ok {
					t.Fatalf("expected OperDecl, got %T", tl)
				}
			case *ast.TypeDecl:
				if _, ok := tl.(*ast.TypeDecl); !ok {
					t.Fatalf("expected TypeDecl, got %T", tl)
				}
			case *ast.ExternDecl:
				if _, ok := tl.(*ast.ExternDecl); !ok {
					t.Fatalf("expected ExternDecl, got %T", tl)
				}
			}
		})
	}
}

func TestDecodeUnknownKindsRejected(t *testing.T) {
	cases := []struct {
		name  string
		do    func() error
	}{
		{"top-level", func() error { _, err := DecodeTopLevel([]byte(`{"kind":"module"}`)); return err }},
		{"expression", func() error {
			_, err := DecodeTopLevel([]byte(`{"kind":"func","name":"f","body":{"kind":"lambda"}}`))
			return err
		}},
		{"pattern", func() error {
			_, err := DecodeTopLevel([]byte(`{"kind":"func","name":"f","body":{"kind":"match","scrutinee":{"kind":"lit","lit_kind":"int","value":1},"arms":[{"pattern":{"kind":"ptuple"},"body":{"kind":"lit","lit_kind":"int","value":1}}]}}`))
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.do() == nil {
				t.Fatal("expected a decode error, got nil")
			}
		})
	}
}

func TestDecodeRefAndDeref(t *testing.T) {
	input := `{"kind":"func","name":"f","params":[{"name":"p"}],
	  "body":{"kind":"deref","operand":{"kind":"ident","name":"p"}}}`
	tl, err := DecodeTopLevel([]byte(input))
	testutil.RequireNoError(t, err)
	fd := tl.(*ast.FuncDecl)
	if _, ok := fd.Body.(*ast.Deref); !ok {
		t.Fatalf("expected Deref body, got %T", fd.Body)
	}
}
