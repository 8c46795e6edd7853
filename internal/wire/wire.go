// Package wire implements the JSON encoding of an untyped ast.Program used
// at the cmd/juno boundary (`juno check`, `juno repl`). The core packages
// never see this format — per the spec, no wire format is part of the
// semantic analysis core itself, so its shape is this driver's own design
// decision, using encoding/json per SPEC_FULL's stdlib-use justification.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/sunholo/juno/internal/ast"
)

// Program is the top-level wire envelope: one JSON document per project.
// The REPL does not use it; each REPL submission is a single top-level
// declaration (see DecodeTopLevel).
type Program struct {
	Modules []Module `json:"modules"`
}

// Module mirrors ast.Module with Imports/TopLevels carried as tagged JSON.
type Module struct {
	Path      []string        `json:"path"`
	Imports   []Import        `json:"imports,omitempty"`
	TopLevels []json.RawMessage `json:"top_levels"`
}

type Import struct {
	Path     []string `json:"path"`
	IsPublic bool     `json:"is_public,omitempty"`
}

type node struct {
	Kind string `json:"kind"`
}

// DecodeProgram parses a full wire Program into an *ast.Program. Input is
// normalized first (see Normalize) so identifier text is NFC everywhere the
// resolver keys on it.
func DecodeProgram(data []byte) (*ast.Program, error) {
	var wp Program
	if err := json.Unmarshal(Normalize(data), &wp); err != nil {
		return nil, fmt.Errorf("wire: invalid program: %w", err)
	}
	prog := &ast.Program{Modules: make([]ast.Module, len(wp.Modules))}
	for i, m := range wp.Modules {
		mod, err := decodeModule(m)
		if err != nil {
			return nil, err
		}
		prog.Modules[i] = mod
	}
	return prog, nil
}

// DecodeTopLevel parses a single top-level declaration — the unit the REPL
// accepts per line.
func DecodeTopLevel(data []byte) (ast.TopLevel, error) {
	return decodeTopLevel(Normalize(data))
}

func decodeModule(m Module) (ast.Module, error) {
	out := ast.Module{Path: m.Path}
	for _, imp := range m.Imports {
		out.Imports = append(out.Imports, ast.Import{Path: imp.Path, IsPublic: imp.IsPublic})
	}
	for _, raw := range m.TopLevels {
		tl, err := decodeTopLevel(raw)
		if err != nil {
			return out, err
		}
		out.TopLevels = append(out.TopLevels, tl)
	}
	return out, nil
}

func decodeTopLevel(raw json.RawMessage) (ast.TopLevel, error) {
	var n node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("wire: invalid top-level: %w", err)
	}
	switch n.Kind {
	case "func":
		var w struct {
			IsPub    bool              `json:"is_pub"`
			Name     string            `json:"name"`
			Params   []Param           `json:"params"`
			RetAnnot *TypeAnnot        `json:"ret_annot,omitempty"`
			Body     json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		body, err := decodeExpr(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDecl{
			IsPub:    w.IsPub,
			Name:     w.Name,
			Params:   decodeParams(w.Params),
			RetAnnot: w.RetAnnot.toAST(),
			Body:     body,
		}, nil

	case "extern":
		var w struct {
			Name       string      `json:"name"`
			ParamTypes []TypeAnnot `json:"param_types"`
			RetType    TypeAnnot   `json:"ret_type"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		params := make([]ast.TypeAnnot, len(w.ParamTypes))
		for i, p := range w.ParamTypes {
			params[i] = *p.toAST()
		}
		return &ast.ExternDecl{Name: w.Name, ParamTypes: params, RetType: *w.RetType.toAST()}, nil

	case "type":
		var w struct {
			IsPub        bool     `json:"is_pub"`
			Name         string   `json:"name"`
			TypeParams   []string `json:"type_params"`
			Constructors []struct {
				Name string      `json:"name"`
				Args []TypeAnnot `json:"args"`
			} `json:"constructors"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		ctors := make([]ast.ConstructorDef, len(w.Constructors))
		for i, c := range w.Constructors {
			args := make([]ast.TypeAnnot, len(c.Args))
			for j, a := range c.Args {
				args[j] = *a.toAST()
			}
			ctors[i] = ast.ConstructorDef{Name: c.Name, Args: args}
		}
		return &ast.TypeDecl{IsPub: w.IsPub, Name: w.Name, TypeParams: w.TypeParams, Constructors: ctors}, nil

	case "oper":
		var w struct {
			IsPub    bool            `json:"is_pub"`
			Symbol   string          `json:"symbol"`
			Assoc    string          `json:"assoc"`
			Prec     int             `json:"precedence"`
			Params   []Param         `json:"params"`
			RetAnnot *TypeAnnot      `json:"ret_annot,omitempty"`
			Body     json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		body, err := decodeExpr(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.OperDecl{
			IsPub:    w.IsPub,
			Def:      ast.OpDef{Assoc: decodeAssoc(w.Assoc), Precedence: w.Prec, Symbol: w.Symbol},
			Params:   decodeParams(w.Params),
			RetAnnot: w.RetAnnot.toAST(),
			Body:     body,
		}, nil

	default:
		return nil, fmt.Errorf("wire: unknown top-level kind %q", n.Kind)
	}
}

func decodeAssoc(s string) ast.Assoc {
	switch s {
	case "left":
		return ast.AssocLeft
	case "right":
		return ast.AssocRight
	case "prefix":
		return ast.AssocPrefix
	case "postfix":
		return ast.AssocPostfix
	default:
		return ast.AssocNone
	}
}

// Param mirrors ast.Param.
type Param struct {
	Name  string     `json:"name"`
	Annot *TypeAnnot `json:"annot,omitempty"`
}

func decodeParams(ps []Param) []ast.Param {
	out := make([]ast.Param, len(ps))
	for i, p := range ps {
		out[i] = ast.Param{Name: p.Name, Annot: p.Annot.toAST()}
	}
	return out
}

// TypeAnnot mirrors ast.TypeAnnot; Name is carried as a plain dotted string
// since the wire format only ever describes unqualified surface syntax —
// qualification happens during resolve, never before.
type TypeAnnot struct {
	Name string      `json:"name,omitempty"`
	Args []TypeAnnot `json:"args,omitempty"`
	Ptr  bool        `json:"ptr,omitempty"`
}

func (t *TypeAnnot) toAST() *ast.TypeAnnot {
	if t == nil {
		return nil
	}
	out := ast.TypeAnnot{Name: ast.NewUnqualified(t.Name), Ptr: t.Ptr}
	if len(t.Args) > 0 {
		out.Args = make([]ast.TypeAnnot, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = *a.toAST()
		}
	}
	return &out
}

func decodeExpr(raw json.RawMessage) (ast.Expr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var n node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("wire: invalid expression: %w", err)
	}
	switch n.Kind {
	case "lit":
		var w struct {
			LitKind string      `json:"lit_kind"`
			Value   interface{} `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.Lit{Kind: decodeLitKind(w.LitKind), Value: w.Value}, nil

	case "ident":
		var w struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.Ident{Name: ast.NewUnqualified(w.Name)}, nil

	case "assign":
		var w struct {
			Lhs json.RawMessage `json:"lhs"`
			Rhs json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		lhs, err := decodeExpr(w.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpr(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Lhs: lhs, Rhs: rhs}, nil

	case "block":
		var w struct {
			Decls  []json.RawMessage `json:"decls"`
			Result json.RawMessage   `json:"result"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		decls := make([]ast.Decl, len(w.Decls))
		for i, d := range w.Decls {
			decl, err := decodeDecl(d)
			if err != nil {
				return nil, err
			}
			decls[i] = decl
		}
		result, err := decodeExpr(w.Result)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Decls: decls, Result: result}, nil

	case "if":
		var w struct {
			Cond, Then, Else json.RawMessage
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return decodeTriple(w.Cond, w.Then, w.Else, func(c, t, e ast.Expr) ast.Expr {
			return &ast.If{Cond: c, Then: t, Else: e}
		})

	case "while":
		var w struct {
			Cond, Body json.RawMessage
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(w.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body}, nil

	case "match":
		var w struct {
			Scrutinee json.RawMessage `json:"scrutinee"`
			Arms      []struct {
				Pattern json.RawMessage `json:"pattern"`
				Body    json.RawMessage `json:"body"`
			} `json:"arms"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		scrutinee, err := decodeExpr(w.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]ast.MatchArm, len(w.Arms))
		for i, a := range w.Arms {
			pat, err := decodePattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			body, err := decodeExpr(a.Body)
			if err != nil {
				return nil, err
			}
			arms[i] = ast.MatchArm{Pattern: pat, Body: body}
		}
		return &ast.Match{Scrutinee: scrutinee, Arms: arms}, nil

	case "binop":
		var w struct {
			Op          string `json:"op"`
			Left, Right json.RawMessage
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		left, err := decodeExpr(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(w.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: w.Op, Left: left, Right: right}, nil

	case "unop":
		var w struct {
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(w.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Op: w.Op, Operand: operand}, nil

	case "call":
		var w struct {
			Func json.RawMessage   `json:"func"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		fn, err := decodeExpr(w.Func)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expr, len(w.Args))
		for i, a := range w.Args {
			arg, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &ast.Call{Func: fn, Args: args}, nil

	case "deref":
		return decodeUnary(raw, func(e ast.Expr) ast.Expr { return &ast.Deref{Operand: e} })

	case "ref":
		return decodeUnary(raw, func(e ast.Expr) ast.Expr { return &ast.Ref{Operand: e} })

	case "cast":
		var w struct {
			Operand json.RawMessage `json:"operand"`
			Target  TypeAnnot       `json:"target"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(w.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Cast{Operand: operand, Target: *w.Target.toAST()}, nil

	case "sizeof":
		var w struct {
			Target TypeAnnot `json:"target"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.SizeOf{Target: *w.Target.toAST()}, nil

	case "closure":
		var w struct {
			Params []Param         `json:"params"`
			Body   json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		body, err := decodeExpr(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Closure{Params: decodeParams(w.Params), Body: body}, nil

	case "return":
		return decodeUnary(raw, func(e ast.Expr) ast.Expr { return &ast.Return{Value: e} })

	default:
		return nil, fmt.Errorf("wire: unknown expression kind %q", n.Kind)
	}
}

func decodeUnary(raw json.RawMessage, build func(ast.Expr) ast.Expr) (ast.Expr, error) {
	var w struct {
		Operand json.RawMessage `json:"operand"`
		Value   json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	inner := w.Operand
	if len(inner) == 0 {
		inner = w.Value
	}
	e, err := decodeExpr(inner)
	if err != nil {
		return nil, err
	}
	return build(e), nil
}

func decodeTriple(a, b, c json.RawMessage, build func(x, y, z ast.Expr) ast.Expr) (ast.Expr, error) {
	ax, err := decodeExpr(a)
	if err != nil {
		return nil, err
	}
	bx, err := decodeExpr(b)
	if err != nil {
		return nil, err
	}
	cx, err := decodeExpr(c)
	if err != nil {
		return nil, err
	}
	return build(ax, bx, cx), nil
}

func decodeLitKind(s string) ast.LitKind {
	switch s {
	case "int":
		return ast.IntLit
	case "float":
		return ast.FloatLit
	case "str":
		return ast.StrLit
	case "char":
		return ast.CharLit
	case "bool":
		return ast.BoolLit
	default:
		return ast.UnitLit
	}
}

func decodeDecl(raw json.RawMessage) (ast.Decl, error) {
	var n node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("wire: invalid declaration: %w", err)
	}
	switch n.Kind {
	case "dvar":
		var w struct {
			Name    string          `json:"name"`
			Mutable bool            `json:"mutable"`
			Annot   *TypeAnnot      `json:"annot,omitempty"`
			Value   json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		value, err := decodeExpr(w.Value)
		if err != nil {
			return nil, err
		}
		return &ast.DVar{Name: w.Name, Mutable: w.Mutable, Annot: w.Annot.toAST(), Value: value}, nil

	case "dexpr":
		var w struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		value, err := decodeExpr(w.Value)
		if err != nil {
			return nil, err
		}
		return &ast.DExpr{Value: value}, nil

	default:
		return nil, fmt.Errorf("wire: unknown declaration kind %q", n.Kind)
	}
}

func decodePattern(raw json.RawMessage) (ast.Pattern, error) {
	var n node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("wire: invalid pattern: %w", err)
	}
	switch n.Kind {
	case "pvar":
		var w struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.PVar{Name: w.Name}, nil

	case "plit":
		var w struct {
			LitKind string      `json:"lit_kind"`
			Value   interface{} `json:"value"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.PLit{Kind: decodeLitKind(w.LitKind), Value: w.Value}, nil

	case "pwild":
		return &ast.PWild{}, nil

	case "pcon":
		var w struct {
			Con  string   `json:"con"`
			Args []string `json:"args"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.PCon{Con: ast.NewUnqualified(w.Con), Args: w.Args}, nil

	default:
		return nil, fmt.Errorf("wire: unknown pattern kind %q", n.Kind)
	}
}
