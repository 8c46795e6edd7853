package ast

import (
	"fmt"
	"strings"

	"github.com/sunholo/juno/internal/types"
)

// Param is one function or operator parameter.
type Param struct {
	Pos   types.Pos
	Name  string
	Annot *TypeAnnot
}

func (p Param) String() string {
	if p.Annot == nil {
		return p.Name
	}
	return fmt.Sprintf("%s: %s", p.Name, p.Annot)
}

// TopLevel is a module-level declaration: FuncDecl, OperDecl, TypeDecl or
// ExternDecl (§3, §6 TopLevel sum).
type TopLevel interface {
	Node
	fmt.Stringer
	topLevelNode()
}

// TopLevelBase carries position tracking for every concrete top-level form.
type TopLevelBase struct {
	Pos types.Pos
}

func (t TopLevelBase) Position() types.Pos { return t.Pos }
func (TopLevelBase) topLevelNode()         {}

// FuncDecl is a top-level function definition.
type FuncDecl struct {
	TopLevelBase
	IsPub    bool
	Name     string
	Params   []Param
	RetAnnot *TypeAnnot
	Body     Expr
}

func (f *FuncDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn %s(%s) = %s", f.Name, strings.Join(parts, ", "), f.Body)
}

// Assoc is an operator's associativity/fixity class.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
	AssocPrefix
	AssocPostfix
)

// OpDef is an operator's declared fixity, used only to drive the parser that
// produced this tree — carried through untouched by analysis (§1 out of
// scope: parsing), but kept on OperDecl since it travels with the decl.
type OpDef struct {
	Assoc      Assoc
	Precedence int
	Symbol     string
}

// OperDecl is a top-level operator definition, resolved and inferred the
// same way as FuncDecl but registered under its Symbol for overload lookup
// (§4.5 BinOp rule: "look up the operator among declared overloads").
type OperDecl struct {
	TopLevelBase
	IsPub    bool
	Def      OpDef
	Params   []Param
	RetAnnot *TypeAnnot
	Body     Expr
}

func (o *OperDecl) String() string {
	parts := make([]string, len(o.Params))
	for i, p := range o.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("op %s(%s) = %s", o.Def.Symbol, strings.Join(parts, ", "), o.Body)
}

// ConstructorDef is one constructor of an algebraic TypeDecl.
type ConstructorDef struct {
	Pos  types.Pos
	Name string
	Args []TypeAnnot
}

func (c ConstructorDef) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

// TypeDecl introduces a user algebraic type and its constructors. Every type
// variable mentioned in a constructor's Args must appear in TypeParams, or
// the inferrer reports UndefinedTypeVariable (§4.5 constructor registration,
// scenario S4).
type TypeDecl struct {
	TopLevelBase
	IsPub        bool
	Name         string
	TypeParams   []string
	Constructors []ConstructorDef
}

func (t *TypeDecl) String() string {
	parts := make([]string, len(t.Constructors))
	for i, c := range t.Constructors {
		parts[i] = c.String()
	}
	return fmt.Sprintf("type %s = %s", t.Name, strings.Join(parts, " | "))
}

// ExternDecl declares a function implemented outside the analyzed program
// (e.g. a C runtime entry point); the resolver and inferrer treat it exactly
// like a FuncDecl signature with no body to walk.
type ExternDecl struct {
	TopLevelBase
	Name       string
	ParamTypes []TypeAnnot
	RetType    TypeAnnot
}

func (e *ExternDecl) String() string {
	parts := make([]string, len(e.ParamTypes))
	for i, p := range e.ParamTypes {
		parts[i] = p.String()
	}
	return fmt.Sprintf("extern %s(%s) -> %s", e.Name, strings.Join(parts, ", "), e.RetType)
}
