package ast

import (
	"fmt"
	"strings"

	"github.com/sunholo/juno/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Position() types.Pos
}

// Expr is any expression node. Every Expr carries a Type slot the inferrer
// fills in — the tree shape is identical before and after inference (§6):
// "same shape, each expression node annotated with a concrete type".
type Expr interface {
	Node
	fmt.Stringer
	exprNode()
	GetType() types.Type
	SetType(types.Type)
}

// ExprBase is embedded by every concrete Expr to provide position tracking
// and the type annotation slot without repeating boilerplate.
type ExprBase struct {
	Pos types.Pos
	Typ types.Type
}

func (e *ExprBase) Position() types.Pos   { return e.Pos }
func (e *ExprBase) GetType() types.Type   { return e.Typ }
func (e *ExprBase) SetType(t types.Type)  { e.Typ = t }
func (*ExprBase) exprNode()               {}

// LitKind enumerates literal forms; each carries the spec's "per-literal
// constant" type directly (§4.5 table).
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StrLit
	CharLit
	BoolLit
	UnitLit
)

// Lit is a literal expression.
type Lit struct {
	ExprBase
	Kind  LitKind
	Value interface{}
}

func (l *Lit) String() string { return fmt.Sprintf("%v", l.Value) }

// Ident is a variable reference — Unqualified before resolution, Qualified after.
type Ident struct {
	ExprBase
	Name Name
}

func (i *Ident) String() string { return i.Name.String() }

// Assign is `l = r`.
type Assign struct {
	ExprBase
	Lhs Expr
	Rhs Expr
}

func (a *Assign) String() string { return fmt.Sprintf("%s = %s", a.Lhs, a.Rhs) }

// DVar is a local variable declaration: `x := e` or `mut x := e`.
type DVar struct {
	Pos     types.Pos
	Name    string
	Mutable bool
	Annot   *TypeAnnot
	Value   Expr
}

func (d *DVar) Position() types.Pos { return d.Pos }
func (*DVar) declNode()             {}
func (d *DVar) String() string {
	kw := ""
	if d.Mutable {
		kw = "mut "
	}
	return fmt.Sprintf("%s%s := %s", kw, d.Name, d.Value)
}

// DExpr is a bare expression used as a block-local statement — an
// assignment, a while loop, or any call kept purely for its side effect.
type DExpr struct {
	Pos   types.Pos
	Value Expr
}

func (d *DExpr) Position() types.Pos { return d.Pos }
func (*DExpr) declNode()             {}
func (d *DExpr) String() string      { return d.Value.String() }

// Decl is a block-local declaration: DVar or DExpr.
type Decl interface {
	Node
	fmt.Stringer
	declNode()
}

// Block is `{ decls; e }`: decls are inferred in an extended scope that is
// popped on exit, then Result's type is the block's type.
type Block struct {
	ExprBase
	Decls  []Decl
	Result Expr
}

func (b *Block) String() string {
	parts := make([]string, 0, len(b.Decls)+1)
	for _, d := range b.Decls {
		parts = append(parts, d.String())
	}
	parts = append(parts, b.Result.String())
	return "{ " + strings.Join(parts, "; ") + " }"
}

// If is `if c then a else b`.
type If struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (i *If) String() string {
	return fmt.Sprintf("if %s %s else %s", i.Cond, i.Then, i.Else)
}

// While is a loop whose body is evaluated for effect; its type is Unit.
// Grounded in scenario S1 (spec §8), which requires a while loop to
// type-check even though the expression-inference table does not list one
// explicitly — it behaves like a degenerate If with no else and Unit result.
type While struct {
	ExprBase
	Cond Expr
	Body Expr
}

func (w *While) String() string { return fmt.Sprintf("while %s %s", w.Cond, w.Body) }

// MatchArm is one `p => e` arm of a match.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// Match is `match e { p_i => e_i }`.
type Match struct {
	ExprBase
	Scrutinee Expr
	Arms      []MatchArm
}

func (m *Match) String() string {
	parts := make([]string, len(m.Arms))
	for i, a := range m.Arms {
		parts[i] = fmt.Sprintf("%s => %s", a.Pattern, a.Body)
	}
	return fmt.Sprintf("match %s { %s }", m.Scrutinee, strings.Join(parts, ", "))
}

// BinOp is `a ⊕ b`, covering arithmetic, comparison, boolean and
// user-overloaded operators alike — the inferrer dispatches on Op.
type BinOp struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

func (b *BinOp) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }

// UnOp is a prefix unary operator application.
type UnOp struct {
	ExprBase
	Op      string
	Operand Expr
}

func (u *UnOp) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }

// Call is `f(args)`.
type Call struct {
	ExprBase
	Func Expr
	Args []Expr
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Func, strings.Join(parts, ", "))
}

// Deref is `*e`.
type Deref struct {
	ExprBase
	Operand Expr
}

func (d *Deref) String() string { return "*" + d.Operand.String() }

// Ref is `&e`.
type Ref struct {
	ExprBase
	Operand Expr
}

func (r *Ref) String() string { return "&" + r.Operand.String() }

// Cast is `e as T`.
type Cast struct {
	ExprBase
	Operand Expr
	Target  TypeAnnot
}

func (c *Cast) String() string { return fmt.Sprintf("(%s as %s)", c.Operand, c.Target) }

// SizeOf is `sizeof X`.
type SizeOf struct {
	ExprBase
	Target TypeAnnot
}

func (s *SizeOf) String() string { return fmt.Sprintf("sizeof %s", s.Target) }

// Closure is a lambda literal. The inferrer always rejects it with
// NotImplemented (§4.5) — capturing free variables at resolution time is a
// documented future extension (§9), not built here.
type Closure struct {
	ExprBase
	Params []Param
	Body   Expr
}

func (c *Closure) String() string { return "closure" }

// Return is a `return e` statement inside a function body; every contained
// return must agree with the function's declared return type (§4.5 step 5,
// §8 property 7).
type Return struct {
	ExprBase
	Value Expr
}

func (r *Return) String() string { return fmt.Sprintf("return %s", r.Value) }
