package infer

import (
	"testing"

	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/freshname"
	"github.com/sunholo/juno/internal/resolve"
	"github.com/sunholo/juno/internal/testutil"
	"github.com/sunholo/juno/internal/types"
)

func ident(name string) *ast.Ident {
	return &ast.Ident{Name: ast.NewUnqualified(name)}
}

func i32Annot() *ast.TypeAnnot {
	return &ast.TypeAnnot{Name: ast.NewUnqualified("i32")}
}

func lit(kind ast.LitKind, v interface{}) *ast.Lit {
	return &ast.Lit{Kind: kind, Value: v}
}

func block(result ast.Expr, decls ...ast.Decl) *ast.Block {
	return &ast.Block{Decls: decls, Result: result}
}

func analyze(t *testing.T, mods ...ast.Module) (*ast.Program, error) {
	t.Helper()
	prog := &ast.Program{Modules: mods}
	if err := resolve.Resolve(prog); err != nil {
		return nil, err
	}
	return Analyze(prog)
}

// fn add(a: i32, b: i32) -> i32 { a + b } — matching operand types accept.
func TestAnalyzeArithmeticAcceptsMatchingOperands(t *testing.T) {
	add := &ast.FuncDecl{
		Name:     "add",
		Params:   []ast.Param{{Name: "a", Annot: i32Annot()}, {Name: "b", Annot: i32Annot()}},
		RetAnnot: i32Annot(),
		Body:     &ast.BinOp{Op: "+", Left: ident("a"), Right: ident("b")},
	}
	mod := ast.Module{Path: []string{"main"}, TopLevels: []ast.TopLevel{add}}

	if _, err := analyze(t, mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// S2: fn f() { x := 1; x = 2; x } — assigning to an immutable binding rejects.
func TestAnalyzeImmutableAssignRejected(t *testing.T) {
	f := &ast.FuncDecl{
		Name: "f",
		Body: block(ident("x"),
			&ast.DVar{Name: "x", Mutable: false, Value: lit(ast.IntLit, 1)},
			&ast.DExpr{Value: &ast.Assign{Lhs: ident("x"), Rhs: lit(ast.IntLit, 2)}},
		),
	}
	mod := ast.Module{Path: []string{"main"}, TopLevels: []ast.TopLevel{f}}

	_, err := analyze(t, mod)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	testutil.AssertErrorKind(t, err, types.ImmutableAssign)
}

// S3: fn f() { if true { 1 } else { true } } — mismatched branch types reject.
func TestAnalyzeIfBranchMismatchRejected(t *testing.T) {
	f := &ast.FuncDecl{
		Name: "f",
		Body: &ast.If{
			Cond: lit(ast.BoolLit, true),
			Then: lit(ast.IntLit, 1),
			Else: lit(ast.BoolLit, true),
		},
	}
	mod := ast.Module{Path: []string{"main"}, TopLevels: []ast.TopLevel{f}}

	_, err := analyze(t, mod)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	testutil.AssertErrorKind(t, err, types.Mismatch)
}

// S4: type Box<T> = Mk(U) — a constructor argument referencing a type
// variable absent from the type's own parameter list rejects.
func TestAnalyzeConstructorUndefinedTypeVariableRejected(t *testing.T) {
	box := &ast.TypeDecl{
		Name:       "Box",
		TypeParams: []string{"T"},
		Constructors: []ast.ConstructorDef{
			{Name: "Mk", Args: []ast.TypeAnnot{{Name: ast.NewUnqualified("U")}}},
		},
	}
	mod := ast.Module{Path: []string{"main"}, TopLevels: []ast.TopLevel{box}}

	_, err := analyze(t, mod)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	testutil.AssertErrorKind(t, err, types.UndefinedTypeVariable)
}

// S5: mutual recursion — even/odd, each using its parameter only via
// arithmetic and comparison, still pin to Int32 (§9 known-gap tightening).
func TestAnalyzeMutualRecursionPinsInt32(t *testing.T) {
	even := &ast.FuncDecl{
		Name:   "even",
		Params: []ast.Param{{Name: "n"}},
		Body: &ast.If{
			Cond: &ast.BinOp{Op: "==", Left: ident("n"), Right: lit(ast.IntLit, 0)},
			Then: lit(ast.BoolLit, true),
			Else: &ast.Call{Func: ident("odd"), Args: []ast.Expr{
				&ast.BinOp{Op: "-", Left: ident("n"), Right: lit(ast.IntLit, 1)},
			}},
		},
	}
	odd := &ast.FuncDecl{
		Name:   "odd",
		Params: []ast.Param{{Name: "n"}},
		Body: &ast.If{
			Cond: &ast.BinOp{Op: "==", Left: ident("n"), Right: lit(ast.IntLit, 0)},
			Then: lit(ast.BoolLit, false),
			Else: &ast.Call{Func: ident("even"), Args: []ast.Expr{
				&ast.BinOp{Op: "-", Left: ident("n"), Right: lit(ast.IntLit, 1)},
			}},
		},
	}
	mod := ast.Module{Path: []string{"main"}, TopLevels: []ast.TopLevel{even, odd}}

	prog, err := analyze(t, mod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evenBody := prog.Modules[0].TopLevels[0].(*ast.FuncDecl).Body
	ifExpr := evenBody.(*ast.If)
	nType := ifExpr.Cond.(*ast.BinOp).Left.GetType()
	testutil.AssertTypeEqual(t, types.TInt32, nType)
}

// S6: fn f(x) { *x = x; x } — assigning a variable back through its own
// dereference forces an infinite type and rejects via the occurs check.
func TestAnalyzeOccursCheckRejected(t *testing.T) {
	f := &ast.FuncDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "x"}},
		Body: block(ident("x"),
			&ast.DExpr{Value: &ast.Assign{
				Lhs: &ast.Deref{Operand: ident("x")},
				Rhs: ident("x"),
			}},
		),
	}
	mod := ast.Module{Path: []string{"main"}, TopLevels: []ast.TopLevel{f}}

	_, err := analyze(t, mod)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	testutil.AssertErrorKind(t, err, types.InfiniteType)
}

func TestInferPatternVarBindsFreshVariable(t *testing.T) {
	c := NewCtx()
	c.curTmpScope = freshname.NewGenerator()
	typ, bindings, err := c.inferPattern(&ast.PVar{Name: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := typ.(*types.TVar); !ok {
		t.Fatalf("expected a fresh TVar, got %T", typ)
	}
	if len(bindings) != 1 {
		t.Fatalf("expected exactly one binding, got %d", len(bindings))
	}
}

func TestInferExprLiteralKinds(t *testing.T) {
	c := NewCtx()
	cases := []struct {
		kind ast.LitKind
		want types.Type
	}{
		{ast.IntLit, types.TInt32},
		{ast.FloatLit, types.TFloat64},
		{ast.StrLit, types.TStr},
		{ast.CharLit, types.TChar},
		{ast.BoolLit, types.TBool},
		{ast.UnitLit, types.TUnit},
	}
	for _, tc := range cases {
		l := lit(tc.kind, nil)
		if err := c.inferExpr(l); err != nil {
			t.Fatalf("unexpected error for kind %v: %v", tc.kind, err)
		}
		if !types.Equal(l.GetType(), tc.want) {
			t.Fatalf("kind %v: expected %s, got %s", tc.kind, tc.want, l.GetType())
		}
	}
}

// op infixr 10 ** (base: i32, exp: i32) { mut res := 1; mut e2 := exp;
// while e2 > 0 { res = res * base; e2 = e2 - 1 }; res }; fn main() { 2 ** 12 }
// — a user-defined operator body with mutable locals and a while loop infers
// to (Int32, Int32) -> Int32 and its call site type-checks against it.
func TestAnalyzePowerOperator(t *testing.T) {
	whileBody := block(lit(ast.UnitLit, nil),
		&ast.DExpr{Value: &ast.Assign{
			Lhs: ident("res"),
			Rhs: &ast.BinOp{Op: "*", Left: ident("res"), Right: ident("base")},
		}},
		&ast.DExpr{Value: &ast.Assign{
			Lhs: ident("e2"),
			Rhs: &ast.BinOp{Op: "-", Left: ident("e2"), Right: lit(ast.IntLit, 1)},
		}},
	)
	pow := &ast.OperDecl{
		Def:    ast.OpDef{Assoc: ast.AssocRight, Precedence: 10, Symbol: "**"},
		Params: []ast.Param{{Name: "base", Annot: i32Annot()}, {Name: "exp", Annot: i32Annot()}},
		Body: block(ident("res"),
			&ast.DVar{Name: "res", Mutable: true, Value: lit(ast.IntLit, 1)},
			&ast.DVar{Name: "e2", Mutable: true, Value: ident("exp")},
			&ast.DExpr{Value: &ast.While{
				Cond: &ast.BinOp{Op: ">", Left: ident("e2"), Right: lit(ast.IntLit, 0)},
				Body: whileBody,
			}},
		),
	}
	mainFn := &ast.FuncDecl{
		Name: "main",
		Body: &ast.BinOp{Op: "**", Left: lit(ast.IntLit, 2), Right: lit(ast.IntLit, 12)},
	}
	mod := ast.Module{Path: []string{"main"}, TopLevels: []ast.TopLevel{pow, mainFn}}

	prog := &ast.Program{Modules: []ast.Module{mod}}
	if err := resolve.Resolve(prog); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	typed, res, err := AnalyzeWithSchemes(prog)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !res.MainExists {
		t.Error("expected MainExists to be set")
	}

	powScheme, ok := res.Schemes[ast.NewQualified([]string{"main"}, "**").Key()]
	if !ok {
		t.Fatal("no scheme recorded for **")
	}
	wantPow := &types.TFunc{Params: []types.Type{types.TInt32, types.TInt32}, Return: types.TInt32}
	testutil.AssertTypeEqual(t, types.Type(wantPow), powScheme.Body)

	// res and e2 are mutable Int32: the while-body assignments type as Int32.
	powBody := typed.Modules[0].TopLevels[0].(*ast.OperDecl).Body.(*ast.Block)
	loop := powBody.Decls[2].(*ast.DExpr).Value.(*ast.While)
	for _, decl := range loop.Body.(*ast.Block).Decls {
		assign := decl.(*ast.DExpr).Value.(*ast.Assign)
		testutil.AssertTypeEqual(t, types.TInt32, assign.GetType())
	}

	// main's own body is the operator's result type.
	mainBody := typed.Modules[0].TopLevels[1].(*ast.FuncDecl).Body
	testutil.AssertTypeEqual(t, types.TInt32, mainBody.GetType())
}
