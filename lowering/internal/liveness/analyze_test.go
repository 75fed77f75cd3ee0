package liveness

import (
	"reflect"
	"testing"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/config"
)

/* ---------- builders ---------- */

func load(id string) *ast.Name  { return &ast.Name{ID: id, Ctx: ast.CtxLoad} }
func store(id string) *ast.Name { return &ast.Name{ID: id, Ctx: ast.CtxStore} }

func assign(target ast.Expr, value ast.Expr) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expr{target}, Value: value}
}

func intLit(v int64) *ast.Constant { return &ast.Constant{Value: v} }

func methodCall(receiver ast.Expr, method string, args ...ast.Expr) *ast.ExprStmt {
	return &ast.ExprStmt{X: &ast.Call{
		Func: &ast.Attribute{Value: receiver, Attr: method, Ctx: ast.CtxLoad},
		Args: args,
	}}
}

func mustScope(t *testing.T, an *Analysis, node ast.Stmt) Scope {
	t.Helper()
	s, ok := an.ScopeOf(node)
	if !ok {
		t.Fatalf("no scope entry for %T node", node)
	}
	return s
}

func wantNames(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
}

/* ---------- straight-line functions ---------- */

func TestStraightLineNoCreated(t *testing.T) {
	// def f(x):
	//     y = 1
	//     self.z = 2
	//     a[0] = 3
	fn := &ast.FunctionDef{
		Name: "f",
		Args: ast.Arguments{Args: []string{"x"}},
		Body: []ast.Stmt{
			assign(store("y"), intLit(1)),
			assign(&ast.Attribute{Value: load("self"), Attr: "z", Ctx: ast.CtxStore}, intLit(2)),
			assign(&ast.Subscript{Value: load("a"), Index: intLit(0), Ctx: ast.CtxStore}, intLit(3)),
		},
	}
	an := Analyze(fn)
	s := mustScope(t, an, fn)

	wantNames(t, "ModifiedVars", s.ModifiedVars(), []string{"a", "self.z", "y"})
	wantNames(t, "ExistedVars", s.ExistedVars(), []string{"a", "y"})
	wantNames(t, "CreatedVars", s.CreatedVars(), nil)
	wantNames(t, "Args", s.Args(), []string{"x"})
	if s.Kind() != KindFunction {
		t.Fatalf("Kind = %v, want function", s.Kind())
	}
	if _, ok := s.Father(); ok {
		t.Fatalf("top-level function should have no father scope")
	}
}

func TestArgsExcludedFromExisted(t *testing.T) {
	// def f(x): x = x + 1
	fn := &ast.FunctionDef{
		Name: "f",
		Args: ast.Arguments{Args: []string{"x"}},
		Body: []ast.Stmt{
			assign(store("x"), &ast.BinOp{Left: load("x"), Op: "+", Right: intLit(1)}),
		},
	}
	s := mustScope(t, Analyze(fn), fn)
	wantNames(t, "ModifiedVars", s.ModifiedVars(), []string{"x"})
	wantNames(t, "ExistedVars", s.ExistedVars(), nil)
}

/* ---------- control-flow scopes ---------- */

func TestIfCreatesName(t *testing.T) {
	// def f():
	//     x = 1
	//     if c:
	//         y = 2
	ifStmt := &ast.If{
		Cond: load("c"),
		Body: []ast.Stmt{assign(store("y"), intLit(2))},
	}
	fn := &ast.FunctionDef{
		Name: "f",
		Body: []ast.Stmt{assign(store("x"), intLit(1)), ifStmt},
	}
	an := Analyze(fn)
	fnScope := mustScope(t, an, fn)
	ifScope := mustScope(t, an, ifStmt)

	if ifScope.Kind() != KindControlFlow {
		t.Fatalf("if scope kind = %v, want controlflow", ifScope.Kind())
	}
	father, ok := ifScope.Father()
	if !ok || father.ID() != fnScope.ID() {
		t.Fatalf("if scope father = %v (ok=%v), want function scope %v", father.ID(), ok, fnScope.ID())
	}

	wantNames(t, "if CreatedVars", ifScope.CreatedVars(), []string{"y"})
	wantNames(t, "if ModifiedVars", ifScope.ModifiedVars(), []string{"y"})
	wantNames(t, "fn CreatedVars", fnScope.CreatedVars(), []string{"y"})
	wantNames(t, "fn ExistedVars", fnScope.ExistedVars(), []string{"x", "y"})
}

func TestForLoopCreatesIterationVariable(t *testing.T) {
	// def f(n):
	//     total = 0
	//     for i in range(n):
	//         total = total + i
	forStmt := &ast.For{
		Target: store("i"),
		Iter:   &ast.Call{Func: load("range"), Args: []ast.Expr{load("n")}},
		Body: []ast.Stmt{
			assign(store("total"), &ast.BinOp{Left: load("total"), Op: "+", Right: load("i")}),
		},
	}
	fn := &ast.FunctionDef{
		Name: "f",
		Args: ast.Arguments{Args: []string{"n"}},
		Body: []ast.Stmt{assign(store("total"), intLit(0)), forStmt},
	}
	an := Analyze(fn)
	fnScope := mustScope(t, an, fn)
	forScope := mustScope(t, an, forStmt)

	wantNames(t, "for ModifiedVars", forScope.ModifiedVars(), []string{"i", "total"})
	wantNames(t, "for CreatedVars", forScope.CreatedVars(), []string{"i"})
	wantNames(t, "fn CreatedVars", fnScope.CreatedVars(), []string{"i"})
	wantNames(t, "fn ExistedVars", fnScope.ExistedVars(), []string{"i", "total"})
}

func TestNestedControlFlowMergesIntoBoth(t *testing.T) {
	// def f():
	//     while c:
	//         if d:
	//             y = 1
	ifStmt := &ast.If{Cond: load("d"), Body: []ast.Stmt{assign(store("y"), intLit(1))}}
	whileStmt := &ast.While{Cond: load("c"), Body: []ast.Stmt{ifStmt}}
	fn := &ast.FunctionDef{Name: "f", Body: []ast.Stmt{whileStmt}}

	an := Analyze(fn)
	fnScope := mustScope(t, an, fn)
	whileScope := mustScope(t, an, whileStmt)

	wantNames(t, "while ModifiedVars", whileScope.ModifiedVars(), []string{"y"})
	wantNames(t, "fn ModifiedVars", fnScope.ModifiedVars(), []string{"y"})
	wantNames(t, "fn CreatedVars", fnScope.CreatedVars(), []string{"y"})
}

/* ---------- name resolution ---------- */

func TestIsGlobalVar(t *testing.T) {
	// def f():
	//     global g
	//     nonlocal n
	//     g = 1
	//     x = 2
	fn := &ast.FunctionDef{
		Name: "f",
		Body: []ast.Stmt{
			&ast.Global{Names: []string{"g"}},
			&ast.Nonlocal{Names: []string{"n"}},
			assign(store("g"), intLit(1)),
			assign(store("x"), intLit(2)),
		},
	}
	s := mustScope(t, Analyze(fn), fn)

	cases := []struct {
		name string
		want bool
	}{
		{"g", true},       // declared global, assignment notwithstanding
		{"n", false},      // declared nonlocal
		{"x", false},      // assigned locally
		{"unseen", true},  // exhausted chain defaults to global
		{"self.x", false}, // qualified names never denote a binding
	}
	for _, c := range cases {
		if got := s.IsGlobalVar(c.name); got != c.want {
			t.Fatalf("IsGlobalVar(%q) = %v, want %v", c.name, got, c.want)
		}
		if got := s.IsLocalVar(c.name); got == c.want {
			t.Fatalf("IsLocalVar(%q) = %v, want complement of IsGlobalVar", c.name, got)
		}
	}
}

func TestIsGlobalVarWalksFatherChain(t *testing.T) {
	// def outer():
	//     x = 1
	//     def inner():
	//         return x
	inner := &ast.FunctionDef{
		Name: "inner",
		Body: []ast.Stmt{&ast.Return{Value: load("x")}},
	}
	outer := &ast.FunctionDef{
		Name: "outer",
		Body: []ast.Stmt{assign(store("x"), intLit(1)), inner},
	}
	an := Analyze(outer)
	innerScope := mustScope(t, an, inner)

	if innerScope.IsGlobalVar("x") {
		t.Fatalf("x is assigned in the enclosing function; IsGlobalVar must be false")
	}
	if !innerScope.IsGlobalVar("y") {
		t.Fatalf("y is unknown on the whole chain; IsGlobalVar must be true")
	}
}

/* ---------- container mutation tracking ---------- */

func TestAppendTracksReceiverWithoutWrite(t *testing.T) {
	// def f(x):
	//     a = []
	//     if c:
	//         a.append(x)
	ifStmt := &ast.If{
		Cond: load("c"),
		Body: []ast.Stmt{methodCall(load("a"), "append", load("x"))},
	}
	fn := &ast.FunctionDef{
		Name: "f",
		Args: ast.Arguments{Args: []string{"x"}},
		Body: []ast.Stmt{assign(store("a"), &ast.List{Ctx: ast.CtxLoad}), ifStmt},
	}
	an := Analyze(fn)
	ifScope := mustScope(t, an, ifStmt)

	wantNames(t, "if VariadicMutated", ifScope.VariadicMutated(), []string{"a"})
	wantNames(t, "if ModifiedVars", ifScope.ModifiedVars(), nil)
	wantNames(t, "if VariadicLengthVars", ifScope.VariadicLengthVars(), []string{"a"})
	if len(an.Warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", an.Warnings())
	}
}

func TestGlobalContainerMutationWarnsExactlyOnce(t *testing.T) {
	// def f():
	//     global g
	//     g.append(1)
	fn := &ast.FunctionDef{
		Name: "f",
		Body: []ast.Stmt{
			&ast.Global{Names: []string{"g"}},
			methodCall(load("g"), "append", intLit(1)),
		},
	}
	an := Analyze(fn)
	s := mustScope(t, an, fn)

	wantNames(t, "VariadicLengthVars", s.VariadicLengthVars(), nil)
	wantNames(t, "VariadicLengthVars again", s.VariadicLengthVars(), nil)
	ws := an.Warnings()
	if len(ws) != 1 {
		t.Fatalf("got %d warnings, want exactly 1: %v", len(ws), ws)
	}
	if ws[0].Code != "GLW0001" {
		t.Fatalf("warning code = %q, want GLW0001", ws[0].Code)
	}
}

func TestGlobalMutationWarningCanBeDisabled(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "f",
		Body: []ast.Stmt{
			&ast.Global{Names: []string{"g"}},
			methodCall(load("g"), "append", intLit(1)),
		},
	}
	cfg := config.Analyzer{MutatorMethods: []string{"append", "pop"}}
	an := Analyze(fn, WithConfig(cfg))
	s := mustScope(t, an, fn)

	wantNames(t, "VariadicLengthVars", s.VariadicLengthVars(), nil)
	if len(an.Warnings()) != 0 {
		t.Fatalf("warning emitted despite disabled toggle: %v", an.Warnings())
	}
}

func TestConfiguredMutatorMethods(t *testing.T) {
	// extend is only a mutator when configured as one.
	body := []ast.Stmt{
		assign(store("a"), &ast.List{Ctx: ast.CtxLoad}),
		methodCall(load("a"), "extend", load("xs")),
	}
	fn := &ast.FunctionDef{Name: "f", Body: body}

	s := mustScope(t, Analyze(fn), fn)
	wantNames(t, "default VariadicMutated", s.VariadicMutated(), nil)

	cfg := config.Analyzer{MutatorMethods: []string{"append", "pop", "extend"}}
	s = mustScope(t, Analyze(fn, WithConfig(cfg)), fn)
	wantNames(t, "configured VariadicMutated", s.VariadicMutated(), []string{"a"})
}

func TestQualifiedReceiverRecordedBySourceText(t *testing.T) {
	// def f(x): self.items.append(x)
	fn := &ast.FunctionDef{
		Name: "f",
		Args: ast.Arguments{Args: []string{"x"}},
		Body: []ast.Stmt{
			methodCall(&ast.Attribute{Value: load("self"), Attr: "items", Ctx: ast.CtxLoad}, "append", load("x")),
		},
	}
	s := mustScope(t, Analyze(fn), fn)
	wantNames(t, "VariadicMutated", s.VariadicMutated(), []string{"self.items"})
	// Qualified receivers resolve to non-global, so they survive threading.
	wantNames(t, "VariadicLengthVars", s.VariadicLengthVars(), []string{"self.items"})
}

/* ---------- write-target shapes ---------- */

func TestNestedSubscriptUnwrapsToBaseName(t *testing.T) {
	// a[i][j] = 1
	target := &ast.Subscript{
		Value: &ast.Subscript{Value: load("a"), Index: load("i"), Ctx: ast.CtxLoad},
		Index: load("j"),
		Ctx:   ast.CtxStore,
	}
	fn := &ast.FunctionDef{Name: "f", Body: []ast.Stmt{assign(target, intLit(1))}}
	s := mustScope(t, Analyze(fn), fn)
	wantNames(t, "ModifiedVars", s.ModifiedVars(), []string{"a"})
}

func TestAttributeChainRecordedAsText(t *testing.T) {
	// self.b.c = 1
	target := &ast.Attribute{
		Value: &ast.Attribute{Value: load("self"), Attr: "b", Ctx: ast.CtxLoad},
		Attr:  "c",
		Ctx:   ast.CtxStore,
	}
	fn := &ast.FunctionDef{Name: "f", Body: []ast.Stmt{assign(target, intLit(1))}}
	s := mustScope(t, Analyze(fn), fn)
	wantNames(t, "ModifiedVars", s.ModifiedVars(), []string{"self.b.c"})
	wantNames(t, "ExistedVars", s.ExistedVars(), nil)
}

func TestComprehensionOpaqueToWriteTracking(t *testing.T) {
	// xs = [i for i in rng]
	comp := &ast.ListComp{
		Elt: load("i"),
		Generators: []ast.Comprehension{
			{Target: store("i"), Iter: load("rng")},
		},
	}
	fn := &ast.FunctionDef{Name: "f", Body: []ast.Stmt{assign(store("xs"), comp)}}
	s := mustScope(t, Analyze(fn), fn)
	wantNames(t, "ModifiedVars", s.ModifiedVars(), []string{"xs"})
}

/* ---------- role folding ---------- */

func TestControlFlowBodyFoldsIntoLexicalParent(t *testing.T) {
	// A lowered branch body's writes belong to the enclosing function; an
	// ordinary nested helper's do not.
	branch := &ast.FunctionDef{
		Name: "true_fn_0",
		Role: ast.RoleBranchTrue,
		Body: []ast.Stmt{
			assign(store("t"), intLit(1)),
			methodCall(load("acc"), "append", load("t")),
		},
	}
	helper := &ast.FunctionDef{
		Name: "helper",
		Body: []ast.Stmt{assign(store("u"), intLit(1))},
	}
	outer := &ast.FunctionDef{
		Name: "outer",
		Body: []ast.Stmt{assign(store("acc"), &ast.List{Ctx: ast.CtxLoad}), branch, helper},
	}
	s := mustScope(t, Analyze(outer), outer)

	wantNames(t, "outer ModifiedVars", s.ModifiedVars(), []string{"acc", "t"})
	wantNames(t, "outer VariadicMutated", s.VariadicMutated(), []string{"acc"})
	for _, n := range s.ModifiedVars() {
		if n == "u" {
			t.Fatalf("helper write leaked into the enclosing scope")
		}
	}
}

/* ---------- module roots ---------- */

func TestModuleRootAnalyzesEachFunction(t *testing.T) {
	f := &ast.FunctionDef{Name: "f", Body: []ast.Stmt{assign(store("x"), intLit(1))}}
	g := &ast.FunctionDef{Name: "g", Body: []ast.Stmt{assign(store("y"), intLit(2))}}
	an := Analyze(&ast.Module{Body: []ast.Stmt{f, g}})

	fs := mustScope(t, an, f)
	gs := mustScope(t, an, g)
	wantNames(t, "f ExistedVars", fs.ExistedVars(), []string{"x"})
	wantNames(t, "g ExistedVars", gs.ExistedVars(), []string{"y"})
	if len(an.Scopes()) != 2 {
		t.Fatalf("got %d scopes, want 2", len(an.Scopes()))
	}
}

func TestIsSimpleName(t *testing.T) {
	cases := map[string]bool{
		"x":      true,
		"x_1":    true,
		"self.x": false,
		"a[0]":   false,
	}
	for name, want := range cases {
		if got := IsSimpleName(name); got != want {
			t.Fatalf("IsSimpleName(%q) = %v, want %v", name, got, want)
		}
	}
}
