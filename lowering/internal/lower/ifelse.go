package lower

import (
	"sort"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/liveness"
	"github.com/graphlower/graphlower/lowering/internal/synth"
)

// lowerIf turns
//
//	if cond:
//	    <body>
//	else:
//	    <orelse>
//
// into sentinel pre-declarations for names created inside the construct,
// two role-tagged callables, one accessor pair over the threaded union, and
// a single runtime dispatch call.
func (e *Engine) lowerIf(an *liveness.Analysis, fnScope liveness.Scope, node *ast.If, body, orelse []ast.Stmt) ([]ast.Stmt, error) {
	scope, ok := an.ScopeOf(node)
	if !ok {
		return nil, errNoScope(node)
	}
	threaded := e.threadedNames(fnScope, scope)

	var out []ast.Stmt
	out = append(out, sentinelDecls(scope.CreatedVars())...)

	trueFn := wrapBranch(e.gen.Generate(TrueFuncPrefix), body, threaded, ast.RoleBranchTrue)
	falseFn := wrapBranch(e.gen.Generate(FalseFuncPrefix), orelse, threaded, ast.RoleBranchFalse)
	acc := synth.CreateAccessors(threaded, &e.gen)
	out = append(out, trueFn, falseFn, acc.Getter, acc.Setter)

	out = append(out, &ast.ExprStmt{X: &ast.Call{
		Func: &ast.Raw{Text: RuntimeIfElse},
		Args: []ast.Expr{
			node.Cond,
			&ast.Name{ID: trueFn.Name, Ctx: ast.CtxLoad},
			&ast.Name{ID: falseFn.Name, Ctx: ast.CtxLoad},
			&ast.Name{ID: acc.Getter.Name, Ctx: ast.CtxLoad},
			&ast.Name{ID: acc.Setter.Name, Ctx: ast.CtxLoad},
			&ast.Raw{Text: synth.NameTupleLiteral(threaded)},
		},
	}})
	return out, nil
}

// threadedNames is the ordered union of every name the construct writes
// plus its threadable variadic-mutated containers, dropping names that
// resolve to module-global scope (those cannot be captured by per-call
// threading; VariadicLengthVars already warned for containers).
func (e *Engine) threadedNames(fnScope, scope liveness.Scope) []string {
	seen := map[string]bool{}
	var names []string
	keep := func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		names = append(names, n)
	}
	for _, n := range scope.ModifiedVars() {
		if liveness.IsSimpleName(n) && fnScope.IsGlobalVar(n) {
			continue
		}
		keep(n)
	}
	for _, n := range scope.VariadicLengthVars() {
		keep(n)
	}
	sort.Strings(names)
	return names
}

// wrapBranch builds a branch callable: nonlocal declarations over the
// threaded simple names, the branch statements, and a return of the
// threaded tuple.
func wrapBranch(name string, body []ast.Stmt, threaded []string, role ast.Role) *ast.FunctionDef {
	var stmts []ast.Stmt
	if nl, ok := synth.CreateNonlocalStmt(threaded); ok {
		stmts = append(stmts, nl)
	}
	if len(body) == 0 {
		stmts = append(stmts, &ast.Pass{})
	} else {
		stmts = append(stmts, body...)
	}
	return synth.CreateFuncDef(name, nil, stmts, threaded, role)
}

// sentinelDecls pre-declares names created on only some paths:
//
//	x = _gl.undefined_var('x')
//
// so every path through the lowered construct has the name bound.
func sentinelDecls(created []string) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(created))
	for _, name := range created {
		_, assign := synth.CreateAssign(name, &ast.Call{
			Func: &ast.Raw{Text: RuntimeUndefined},
			Args: []ast.Expr{&ast.Constant{Value: name}},
		})
		out = append(out, assign)
	}
	return out
}
