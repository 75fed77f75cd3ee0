package lower

import (
	"fmt"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/liveness"
	"github.com/graphlower/graphlower/lowering/internal/synth"
)

// lowerWhile turns
//
//	while cond:
//	    <body>
//	else:
//	    <orelse>
//
// into a condition callable, a body callable, one accessor pair, and a
// runtime dispatch call. Both callables share the same threaded union, so
// loop-carried state round-trips through the positional tuple. The grammar
// has no break statement, so the else statements run exactly once after the
// loop finishes; they follow the dispatch call as plain siblings.
func (e *Engine) lowerWhile(an *liveness.Analysis, fnScope liveness.Scope, node *ast.While, body, orelse []ast.Stmt) ([]ast.Stmt, error) {
	scope, ok := an.ScopeOf(node)
	if !ok {
		return nil, errNoScope(node)
	}
	threaded := e.threadedNames(fnScope, scope)

	var out []ast.Stmt
	out = append(out, sentinelDecls(scope.CreatedVars())...)

	condFn := wrapCondition(e.gen.Generate(WhileConditionPrefix), node.Cond, threaded)
	bodyFn := wrapBranch(e.gen.Generate(WhileBodyPrefix), body, threaded, ast.RoleLoopBody)
	acc := synth.CreateAccessors(threaded, &e.gen)
	out = append(out, condFn, bodyFn, acc.Getter, acc.Setter)

	out = append(out, &ast.ExprStmt{X: &ast.Call{
		Func: &ast.Raw{Text: RuntimeWhile},
		Args: []ast.Expr{
			&ast.Name{ID: condFn.Name, Ctx: ast.CtxLoad},
			&ast.Name{ID: bodyFn.Name, Ctx: ast.CtxLoad},
			&ast.Name{ID: acc.Getter.Name, Ctx: ast.CtxLoad},
			&ast.Name{ID: acc.Setter.Name, Ctx: ast.CtxLoad},
			&ast.Raw{Text: synth.NameTupleLiteral(threaded)},
		},
	}})
	out = append(out, orelse...)
	return out, nil
}

// wrapCondition builds the loop-condition callable: it reads the threaded
// names via nonlocal and returns the condition expression.
func wrapCondition(name string, cond ast.Expr, threaded []string) *ast.FunctionDef {
	var stmts []ast.Stmt
	if nl, ok := synth.CreateNonlocalStmt(threaded); ok {
		stmts = append(stmts, nl)
	}
	stmts = append(stmts, &ast.Return{Value: cond})
	return &ast.FunctionDef{
		Name: name,
		Body: stmts,
		Role: ast.RoleLoopCondition,
	}
}

func errNoScope(node ast.Stmt) error {
	return fmt.Errorf("no scope entry attached to %T node; was the function analyzed?", node)
}
