package synth

import (
	"strings"

	"github.com/graphlower/graphlower/lowering/internal/ast"
)

/* ---------- node helpers ---------- */

// CreateFuncDef wraps statements into one callable so it can be invoked from
// the lowered form. returnNames, when non-empty, are appended as the return
// tuple; otherwise a bare return is appended. The role tag records what kind
// of control-flow body this is.
func CreateFuncDef(name string, argNames []string, body []ast.Stmt, returnNames []string, role ast.Role) *ast.FunctionDef {
	stmts := make([]ast.Stmt, 0, len(body)+1)
	stmts = append(stmts, body...)
	if len(returnNames) > 0 {
		stmts = append(stmts, &ast.Return{
			Value: GenerateNameExpr(returnNames, ast.CtxLoad, false),
		})
	} else {
		stmts = append(stmts, &ast.Return{})
	}
	return &ast.FunctionDef{
		Name: name,
		Args: ast.Arguments{Args: append([]string(nil), argNames...)},
		Body: stmts,
		Role: role,
	}
}

// CreateAssign builds `name = value` and returns both the target expression
// and the statement.
func CreateAssign(name string, value ast.Expr) (ast.Expr, *ast.Assign) {
	target := ExprForName(name, ast.CtxStore)
	return target, &ast.Assign{Targets: []ast.Expr{target}, Value: value}
}

// CreateCall builds a call to the named function with positional name
// arguments.
func CreateCall(fn string, argNames []string) *ast.Call {
	args := make([]ast.Expr, len(argNames))
	for i, n := range argNames {
		args[i] = ExprForName(n, ast.CtxLoad)
	}
	return &ast.Call{Func: ExprForName(fn, ast.CtxLoad), Args: args}
}

// NameTupleLiteral renders a name list as a source-level tuple of string
// literals: ('x', 'y', ). An empty list renders as None.
func NameTupleLiteral(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	var b strings.Builder
	b.WriteString("(")
	for _, n := range names {
		b.WriteString("'" + strings.ReplaceAll(n, "'", "\\'") + "', ")
	}
	b.WriteString(")")
	return b.String()
}
