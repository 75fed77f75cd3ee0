package astbridge

import (
	"encoding/json"
	"fmt"

	"github.com/graphlower/graphlower/lowering/internal/ast"
)

func moduleFromNode(n *node) (*ast.Module, error) {
	if n.Kind != "Module" {
		return nil, fmt.Errorf("astbridge: root kind %q, want Module", n.Kind)
	}
	body, err := stmtsFromNodes(n.Body)
	if err != nil {
		return nil, err
	}
	return &ast.Module{Body: body}, nil
}

func stmtsFromNodes(ns []*node) ([]ast.Stmt, error) {
	if ns == nil {
		return nil, nil
	}
	out := make([]ast.Stmt, 0, len(ns))
	for _, n := range ns {
		s, err := stmtFromNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func exprsFromNodes(ns []*node) ([]ast.Expr, error) {
	if ns == nil {
		return nil, nil
	}
	out := make([]ast.Expr, 0, len(ns))
	for _, n := range ns {
		e, err := exprFromNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func optExprFromNode(n *node) (ast.Expr, error) {
	if n == nil {
		return nil, nil
	}
	return exprFromNode(n)
}

func ctxFromString(s string) (ast.Ctx, error) {
	switch s {
	case "", "load":
		return ast.CtxLoad, nil
	case "store":
		return ast.CtxStore, nil
	case "del":
		return ast.CtxDel, nil
	default:
		return ast.CtxLoad, fmt.Errorf("astbridge: unknown ctx %q", s)
	}
}

func roleFromString(s string) (ast.Role, error) {
	switch s {
	case "", "user":
		return ast.RoleUser, nil
	case "branch-true":
		return ast.RoleBranchTrue, nil
	case "branch-false":
		return ast.RoleBranchFalse, nil
	case "loop-condition":
		return ast.RoleLoopCondition, nil
	case "loop-body":
		return ast.RoleLoopBody, nil
	case "getter":
		return ast.RoleGetter, nil
	case "setter":
		return ast.RoleSetter, nil
	default:
		return ast.RoleUser, fmt.Errorf("astbridge: unknown role %q", s)
	}
}

func stmtFromNode(n *node) (ast.Stmt, error) {
	switch n.Kind {
	case "FunctionDef":
		body, err := stmtsFromNodes(n.Body)
		if err != nil {
			return nil, err
		}
		role, err := roleFromString(n.Role)
		if err != nil {
			return nil, err
		}
		fn := &ast.FunctionDef{Name: n.Name, Body: body, Role: role}
		if n.Params != nil {
			fn.Args = ast.Arguments{
				Args:   n.Params.Args,
				Vararg: n.Params.Vararg,
				Kwarg:  n.Params.Kwarg,
			}
		}
		return fn, nil
	case "Assign":
		targets, err := exprsFromNodes(n.Targets)
		if err != nil {
			return nil, err
		}
		value, err := exprFromNode(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Targets: targets, Value: value}, nil
	case "AugAssign":
		target, err := exprFromNode(n.Target)
		if err != nil {
			return nil, err
		}
		value, err := exprFromNode(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.AugAssign{Target: target, Op: n.Op, Value: value}, nil
	case "Delete":
		targets, err := exprsFromNodes(n.Targets)
		if err != nil {
			return nil, err
		}
		return &ast.Delete{Targets: targets}, nil
	case "Return":
		value, err := optExprFromNode(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Value: value}, nil
	case "If":
		return ifLikeFromNode(n)
	case "While":
		cond, err := exprFromNode(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := stmtsFromNodes(n.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := stmtsFromNodes(n.Else)
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body, Else: orelse}, nil
	case "For":
		target, err := exprFromNode(n.Target)
		if err != nil {
			return nil, err
		}
		iter, err := exprFromNode(n.Iter)
		if err != nil {
			return nil, err
		}
		body, err := stmtsFromNodes(n.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := stmtsFromNodes(n.Else)
		if err != nil {
			return nil, err
		}
		return &ast.For{Target: target, Iter: iter, Body: body, Else: orelse}, nil
	case "Global":
		return &ast.Global{Names: n.Names}, nil
	case "Nonlocal":
		return &ast.Nonlocal{Names: n.Names}, nil
	case "ExprStmt":
		x, err := exprFromNode(n.X)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
	case "Pass":
		return &ast.Pass{}, nil
	default:
		return nil, fmt.Errorf("astbridge: unknown statement kind %q", n.Kind)
	}
}

func ifLikeFromNode(n *node) (ast.Stmt, error) {
	cond, err := exprFromNode(n.Cond)
	if err != nil {
		return nil, err
	}
	body, err := stmtsFromNodes(n.Body)
	if err != nil {
		return nil, err
	}
	orelse, err := stmtsFromNodes(n.Else)
	if err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, Body: body, Else: orelse}, nil
}

func exprFromNode(n *node) (ast.Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("astbridge: missing expression node")
	}
	ctx, err := ctxFromString(n.Ctx)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "Name":
		return &ast.Name{ID: n.ID, Ctx: ctx}, nil
	case "Attribute":
		value, err := exprFromNode(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Attribute{Value: value, Attr: n.Attr, Ctx: ctx}, nil
	case "Subscript":
		value, err := exprFromNode(n.Value)
		if err != nil {
			return nil, err
		}
		index, err := exprFromNode(n.Index)
		if err != nil {
			return nil, err
		}
		return &ast.Subscript{Value: value, Index: index, Ctx: ctx}, nil
	case "Call":
		fn, err := exprFromNode(n.Func)
		if err != nil {
			return nil, err
		}
		args, err := exprsFromNodes(n.Args)
		if err != nil {
			return nil, err
		}
		var kws []ast.Keyword
		for _, k := range n.Keywords {
			v, err := exprFromNode(k.Value)
			if err != nil {
				return nil, err
			}
			kws = append(kws, ast.Keyword{Arg: k.Arg, Value: v})
		}
		return &ast.Call{Func: fn, Args: args, Keywords: kws}, nil
	case "Tuple":
		elts, err := exprsFromNodes(n.Elts)
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Elts: elts, Ctx: ctx}, nil
	case "List":
		elts, err := exprsFromNodes(n.Elts)
		if err != nil {
			return nil, err
		}
		return &ast.List{Elts: elts, Ctx: ctx}, nil
	case "Dict":
		keys, err := exprsFromNodes(n.Keys)
		if err != nil {
			return nil, err
		}
		values, err := exprsFromNodes(n.Values)
		if err != nil {
			return nil, err
		}
		return &ast.Dict{Keys: keys, Values: values}, nil
	case "Constant":
		return &ast.Constant{Value: litValue(n.Lit)}, nil
	case "BinOp":
		left, err := exprFromNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := exprFromNode(n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Left: left, Op: n.Op, Right: right}, nil
	case "UnaryOp":
		x, err := exprFromNode(n.X)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: n.Op, X: x}, nil
	case "Compare":
		left, err := exprFromNode(n.Left)
		if err != nil {
			return nil, err
		}
		comparators, err := exprsFromNodes(n.Comparators)
		if err != nil {
			return nil, err
		}
		return &ast.Compare{Left: left, Ops: n.Ops, Comparators: comparators}, nil
	case "ListComp":
		elt, err := exprFromNode(n.X)
		if err != nil {
			return nil, err
		}
		gens, err := generatorsFromNodes(n.Generators)
		if err != nil {
			return nil, err
		}
		return &ast.ListComp{Elt: elt, Generators: gens}, nil
	case "SetComp":
		elt, err := exprFromNode(n.X)
		if err != nil {
			return nil, err
		}
		gens, err := generatorsFromNodes(n.Generators)
		if err != nil {
			return nil, err
		}
		return &ast.SetComp{Elt: elt, Generators: gens}, nil
	case "DictComp":
		key, err := exprFromNode(n.Key)
		if err != nil {
			return nil, err
		}
		value, err := exprFromNode(n.Value)
		if err != nil {
			return nil, err
		}
		gens, err := generatorsFromNodes(n.Generators)
		if err != nil {
			return nil, err
		}
		return &ast.DictComp{Key: key, Value: value, Generators: gens}, nil
	case "Raw":
		return &ast.Raw{Text: n.Text}, nil
	default:
		return nil, fmt.Errorf("astbridge: unknown expression kind %q", n.Kind)
	}
}

func generatorsFromNodes(gens []compGen) ([]ast.Comprehension, error) {
	out := make([]ast.Comprehension, 0, len(gens))
	for _, g := range gens {
		target, err := exprFromNode(g.Target)
		if err != nil {
			return nil, err
		}
		iter, err := exprFromNode(g.Iter)
		if err != nil {
			return nil, err
		}
		ifs, err := exprsFromNodes(g.Ifs)
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Comprehension{Target: target, Iter: iter, Ifs: ifs})
	}
	return out, nil
}

// litValue normalizes decoded JSON literals: integral numbers become int64,
// the rest float64.
func litValue(v any) any {
	num, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := num.Int64(); err == nil {
		return i
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}
