// Package liveness classifies every variable read or written across the
// control-flow boundaries of one function, so lowering can thread them as
// parameters and return values of synthesized callables. One traversal
// attaches a scope table entry to each function-definition and control-flow
// node; entries are finalized by merges on the way out and read-only after.
package liveness

import (
	"go.uber.org/zap"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/config"
)

// Option tweaks a single analysis run.
type Option func(*analyzer)

// WithLogger attaches a structured logger; nil disables logging.
func WithLogger(log *zap.Logger) Option {
	return func(z *analyzer) { z.log = log }
}

// WithConfig supplies analyzer configuration (mutator method names and the
// global-mutation warning toggle).
func WithConfig(cfg config.Analyzer) Option {
	return func(z *analyzer) {
		z.mutators = nameSet{}
		z.mutators.add(cfg.MutatorMethods...)
		z.an.warnGlobal = cfg.WarnGlobalMutation
	}
}

// Analyze runs the liveness pass over root, which is ordinarily a
// *ast.FunctionDef. A *ast.Module root analyzes each top-level statement.
func Analyze(root ast.Node, opts ...Option) *Analysis {
	z := &analyzer{an: newAnalysis(), mutators: nameSet{}}
	z.mutators.add(config.Default().Analyzer.MutatorMethods...)
	for _, opt := range opts {
		opt(z)
	}
	if z.log == nil {
		z.log = zap.NewNop()
	}
	z.visit(root)
	return z.an
}

type analyzer struct {
	an       *Analysis
	stack    []ScopeID // open scope nodes, innermost last
	mutators nameSet
	log      *zap.Logger
}

/* ---------- stack helpers ---------- */

func (z *analyzer) current() *table {
	if len(z.stack) == 0 {
		return nil
	}
	return z.an.table(z.stack[len(z.stack)-1])
}

// lexicalParent is the scope entry directly enclosing the innermost one,
// regardless of its kind.
func (z *analyzer) lexicalParent() *table {
	if len(z.stack) < 2 {
		return nil
	}
	return z.an.table(z.stack[len(z.stack)-2])
}

// nearestFunction returns the innermost open function scope, skipping past
// bare control-flow scopes. skip=0 searches from the top of the stack,
// skip=1 below the top (the enclosing chain of the scope being visited).
func (z *analyzer) nearestFunction(skip int) ScopeID {
	for i := len(z.stack) - 1 - skip; i >= 0; i-- {
		id := z.stack[i]
		if z.an.table(id).kind == KindFunction {
			return id
		}
	}
	return NoScope
}

/* ---------- traversal ---------- */

func (z *analyzer) visit(n ast.Node) {
	switch v := n.(type) {
	case *ast.FunctionDef:
		z.visitFunctionDef(v)
	case *ast.If, *ast.While, *ast.For:
		z.visitControlFlow(v.(ast.Stmt))
	case *ast.Global:
		if cur := z.current(); cur != nil {
			cur.globals.add(v.Names...)
		}
	case *ast.Nonlocal:
		if cur := z.current(); cur != nil {
			cur.nonlocals.add(v.Names...)
		}
	case *ast.Name:
		z.generic(v)
		if cur := z.current(); cur != nil && v.Ctx.Write() {
			cur.written.add(v.ID)
		}
	case *ast.Attribute:
		z.generic(v)
		// Attribute targets keep their full source text. They can never be
		// nonlocal-declared; the synthesizer reconstructs them as
		// expressions instead.
		if cur := z.current(); cur != nil && v.Ctx.Write() {
			cur.written.add(ast.ExprString(v))
		}
	case *ast.Subscript:
		z.generic(v)
		// a[i] = x mutates the container, not the binding, but downstream
		// code must still see the base name as modified.
		if cur := z.current(); cur != nil && v.Ctx.Write() {
			if base, ok := subscriptBase(v); ok {
				cur.written.add(base)
			}
		}
	case *ast.Call:
		z.generic(v)
		z.visitCall(v)
	case *ast.ListComp, *ast.SetComp, *ast.DictComp:
		// Comprehension iteration variables must not leak into the
		// enclosing scope, so comprehension bodies are opaque to
		// write-tracking.
	default:
		z.generic(n)
	}
}

func (z *analyzer) generic(n ast.Node) {
	for _, c := range ast.Children(n) {
		z.visit(c)
	}
}

// subscriptBase unwraps nested subscripts (a[i][j] = ...) down to the base
// expression and returns its name when the base is a plain name.
func subscriptBase(sub *ast.Subscript) (string, bool) {
	node := sub
	for {
		inner, ok := node.Value.(*ast.Subscript)
		if !ok {
			break
		}
		node = inner
	}
	if name, ok := node.Value.(*ast.Name); ok {
		return name.ID, true
	}
	return "", false
}

func (z *analyzer) visitCall(call *ast.Call) {
	cur := z.current()
	if cur == nil {
		return
	}
	attr, ok := call.Func.(*ast.Attribute)
	if !ok || !z.mutators.has(attr.Attr) {
		return
	}
	// append/pop don't rebind the receiver; only the container contents
	// change, so this is tracked apart from written.
	receiver := ast.ExprString(attr.Value)
	cur.variadicMutated.add(receiver)
	z.log.Debug("variadic mutation recorded",
		zap.String("receiver", receiver),
		zap.String("method", attr.Attr))
}

/* ---------- scope nodes ---------- */

func (z *analyzer) visitFunctionDef(fn *ast.FunctionDef) {
	id := z.an.newScope(KindFunction, z.nearestFunction(0))
	z.an.byNode[fn] = id
	z.stack = append(z.stack, id)

	t := z.an.table(id)
	// Parameters are local to the function and never count as created.
	t.args.add(fn.Args.Names()...)

	z.generic(fn)

	// A lowered branch or loop body is invoked from inside its father's
	// compiled form, so its writes and container mutations belong to the
	// father's contract as well. The role tag is set at construction.
	if fn.Role.ControlFlowBody() {
		if parent := z.lexicalParent(); parent != nil {
			parent.written.union(t.written)
			parent.variadicMutated.union(t.variadicMutated)
		}
	}

	z.stack = z.stack[:len(z.stack)-1]
	z.log.Debug("function scope closed",
		zap.String("name", fn.Name),
		zap.String("role", fn.Role.String()),
		zap.Strings("written", t.written.sorted()))
}

func (z *analyzer) visitControlFlow(node ast.Stmt) {
	// Snapshot which locals the enclosing function already has; whatever
	// exists afterward but not now was created inside this node.
	var before nameSet
	if fnID := z.nearestFunction(0); fnID != NoScope {
		before = z.an.table(fnID).existedSet()
	}

	id := z.an.newScope(KindControlFlow, z.nearestFunction(0))
	z.an.byNode[node] = id
	z.stack = append(z.stack, id)

	z.generic(node)

	t := z.an.table(id)
	// Two merge targets: the function-scope merge makes names visible
	// across sibling control-flow blocks, the lexical-parent merge
	// preserves nesting.
	if parent := z.lexicalParent(); parent != nil {
		parent.mergeFrom(t)
	}
	if fnID := z.nearestFunction(1); fnID != NoScope {
		fn := z.an.table(fnID)
		fn.mergeFrom(t)
		for name := range fn.existedSet() {
			if before.has(name) {
				continue
			}
			// Created names must be pre-declared with the undefined
			// sentinel ahead of this node in generated code: every path,
			// including ones skipping the node, must bind them.
			t.created.add(name)
			fn.created.add(name)
		}
	}

	z.stack = z.stack[:len(z.stack)-1]
}
