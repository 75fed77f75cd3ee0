// Package lower rewrites the branches and loops of one function into
// standalone callables plus explicit variable threading, the form a
// static-dataflow-graph runtime can execute. The scope analysis decides
// which names must be threaded; the synthesizer emits the accessor pair each
// construct communicates through.
package lower

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/config"
	"github.com/graphlower/graphlower/lowering/internal/diag"
	"github.com/graphlower/graphlower/lowering/internal/liveness"
	"github.com/graphlower/graphlower/lowering/internal/staging"
	"github.com/graphlower/graphlower/lowering/internal/uniquename"
)

// Result is the outcome of lowering one function.
type Result struct {
	// Func is the lowered copy; the input function is never mutated.
	Func *ast.FunctionDef

	// Analysis is the scope annotation of the original function.
	Analysis *liveness.Analysis

	// Source is the rendered lowered function.
	Source string

	// Warnings accumulated by the analysis and the lowering.
	Warnings []diag.Warning
}

// Engine lowers functions at most once per function identity. Late callers
// block on the in-flight computation and share its result.
type Engine struct {
	cfg   config.Config
	log   *zap.Logger
	gen   uniquename.Generator
	group singleflight.Group
	cache resultCache
}

// resultCache is a typed wrapper around sync.Map.
type resultCache struct{ m sync.Map }

func (c *resultCache) load(key string) (*Result, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Result), true
}

func (c *resultCache) store(key string, r *Result) { c.m.Store(key, r) }

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithConfig overrides the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// NewEngine builds an engine with default config and a no-op logger.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{cfg: config.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// Lower transforms fn, memoized on the function's identity. Concurrent
// requests for the same function perform the work once.
func (e *Engine) Lower(fn *ast.FunctionDef) (*Result, error) {
	key := fmt.Sprintf("%p", fn)
	if r, ok := e.cache.load(key); ok {
		return r, nil
	}
	v, err, _ := e.group.Do(key, func() (any, error) {
		if r, ok := e.cache.load(key); ok {
			return r, nil
		}
		r, err := e.lower(fn)
		if err != nil {
			return nil, err
		}
		e.cache.store(key, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// LowerAndStage lowers fn and writes the rendered source to the staging
// area, returning the staged path alongside the result. staging.Init must
// have succeeded first.
func (e *Engine) LowerAndStage(fn *ast.FunctionDef) (*Result, string, error) {
	r, err := e.Lower(fn)
	if err != nil {
		return nil, "", err
	}
	path, err := staging.Stage(fn.Name, r.Source)
	if err != nil {
		return nil, "", err
	}
	return r, path, nil
}

func (e *Engine) lower(fn *ast.FunctionDef) (*Result, error) {
	if fn == nil {
		return nil, fmt.Errorf("lower: nil function")
	}
	an := liveness.Analyze(fn,
		liveness.WithLogger(e.log),
		liveness.WithConfig(e.cfg.Analyzer))
	fnScope, ok := an.ScopeOf(fn)
	if !ok {
		return nil, fmt.Errorf("lower: no scope entry for function %q", fn.Name)
	}

	body, err := e.lowerStmts(an, fnScope, fn.Body)
	if err != nil {
		return nil, fmt.Errorf("lower %s: %w", fn.Name, err)
	}
	lowered := &ast.FunctionDef{
		Name: fn.Name,
		Args: fn.Args,
		Body: body,
		Role: fn.Role,
	}
	src := ast.DumpStmt(lowered, 0)
	e.log.Debug("function lowered",
		zap.String("name", fn.Name),
		zap.Int("warnings", len(an.Warnings())))
	return &Result{
		Func:     lowered,
		Analysis: an,
		Source:   src,
		Warnings: an.Warnings(),
	}, nil
}

// lowerStmts rewrites a statement list bottom-up: nested constructs are
// lowered before the construct that contains them. Nested function
// definitions pass through untouched: the transform runs once per function
// identity, so an inner function is lowered when it is itself handed to
// Lower, not as a side effect of lowering its container.
func (e *Engine) lowerStmts(an *liveness.Analysis, fnScope liveness.Scope, body []ast.Stmt) ([]ast.Stmt, error) {
	var out []ast.Stmt
	for _, s := range body {
		switch st := s.(type) {
		case *ast.If:
			inner, err := e.lowerStmts(an, fnScope, st.Body)
			if err != nil {
				return nil, err
			}
			elseBody, err := e.lowerStmts(an, fnScope, st.Else)
			if err != nil {
				return nil, err
			}
			stmts, err := e.lowerIf(an, fnScope, st, inner, elseBody)
			if err != nil {
				return nil, err
			}
			out = append(out, stmts...)
		case *ast.While:
			inner, err := e.lowerStmts(an, fnScope, st.Body)
			if err != nil {
				return nil, err
			}
			elseBody, err := e.lowerStmts(an, fnScope, st.Else)
			if err != nil {
				return nil, err
			}
			stmts, err := e.lowerWhile(an, fnScope, st, inner, elseBody)
			if err != nil {
				return nil, err
			}
			out = append(out, stmts...)
		default:
			out = append(out, s)
		}
	}
	return out, nil
}
