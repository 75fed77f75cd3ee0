package liveness

import (
	"sort"
	"strings"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/diag"
)

// ScopeID indexes a scope table entry inside an Analysis arena. The father
// chain is expressed as parent indices, so entries never own each other.
type ScopeID int

// NoScope is the absent-father marker.
const NoScope ScopeID = -1

// ScopeKind tags the node class that introduced a scope entry.
type ScopeKind int

const (
	KindFunction ScopeKind = iota
	KindControlFlow
)

func (k ScopeKind) String() string {
	if k == KindFunction {
		return "function"
	}
	return "controlflow"
}

type nameSet map[string]struct{}

func (s nameSet) add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

func (s nameSet) has(n string) bool { _, ok := s[n]; return ok }

func (s nameSet) union(other nameSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

func (s nameSet) sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// table is one scope entry. Entries are filled during the single traversal
// (mutated only via merges) and read-only afterward.
type table struct {
	kind   ScopeKind
	father ScopeID // nearest enclosing function scope

	globals         nameSet
	nonlocals       nameSet
	args            nameSet
	written         nameSet // all assignment/del targets, qualified included
	created         nameSet // first introduced inside this control-flow node
	variadicMutated nameSet // receivers of append/pop style calls

	// memoized VariadicLengthVars result, so the per-exclusion diagnostic
	// fires exactly once.
	vlVars []string
	vlDone bool
}

func newTable(kind ScopeKind, father ScopeID) *table {
	return &table{
		kind:            kind,
		father:          father,
		globals:         nameSet{},
		nonlocals:       nameSet{},
		args:            nameSet{},
		written:         nameSet{},
		created:         nameSet{},
		variadicMutated: nameSet{},
	}
}

// mergeFrom unions every classification set except created. After lowering,
// a nested control-flow body becomes a callable invoked from inside the
// enclosing function, so its effects must land in the enclosing contract.
func (t *table) mergeFrom(other *table) {
	t.globals.union(other.globals)
	t.nonlocals.union(other.nonlocals)
	t.args.union(other.args)
	t.written.union(other.written)
	t.variadicMutated.union(other.variadicMutated)
}

// existedSet is written − globals − nonlocals − args, simple names only.
func (t *table) existedSet() nameSet {
	out := nameSet{}
	for n := range t.written {
		if !isSimpleName(n) {
			continue
		}
		if t.globals.has(n) || t.nonlocals.has(n) || t.args.has(n) {
			continue
		}
		out[n] = struct{}{}
	}
	return out
}

func isSimpleName(name string) bool {
	return !strings.ContainsAny(name, ".[")
}

// IsSimpleName reports whether name is a bare identifier rather than the
// source text of an attribute or subscript target.
func IsSimpleName(name string) bool { return isSimpleName(name) }

/* ---------- analysis results ---------- */

// Analysis holds the scope arena produced by one traversal of a function.
type Analysis struct {
	scopes     []*table
	byNode     map[ast.Stmt]ScopeID
	warnings   []diag.Warning
	warnGlobal bool
}

func newAnalysis() *Analysis {
	return &Analysis{byNode: map[ast.Stmt]ScopeID{}, warnGlobal: true}
}

func (a *Analysis) newScope(kind ScopeKind, father ScopeID) ScopeID {
	a.scopes = append(a.scopes, newTable(kind, father))
	return ScopeID(len(a.scopes) - 1)
}

func (a *Analysis) table(id ScopeID) *table {
	if id == NoScope {
		return nil
	}
	return a.scopes[id]
}

// ScopeOf returns the scope entry attached to a function-definition or
// control-flow node.
func (a *Analysis) ScopeOf(node ast.Stmt) (Scope, bool) {
	id, ok := a.byNode[node]
	if !ok {
		return Scope{}, false
	}
	return Scope{an: a, id: id}, true
}

// Scopes returns every entry in creation order.
func (a *Analysis) Scopes() []Scope {
	out := make([]Scope, len(a.scopes))
	for i := range a.scopes {
		out[i] = Scope{an: a, id: ScopeID(i)}
	}
	return out
}

// Warnings returns the diagnostics accumulated so far, in emission order.
func (a *Analysis) Warnings() []diag.Warning {
	return a.warnings
}

/* ---------- scope handle ---------- */

// Scope is a read handle onto one arena entry.
type Scope struct {
	an *Analysis
	id ScopeID
}

func (s Scope) t() *table { return s.an.table(s.id) }

// ID returns the arena index of this scope.
func (s Scope) ID() ScopeID { return s.id }

// Kind reports whether the entry belongs to a function or control-flow node.
func (s Scope) Kind() ScopeKind { return s.t().kind }

// Father returns the nearest enclosing function scope, if any.
func (s Scope) Father() (Scope, bool) {
	f := s.t().father
	if f == NoScope {
		return Scope{}, false
	}
	return Scope{an: s.an, id: f}, true
}

func (s Scope) Globals() []string         { return s.t().globals.sorted() }
func (s Scope) Nonlocals() []string       { return s.t().nonlocals.sorted() }
func (s Scope) Args() []string            { return s.t().args.sorted() }
func (s Scope) CreatedVars() []string     { return s.t().created.sorted() }
func (s Scope) VariadicMutated() []string { return s.t().variadicMutated.sorted() }

// ModifiedVars returns every written target: globals, nonlocals, args and
// qualified names included.
func (s Scope) ModifiedVars() []string { return s.t().written.sorted() }

// ExistedVars returns the names genuinely local to this scope:
// written − globals − nonlocals − args, simple names only.
func (s Scope) ExistedVars() []string { return s.t().existedSet().sorted() }

// IsGlobalVar resolves whether name binds in module-global scope, walking
// the father chain from this entry upward. A name assigned or declared
// nonlocal in some ancestor is local; an exhausted chain defaults to global.
// Only meaningful once the traversal has finished. Qualified names never
// denote a binding, so they resolve to false.
func (s Scope) IsGlobalVar(name string) bool {
	if !isSimpleName(name) {
		return false
	}
	for t := s.t(); t != nil; t = s.an.table(t.father) {
		if t.globals.has(name) {
			return true
		}
		if t.nonlocals.has(name) || t.written.has(name) {
			return false
		}
	}
	return true
}

// IsLocalVar is the complement of IsGlobalVar.
func (s Scope) IsLocalVar(name string) bool { return !s.IsGlobalVar(name) }

// VariadicLengthVars returns the variadic-mutated receivers that can be
// threaded through a lowered body. A simple name that is global in the
// enclosing function is dropped: mutating a module-global container cannot
// be captured by per-call variable threading. Each dropped name emits
// exactly one diagnostic, on the first call.
func (s Scope) VariadicLengthVars() []string {
	t := s.t()
	if t.vlDone {
		return append([]string(nil), t.vlVars...)
	}
	t.vlDone = true
	for _, name := range t.variadicMutated.sorted() {
		if isSimpleName(name) && s.IsGlobalVar(name) {
			if s.an.warnGlobal {
				ce := diag.MustLookup("analyzer", "global_container_mutation",
					"GLW0001", "container mutation on a global-scope name")
				s.an.warnings = append(s.an.warnings, diag.Warningf(ce.ID,
					"variable %q is defined in global scope and mutated via %s.append()/%s.pop(); it is ignored and never threaded",
					name, name, name))
			}
			continue
		}
		t.vlVars = append(t.vlVars, name)
	}
	return append([]string(nil), t.vlVars...)
}
