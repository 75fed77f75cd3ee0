// Package bind gives name-addressed access on top of the positional tuple a
// lowered body threads through its getter/setter pair. The union of all
// declared name lists is computed once per mediator, so every branch of a
// lowered construct agrees on slot layout.
package bind

import (
	"fmt"
	"sort"
)

// Getter returns the current full tuple, indexed by the mediator's union.
// A nil result means the accessor pair threads nothing.
type Getter func() []any

// Setter replaces the full tuple.
type Setter func([]any)

// UnknownNameError reports a requested name absent from the declared union.
type UnknownNameError struct {
	Name  string
	Known []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("name %q is not in the declared union %v", e.Name, e.Known)
}

// Mediator maps names to stable slot indices over a getter/setter pair.
// One mediator lives for one lowering call-site.
type Mediator struct {
	getter Getter
	setter Setter
	union  []string
	index  map[string]int
}

// New computes the sorted, de-duplicated union of the given name lists
// (e.g. the written names of each branch plus the variadic-mutated names)
// and fixes the name→index map over it.
func New(getter Getter, setter Setter, nameLists ...[]string) *Mediator {
	seen := map[string]struct{}{}
	for _, list := range nameLists {
		for _, n := range list {
			seen[n] = struct{}{}
		}
	}
	union := make([]string, 0, len(seen))
	for n := range seen {
		union = append(union, n)
	}
	sort.Strings(union)

	index := make(map[string]int, len(union))
	for i, n := range union {
		index[n] = i
	}
	return &Mediator{getter: getter, setter: setter, union: union, index: index}
}

// Union returns the full declared name list in slot order.
func (m *Mediator) Union() []string {
	return append([]string(nil), m.union...)
}

func (m *Mediator) check(names []string) error {
	for _, n := range names {
		if _, ok := m.index[n]; !ok {
			return &UnknownNameError{Name: n, Known: m.Union()}
		}
	}
	return nil
}

// Get returns the current values of names, in the order of names. A getter
// yielding nothing produces an empty result.
func (m *Mediator) Get(names []string) ([]any, error) {
	if err := m.check(names); err != nil {
		return nil, err
	}
	vars := m.getter()
	if vars == nil {
		return nil, nil
	}
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = vars[m.index[n]]
	}
	return out, nil
}

// Set overwrites the slots named by names with values (zipped pairwise) and
// writes the updated full tuple back through the setter. A getter yielding
// nothing makes this a no-op.
func (m *Mediator) Set(names []string, values []any) error {
	if err := m.check(names); err != nil {
		return err
	}
	vars := m.getter()
	if vars == nil {
		return nil
	}
	updated := append([]any(nil), vars...)
	for i := 0; i < len(names) && i < len(values); i++ {
		updated[m.index[names[i]]] = values[i]
	}
	m.setter(updated)
	return nil
}
