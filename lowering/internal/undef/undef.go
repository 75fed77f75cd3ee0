// Package undef provides the placeholder bound to variables that are created
// on only one control-flow path. The target representation requires every
// name referenced anywhere in a lowered region to be bound on every path, so
// the path that skips the defining arm binds the name to a sentinel instead.
// Reading the sentinel reproduces ordinary use-before-assignment semantics.
package undef

import "fmt"

// Undefined is the sentinel value. It carries the variable name so the
// failure at the point of use can say which binding was never produced.
type Undefined struct {
	Name string
}

func (u Undefined) String() string { return fmt.Sprintf("<undefined %s>", u.Name) }

// Check returns the error a read of the sentinel must surface.
func (u Undefined) Check() error {
	return &UnboundError{Name: u.Name}
}

// UnboundError is a use-before-assignment failure.
type UnboundError struct {
	Name string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("local variable %q should be created before using it", e.Name)
}

// Saw passes a value through, failing if it is still the sentinel. Lowered
// code wraps reads that may observe a skipped-arm binding.
func Saw(v any) (any, error) {
	if u, ok := v.(Undefined); ok {
		return nil, u.Check()
	}
	if u, ok := v.(*Undefined); ok {
		return nil, u.Check()
	}
	return v, nil
}

// NoValueName is the synthetic variable standing in for "this branch returns
// nothing" in lowered code.
const NoValueName = "__no_value_return_var"

// NoValueMagic marks a tensor-shaped no-value placeholder. Single precision
// on the runtime side, so compare loosely.
const NoValueMagic = 1.77113e27

// IsNoValue reports whether v is the no-value placeholder.
func IsNoValue(v any) bool {
	f, ok := v.(float64)
	return ok && f == NoValueMagic
}
