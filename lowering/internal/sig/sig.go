// Package sig answers signature-compatibility queries between the input
// specs a function was lowered for and the specs a caller presents. The
// query is a plain boolean, never fatal: incompatible simply means "lower
// again for this signature".
package sig

import (
	"fmt"
	"reflect"
	"strings"
)

// AnyDim marks a tensor dimension of unknown or variable size.
const AnyDim = -1

// TensorSpec describes one tensor input: a shape (AnyDim entries are
// wildcards) and a dtype name.
type TensorSpec struct {
	Shape []int
	Dtype string
}

func (s *TensorSpec) String() string {
	parts := make([]string, len(s.Shape))
	for i, d := range s.Shape {
		if d < 0 {
			parts[i] = "?"
		} else {
			parts[i] = fmt.Sprintf("%d", d)
		}
	}
	return fmt.Sprintf("TensorSpec([%s], %s)", strings.Join(parts, ", "), s.Dtype)
}

// Compatible reports whether two specs can stand in for each other: equal
// rank and dtype, with wildcard dimensions matching anything.
func (s *TensorSpec) Compatible(other *TensorSpec) bool {
	if s == nil || other == nil {
		return false
	}
	if len(s.Shape) != len(other.Shape) {
		return false
	}
	for i := range s.Shape {
		if s.Shape[i] < 0 || other.Shape[i] < 0 {
			continue
		}
		if s.Shape[i] != other.Shape[i] {
			return false
		}
	}
	return s.Dtype == other.Dtype
}

// SpecsCompatible reports whether two input-spec lists are compatible.
// Lists of equal length compare element-wise; a shorter src list is also
// accepted when it is a subset of desired (a saved signature may narrow the
// lowered one).
func SpecsCompatible(src, desired []any) bool {
	if len(src) != len(desired) {
		for _, s := range src {
			if !containsSpec(desired, s) {
				return false
			}
		}
		return true
	}
	for i := range src {
		if !specPairCompatible(src[i], desired[i]) {
			return false
		}
	}
	return true
}

func containsSpec(specs []any, want any) bool {
	for _, s := range specs {
		if specPairCompatible(s, want) {
			return true
		}
	}
	return false
}

func specPairCompatible(a, b any) bool {
	ta, aIsTensor := a.(*TensorSpec)
	tb, bIsTensor := b.(*TensorSpec)
	if aIsTensor || bIsTensor {
		if !aIsTensor || !bIsTensor {
			return false
		}
		return ta.Compatible(tb)
	}
	ka, okA := Key(a)
	kb, okB := Key(b)
	if !okA || !okB {
		return okA == okB && reflect.DeepEqual(a, b)
	}
	return ka == kb
}
