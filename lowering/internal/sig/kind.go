package sig

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// StructKind is the structural class of a value: the explicit predicate used
// instead of probing for hashability and recovering from failure.
type StructKind int

const (
	KindScalar  StructKind = iota // nil, bool, numbers, strings
	KindSeq                       // slices and arrays
	KindMapping                   // maps
	KindOpaque                    // everything else
)

func (k StructKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSeq:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "opaque"
	}
}

// KindOf classifies v structurally, without relying on failure signaling.
func KindOf(v any) StructKind {
	if v == nil {
		return KindScalar
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindScalar
	case reflect.Slice, reflect.Array:
		return KindSeq
	case reflect.Map:
		return KindMapping
	default:
		return KindOpaque
	}
}

// Key builds a canonical string key for v, usable as a memo-cache component.
// Sequences key their elements in order; mappings key their values under
// sorted keys. ok is false for opaque values, which have no stable key.
func Key(v any) (string, bool) {
	switch KindOf(v) {
	case KindScalar:
		return fmt.Sprintf("%T:%v", v, v), true
	case KindSeq:
		rv := reflect.ValueOf(v)
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			k, ok := Key(rv.Index(i).Interface())
			if !ok {
				return "", false
			}
			parts[i] = k
		}
		return "[" + strings.Join(parts, ",") + "]", true
	case KindMapping:
		rv := reflect.ValueOf(v)
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]string, rv.Len())
		for _, mk := range rv.MapKeys() {
			ks := fmt.Sprintf("%v", mk.Interface())
			vs, ok := Key(rv.MapIndex(mk).Interface())
			if !ok {
				return "", false
			}
			keys = append(keys, ks)
			byKey[ks] = vs
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + byKey[k]
		}
		return "{" + strings.Join(parts, ",") + "}", true
	default:
		return "", false
	}
}
