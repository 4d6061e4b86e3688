package validate

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
)

type (
	emptier    interface{ IsEmpty() bool }
	intSizer   interface{ Size() int }
	longSizer  interface{ Size() int64 }
	intLener   interface{ Len() int }
	longLener  interface{ Len() int64 }
	intLength  interface{ Length() int }
	longLength interface{ Length() int64 }
)

// emptinessProbe answers "is v empty?" for one capability shape. applicable
// is false when v does not have that shape.
type emptinessProbe struct {
	signature string
	probe     func(v any) (empty, applicable bool, err error)
}

// emptinessProbes are consulted in order; the first applicable probe decides.
var emptinessProbes = []emptinessProbe{
	{"array or slice", func(v any) (bool, bool, error) {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Array || rv.Kind() == reflect.Slice {
			return rv.Len() == 0, true, nil
		}
		return false, false, nil
	}},
	{"IsEmpty() bool", func(v any) (bool, bool, error) {
		if e, ok := v.(emptier); ok {
			return e.IsEmpty(), true, nil
		}
		return false, false, nil
	}},
	// Absent means empty.
	{"IsPresent() bool", func(v any) (bool, bool, error) {
		if p, ok := v.(presenter); ok {
			return !p.IsPresent(), true, nil
		}
		return false, false, nil
	}},
	{"driver.Valuer", func(v any) (bool, bool, error) {
		if dv, ok := v.(driver.Valuer); ok {
			value, err := dv.Value()
			return value == nil, true, err
		}
		return false, false, nil
	}},
	{"Size() int", func(v any) (bool, bool, error) {
		if s, ok := v.(intSizer); ok {
			return s.Size() == 0, true, nil
		}
		return false, false, nil
	}},
	{"Size() int64", func(v any) (bool, bool, error) {
		if s, ok := v.(longSizer); ok {
			return s.Size() == 0, true, nil
		}
		return false, false, nil
	}},
	{"map or chan", func(v any) (bool, bool, error) {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Map || rv.Kind() == reflect.Chan {
			return rv.Len() == 0, true, nil
		}
		return false, false, nil
	}},
	{"Len() int", func(v any) (bool, bool, error) {
		if l, ok := v.(intLener); ok {
			return l.Len() == 0, true, nil
		}
		return false, false, nil
	}},
	{"Len() int64", func(v any) (bool, bool, error) {
		if l, ok := v.(longLener); ok {
			return l.Len() == 0, true, nil
		}
		return false, false, nil
	}},
	{"Length() int", func(v any) (bool, bool, error) {
		if l, ok := v.(intLength); ok {
			return l.Length() == 0, true, nil
		}
		return false, false, nil
	}},
	{"Length() int64", func(v any) (bool, bool, error) {
		if l, ok := v.(longLength); ok {
			return l.Length() == 0, true, nil
		}
		return false, false, nil
	}},
	{"string", func(v any) (bool, bool, error) {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.String {
			return rv.Len() == 0, true, nil
		}
		return false, false, nil
	}},
}

// Empty reports whether v is empty. No interface is required of v: it is
// probed, in order, for being an array or slice, an IsEmpty() bool method, a
// presence query (IsPresent() bool, then driver.Valuer; absent means empty),
// a size query (Size() int|int64, then map and chan lengths) and a length
// query (Len() int|int64, Length() int|int64, then string length). Only the
// first matching shape is asked. A non-nil pointer that matches nothing is
// dereferenced and probed again; a non-pointer value that matches nothing is
// probed once more through a pointer to a copy, so methods with pointer
// receivers count.
//
// A nil v is empty. When no shape matches, Empty returns a
// *ConfigurationError naming the type and the probed signatures.
func Empty(v any) (bool, error) {
	cur := v
	for {
		if isNil(cur) {
			return true, nil
		}
		if empty, ok, err := probe(cur); ok {
			return empty, err
		}

		rv := reflect.ValueOf(cur)
		if rv.Kind() != reflect.Pointer {
			addr := reflect.New(rv.Type())
			addr.Elem().Set(rv)
			if empty, ok, err := probe(addr.Interface()); ok {
				return empty, err
			}
			break
		}
		cur = rv.Elem().Interface()
	}

	return false, NewConfigurationError(fmt.Sprintf(
		"type %s does not provide any emptiness checkers matching any of: %s",
		reflect.TypeOf(v), emptinessSignatures(),
	))
}

// probe asks the first applicable emptiness probe about v.
func probe(v any) (empty, applicable bool, err error) {
	for _, p := range emptinessProbes {
		if empty, ok, err := p.probe(v); ok {
			return empty, true, err
		}
	}
	return false, false, nil
}

func emptinessSignatures() string {
	signatures := make([]string, len(emptinessProbes))
	for i, p := range emptinessProbes {
		signatures[i] = p.signature
	}
	return strings.Join(signatures, ", ")
}
