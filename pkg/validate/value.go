package validate

import (
	"fmt"
	"reflect"
)

// isNil reports whether v is the nil sentinel: an untyped nil, or a nil
// pointer, map, slice, channel, func or interface.
func isNil(v any) bool {
	vv := reflect.ValueOf(v)
	if !vv.IsValid() {
		return true
	}
	switch vv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return vv.IsNil()
	default:
		return false
	}
}

// equal is a nil-safe value equality: two nils are equal, a nil and a non-nil
// are not. Values with an Equal(T) bool method (time.Time and friends) are
// compared with it, everything else with reflect.DeepEqual.
func equal[T any](a, b T) bool {
	aNil, bNil := isNil(a), isNil(b)
	if aNil || bNil {
		return aNil && bNil
	}
	if eq, ok := any(a).(interface{ Equal(T) bool }); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// text returns the textual form used for pattern matching.
func text(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case []byte:
		return string(tv)
	case fmt.Stringer:
		return tv.String()
	case error:
		return tv.Error()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return text(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// display renders a value for inclusion in a failure message.
func display(v any) string {
	if isNil(v) {
		return "<nil>"
	}
	return text(v)
}
