package validate

import "database/sql/driver"

// Option is a value that may or may not be present. It is the maybe-shape
// understood by IsPresent, IsNotPresent and the emptiness inspector.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsPresent reports whether the option holds a value.
func (o Option[T]) IsPresent() bool {
	return o.present
}

// Get returns the held value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// OrElse returns the held value, or def if none is present.
func (o Option[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

type presenter interface {
	IsPresent() bool
}

// presence probes v for a maybe-shape. applicable is false when v has none.
// database/sql Null* types are recognised through driver.Valuer: a nil driver
// value means absent.
func presence(v any) (present, applicable bool, err error) {
	switch p := v.(type) {
	case presenter:
		return p.IsPresent(), true, nil
	case driver.Valuer:
		dv, verr := p.Value()
		if verr != nil {
			return false, true, verr
		}
		return dv != nil, true, nil
	default:
		return false, false, nil
	}
}
