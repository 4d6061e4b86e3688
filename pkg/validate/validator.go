package validate

import "fmt"

const defaultName = "value"

// Validator holds a value under validation. Every check returns the validator
// so calls can be chained; the first failing check aborts the chain by
// raising an error through the validator's Strategy.
//
// A Validator is meant to be used by the call that created it and must not be
// shared between goroutines.
type Validator[T any] struct {
	value    T
	name     string
	strategy Strategy
	err      error
}

// New creates a validator for value that raises failures according to
// strategy. Hope and Doubt cover the common cases.
func New[T any](value T, strategy Strategy) *Validator[T] {
	if strategy.NewError == nil {
		strategy.NewError = newCheckedError
	}
	return &Validator[T]{value: value, name: defaultName, strategy: strategy}
}

// Named sets the name used in failure messages. It modifies and returns the
// receiver.
func (v *Validator[T]) Named(name string) *Validator[T] {
	v.name = name
	return v
}

// Name returns the name used in failure messages.
func (v *Validator[T]) Name() string {
	return v.name
}

// Value returns the value being validated.
func (v *Validator[T]) Value() T {
	return v.value
}

// Err returns the failure recorded by a non-panicking strategy, or nil.
func (v *Validator[T]) Err() error {
	return v.err
}

// Result returns the value and the recorded failure, if any.
func (v *Validator[T]) Result() (T, error) {
	return v.value, v.err
}

// IsNotNull fails if the value is nil.
func (v *Validator[T]) IsNotNull() *Validator[T] {
	if v.err == nil && isNil(v.value) {
		v.invalid(nil, "%s must not be null", v.name)
	}
	return v
}

// IsNull fails unless the value is nil.
func (v *Validator[T]) IsNull() *Validator[T] {
	if v.err == nil && !isNil(v.value) {
		v.invalid(nil, "%s must be null", v.name)
	}
	return v
}

// IsPresent fails unless the value is a present Option (or another
// IsPresent() bool / driver.Valuer shape). Nil values and values without a
// presence query fail as well.
func (v *Validator[T]) IsPresent() *Validator[T] {
	if present, ok := v.presence(); ok && !present {
		v.invalid(nil, "%s must be present", v.name)
	}
	return v
}

// IsNotPresent fails if the value is a present Option. Nil values and values
// without a presence query fail as well.
func (v *Validator[T]) IsNotPresent() *Validator[T] {
	if present, ok := v.presence(); ok && present {
		v.invalid(nil, "%s must not be present", v.name)
	}
	return v
}

// presence reports whether the value is present; ok is false when the check
// has already failed.
func (v *Validator[T]) presence() (present, ok bool) {
	if v.IsNotNull(); v.err != nil {
		return false, false
	}

	present, applicable, err := presence(any(v.value))
	switch {
	case !applicable:
		v.invalid(nil, "%s is not an Optional; presence cannot be checked", v.name)
		return false, false
	case err != nil:
		v.invalid(err, "%s presence could not be determined", v.name)
		return false, false
	}
	return present, true
}

// IsNotNullOrEmpty fails if the value is nil or empty. See Empty for how
// emptiness is determined; a type Empty cannot inspect raises a
// *ConfigurationError.
func (v *Validator[T]) IsNotNullOrEmpty() *Validator[T] {
	if v.IsNotNull(); v.err != nil {
		return v
	}

	empty, err := Empty(v.value)
	switch {
	case IsConfigurationError(err):
		v.raise(err)
	case err != nil:
		v.invalid(err, "%s emptiness could not be determined", v.name)
	case empty:
		v.invalid(nil, "%s must not be empty", v.name)
	}
	return v
}

// IsEqualTo fails unless the value equals other. Two nils are equal.
func (v *Validator[T]) IsEqualTo(other T) *Validator[T] {
	if v.err == nil && !equal(v.value, other) {
		v.invalid(nil, "%s must be equal to '%s'", v.name, display(other))
	}
	return v
}

// IsNotEqualTo fails if the value equals other. Two nils are equal.
func (v *Validator[T]) IsNotEqualTo(other T) *Validator[T] {
	if v.err == nil && equal(v.value, other) {
		v.invalid(nil, "%s must not be equal to '%s'", v.name, display(other))
	}
	return v
}

// IsTrue fails unless test returns true for the value. msgAndArgs is an
// optional format string followed by its arguments.
func (v *Validator[T]) IsTrue(test func(T) bool, msgAndArgs ...any) *Validator[T] {
	if v.err == nil && !test(v.value) {
		v.invalid(nil, "%s", message("custom validation logic must evaluate to true", msgAndArgs))
	}
	return v
}

// IsFalse fails if test returns true for the value. msgAndArgs is an optional
// format string followed by its arguments.
func (v *Validator[T]) IsFalse(test func(T) bool, msgAndArgs ...any) *Validator[T] {
	if v.err == nil && test(v.value) {
		v.invalid(nil, "%s", message("custom validation logic must evaluate to false", msgAndArgs))
	}
	return v
}

// Matches fails unless the value's text form fully matches regex.
func (v *Validator[T]) Matches(regex string) *Validator[T] {
	return v.MatchesAny(regex)
}

// MatchesAny fails unless the value's text form fully matches at least one of
// regexes. The text form is the value itself for strings and byte slices, the
// result of String or Error when available, and fmt.Sprint otherwise.
//
// Supplying no patterns, or a pattern that does not compile, raises a
// *ConfigurationError whatever the value.
func (v *Validator[T]) MatchesAny(regexes ...string) *Validator[T] {
	if v.err != nil {
		return v
	}
	if len(regexes) == 0 {
		v.raise(NewConfigurationError("no patterns supplied"))
		return v
	}

	matchers := make([]func(string) bool, len(regexes))
	for i, regex := range regexes {
		re, err := fullMatcher(regex)
		if err != nil {
			v.raise(NewConfigurationError(fmt.Sprintf("invalid pattern %q", regex)).Wrap(err))
			return v
		}
		matchers[i] = re.MatchString
	}

	if v.IsNotNull(); v.err != nil {
		return v
	}

	s := text(v.value)
	for _, match := range matchers {
		if match(s) {
			return v
		}
	}
	v.invalid(nil, "%s must match at least one of the following regular expressions: %s",
		v.name, quotePatterns(regexes))
	return v
}

// OrElse replaces a nil value with def. It never fails and is the only
// operation that changes the value in place.
func (v *Validator[T]) OrElse(def T) *Validator[T] {
	if isNil(v.value) {
		v.value = def
	}
	return v
}

// Map returns a validator for fn applied to v's value. The new validator keeps
// v's name and strategy. If v has already recorded a failure, fn is not called
// and the failure carries over.
func Map[T, U any](v *Validator[T], fn func(T) U) *Validator[U] {
	next := &Validator[U]{name: v.name, strategy: v.strategy, err: v.err}
	if v.err == nil {
		next.value = fn(v.value)
	}
	return next
}

// MapErr is Map for conversions that can fail. An error returned by fn is
// raised as is, without going through the strategy's ErrorFactory. Under an
// optimistic strategy that means a panic with fn's own error, which Recover
// and guard.Middleware re-panic unless it matches ErrValidation. Wrap the
// error in fn to have it treated as a validation failure:
//
//	id := validate.MapErr(validate.Hope(raw).Named("id"), func(s string) (uuid.UUID, error) {
//	    u, err := uuid.Parse(s)
//	    if err != nil {
//	        return u, validate.NewUncheckedError("id must be a UUID").Wrap(err)
//	    }
//	    return u, nil
//	}).Value()
func MapErr[T, U any](v *Validator[T], fn func(T) (U, error)) *Validator[U] {
	next := &Validator[U]{name: v.name, strategy: v.strategy, err: v.err}
	if v.err != nil {
		return next
	}

	value, err := fn(v.value)
	if err != nil {
		next.raise(err)
		return next
	}
	next.value = value
	return next
}

// invalid raises a validation failure built by the strategy.
func (v *Validator[T]) invalid(cause error, format string, args ...any) {
	v.raise(v.strategy.NewError(fmt.Sprintf(format, args...), cause))
}

func (v *Validator[T]) raise(err error) {
	v.err = err
	if v.strategy.Observe != nil {
		v.strategy.Observe(v.name, err)
	}
	if v.strategy.Panic {
		panic(err)
	}
}

// message renders the caller's optional msgAndArgs, falling back to def. A
// lone format string is used verbatim.
func message(def string, msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return def
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprint(msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs...)
}
