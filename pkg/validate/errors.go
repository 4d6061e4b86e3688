package validate

import "errors"

// Sentinel errors matched by every error this package raises.
var (
	// ErrValidation is matched by UncheckedError and CheckedError: the inspected
	// value broke a rule.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration is matched by ConfigurationError: the validator itself was
	// used incorrectly (uninspectable type, no patterns, bad pattern).
	ErrConfiguration = errors.New("invalid validator usage")
)

// UncheckedError is raised by optimistic validators. It is delivered as a panic,
// so callers are not forced to handle it at every call site.
type UncheckedError struct {
	Message string
	Cause   error
}

// NewUncheckedError creates an UncheckedError with the given message.
func NewUncheckedError(message string) *UncheckedError {
	return &UncheckedError{Message: message}
}

func (e *UncheckedError) Error() string { return e.Message }

func (e *UncheckedError) Unwrap() error { return e.Cause }

func (e *UncheckedError) Is(target error) bool { return target == ErrValidation }

// Wrap attaches the root cause. It panics if a cause is already set.
func (e *UncheckedError) Wrap(cause error) *UncheckedError {
	if e.Cause != nil {
		panic("cannot change wrapped error once set")
	}
	e.Cause = cause
	return e
}

// CheckedError is raised by pessimistic validators. It is recorded on the
// validator and handed back through Err and Result, so the caller has to
// acknowledge it explicitly.
type CheckedError struct {
	Message string
	Cause   error
}

// NewCheckedError creates a CheckedError with the given message.
func NewCheckedError(message string) *CheckedError {
	return &CheckedError{Message: message}
}

func (e *CheckedError) Error() string { return e.Message }

func (e *CheckedError) Unwrap() error { return e.Cause }

func (e *CheckedError) Is(target error) bool { return target == ErrValidation }

// Wrap attaches the root cause. It panics if a cause is already set.
func (e *CheckedError) Wrap(cause error) *CheckedError {
	if e.Cause != nil {
		panic("cannot change wrapped error once set")
	}
	e.Cause = cause
	return e
}

// ConfigurationError signals a misuse of the validator rather than an invalid
// value. It is never built by a strategy's ErrorFactory, but it is raised the
// same way (panic or record) as the strategy's validation failures.
type ConfigurationError struct {
	Problem string
	Cause   error
}

// NewConfigurationError creates a ConfigurationError describing the problem.
func NewConfigurationError(problem string) *ConfigurationError {
	return &ConfigurationError{Problem: problem}
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return e.Problem + ": " + e.Cause.Error()
	}
	return e.Problem
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Wrap attaches the root cause. It panics if a cause is already set.
func (e *ConfigurationError) Wrap(cause error) *ConfigurationError {
	if e.Cause != nil {
		panic("cannot change wrapped error once set")
	}
	e.Cause = cause
	return e
}

// IsValidationError reports whether err, or any error it wraps, is a
// validation failure.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrValidation)
}

// IsConfigurationError reports whether err, or any error it wraps, is a
// ConfigurationError.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrConfiguration)
}
