package validate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/hope/pkg/logger"
)

// ErrorFactory builds the error raised by a failing check. cause is nil unless
// the failure was triggered by an underlying error.
type ErrorFactory func(message string, cause error) error

// Strategy decides which error a failing check produces and how it reaches
// the caller.
type Strategy struct {
	// NewError builds validation failures. Nil means NewCheckedError.
	NewError ErrorFactory

	// Panic raises failures with panic. When false the first failure is
	// recorded on the validator and returned by Err and Result.
	Panic bool

	// Observe, when set, is called with the validator's name and every error
	// it raises, before the error is delivered.
	Observe func(name string, err error)
}

// Optimistic returns the strategy used by Hope: failures panic with an
// *UncheckedError.
func Optimistic() Strategy {
	return Strategy{
		NewError: newUncheckedError,
		Panic:    true,
	}
}

func newUncheckedError(message string, cause error) error {
	e := NewUncheckedError(message)
	if cause != nil {
		e.Wrap(cause)
	}
	return e
}

// Pessimistic returns the strategy used by Doubt: failures are recorded as a
// *CheckedError.
func Pessimistic() Strategy {
	return Strategy{NewError: newCheckedError}
}

func newCheckedError(message string, cause error) error {
	e := NewCheckedError(message)
	if cause != nil {
		e.Wrap(cause)
	}
	return e
}

// WithLogger returns a copy of s that logs every raised error to l before
// delivering it. Validation failures are logged at debug level, configuration
// errors at warn level since they point at a bug in the caller. An existing
// Observe hook still runs.
func WithLogger(s Strategy, l *slog.Logger) Strategy {
	if l == nil {
		return s
	}
	next := s.Observe
	s.Observe = func(name string, err error) {
		level := slog.LevelDebug
		msg := "validation failed"
		if IsConfigurationError(err) {
			level = slog.LevelWarn
			msg = "validator misused"
		}
		l.Log(context.Background(), level, msg, logger.Component("validate"), logger.Field(name), logger.Error(err))
		if next != nil {
			next(name, err)
		}
	}
	return s
}

// Hope starts an optimistic validation of value. A failing check panics with
// an *UncheckedError (or *ConfigurationError on misuse); use Recover to turn
// the panic back into an error at an API boundary.
func Hope[T any](value T) *Validator[T] {
	return New(value, Optimistic())
}

// Doubt starts a pessimistic validation of value. A failing check is recorded
// as a *CheckedError (or *ConfigurationError on misuse), later checks are
// skipped, and the caller collects the failure from Err or Result.
func Doubt[T any](value T) *Validator[T] {
	return New(value, Pessimistic())
}

// Recover converts a panic raised by an optimistic validator into an error
// stored in *errp. It must be called directly by defer:
//
//	func SetName(name string) (err error) {
//	    defer validate.Recover(&err)
//	    validate.Hope(name).Named("name").IsNotNullOrEmpty()
//	    ...
//	}
//
// Panics that are not validation or configuration errors are re-raised. This
// includes the raw errors MapErr raises for its conversion function; see
// MapErr for how to turn them into validation failures.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && (errors.Is(err, ErrValidation) || errors.Is(err, ErrConfiguration)) {
		*errp = err
		return
	}
	panic(r)
}
