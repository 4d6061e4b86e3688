// Package validate provides fluent, chainable argument checks for the top of
// constructors, setters and exported functions.
//
// A Validator wraps a single value. Each check either returns the validator,
// so the next check can be chained, or raises an error whose message names the
// value. The first failing check wins; nothing is accumulated.
//
// # Architecture
//
// One generic engine, Validator[T], is parameterised by a Strategy that
// decides what a failure looks like:
//
//   - Optimistic (Hope): failures panic with an *UncheckedError. Callers may
//     ignore the possibility of failure and use Recover at an API boundary.
//   - Pessimistic (Doubt): the first failure is recorded as a *CheckedError,
//     the rest of the chain is skipped, and the caller must collect it from
//     Err or Result.
//
// Misusing the package (asking for the emptiness of a type that has no notion
// of it, passing no regular expressions, passing one that does not compile)
// raises a *ConfigurationError instead, so callers can tell "bad input" from
// "bad call".
//
// Emptiness needs no interface. Empty probes a value for being an array or
// slice, then for IsEmpty() bool, IsPresent() bool / driver.Valuer, Size(),
// and Len()/Length() methods (falling back to built-in map, chan and string
// lengths), and trusts the first shape it finds.
//
// # Usage
//
//	func NewUser(name string, email *string, age int) *User {
//	    validate.Hope(name).Named("name").IsNotNullOrEmpty()
//	    validate.Hope(email).Named("email").IsNotNull().Matches(`[^@\s]+@[^@\s]+`)
//	    validate.Hope(age).Named("age").IsTrue(func(a int) bool { return a >= 18 },
//	        "age must be at least %d, got %d", 18, age)
//	    ...
//	}
//
//	func ParsePort(raw *string) (int, error) {
//	    v := validate.Doubt(raw).Named("port").OrElse(ptr("8080"))
//	    return validate.MapErr(validate.Map(v, deref), strconv.Atoi).
//	        IsTrue(func(p int) bool { return p > 0 && p < 65536 }, "port out of range").
//	        Result()
//	}
//
// Go methods cannot introduce type parameters, so the type-changing
// transformations are the package functions Map and MapErr.
//
// # Error Handling
//
// UncheckedError and CheckedError both match ErrValidation, and
// ConfigurationError matches ErrConfiguration, via errors.Is. IsValidationError
// and IsConfigurationError wrap those checks. Every error kind can carry a root
// cause (Wrap / Unwrap).
//
// WithLogger decorates a Strategy so each raised error is also logged through
// log/slog.
//
// # Concurrency
//
// Validators are single-owner and perform no I/O. The only shared state is
// the cache of compiled patterns, which is safe for concurrent use.
package validate
