// Package guard is HTTP middleware that turns panics raised by optimistic
// validators into JSON error responses.
//
// Handlers can validate their input with validate.Hope and never check an
// error: a failing check panics, and the guard catches it on the way out.
//
// # Architecture
//
// Middleware wraps the next handler with a deferred recover. The recovered
// value is classified with errors.Is:
//
//   - validate.ErrValidation: 400 Bad Request with the failure message.
//   - validate.ErrConfiguration: 500 Internal Server Error with a generic
//     message. The real problem is logged, not sent to the client.
//   - anything else: re-panicked so an outer recoverer (for example chi's
//     middleware.Recoverer) handles it as before.
//
// The response body is always {"error": "<message>"}. If the handler has
// already started writing the response, nothing more is written.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(guard.Middleware(guard.WithLogger(log)))
//
//	r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
//	    name := r.FormValue("name")
//	    validate.Hope(name).Named("name").IsNotNullOrEmpty()
//	    ...
//	})
//
// # Logging
//
// With WithLogger each recovered error is logged with the request method,
// path and, when chi's RequestID middleware ran first, the request ID.
// Validation failures are logged at warn level, misuse at error level.
package guard
