// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// It is the single place where loggers are built for the validate strategies,
// the guard middleware and the envcheck tool, so attribute names stay the same
// everywhere ("field", "error", "request_id", ...).
//
// # Architecture
//
// New determines the concrete slog.Handler implementation, slog.NewTextHandler
// or slog.NewJSONHandler, based on the configured Format. It then wraps the
// handler so that registered ContextExtractor callbacks add their attributes
// to each record before it reaches the underlying handler.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithCLI("envcheck"),
//	    logger.WithLevel(slog.LevelDebug),
//	)
//	log.Warn("variable invalid", logger.Field("DATABASE_URL"), logger.Error(err))
//
// # Configuration
//
//   - WithCLI – text on stderr with a "tool" attribute.
//   - WithFormat / WithTextFormatter / WithJSONFormatter – output format.
//   - WithLevel – minimum level; ParseLevel turns a config string into one.
//   - WithAttr – static attributes.
//   - WithContextExtractors / WithContextValue – attributes pulled from context.
//
// # Error Handling
//
// Error, Errors, Field and RequestID return an empty slog.Attr for nil or empty
// input, which slog drops, so callers need no extra checks:
//
//	log.Info("checked", logger.Error(err))
package logger
