package guard

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/hope/pkg/logger"
)

// RequestIDExtractor adds the request ID set by chi's middleware.RequestID to
// records logged with a request context:
//
//	log := logger.New(logger.WithContextExtractors(guard.RequestIDExtractor()))
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
