package guard

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
)

type config struct {
	logger    *slog.Logger
	requestID func(ctx context.Context) string
}

// Option configures the middleware.
type Option func(*config)

// WithLogger logs every recovered validation or configuration error to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRequestID overrides how the request ID is read from the request
// context. By default chi's middleware.GetReqID is used.
func WithRequestID(fn func(ctx context.Context) string) Option {
	return func(c *config) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		requestID: middleware.GetReqID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
