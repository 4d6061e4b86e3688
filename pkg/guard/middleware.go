package guard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hope/pkg/logger"
	"github.com/dmitrymomot/hope/pkg/validate"
)

// InternalErrorMessage is the body sent when a validator was misused.
const InternalErrorMessage = "internal server error"

// Response is the JSON body written for a recovered error.
type Response struct {
	Error string `json:"error"`
}

// Middleware returns middleware that recovers validation panics raised by the
// next handler and answers them with a JSON error response.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				err, ok := rec.(error)
				if !ok {
					panic(rec)
				}

				var status int
				var msg string
				switch {
				case errors.Is(err, validate.ErrValidation):
					status, msg = http.StatusBadRequest, err.Error()
				case errors.Is(err, validate.ErrConfiguration):
					status, msg = http.StatusInternalServerError, InternalErrorMessage
				default:
					panic(rec)
				}

				cfg.log(r, status, err)
				if rw.wroteHeader {
					return
				}
				writeJSON(rw, status, Response{Error: msg})
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

func (c *config) log(r *http.Request, status int, err error) {
	if c.logger == nil {
		return
	}
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	c.logger.LogAttrs(r.Context(), level, "request rejected",
		logger.RequestID(c.requestID(r.Context())),
		logger.Error(err),
		slog.Int("status_code", status),
		slog.String("method", r.Method),
		logger.Path(r.URL.Path),
		logger.Component("guard"),
	)
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// responseWriter remembers whether the handler already sent the header.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(code int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
