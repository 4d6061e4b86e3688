package guard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hope/pkg/guard"
	"github.com/dmitrymomot/hope/pkg/logger"
	"github.com/dmitrymomot/hope/pkg/validate"
)

func newRouter(opts ...guard.Option) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(guard.Middleware(opts...))

	r.Get("/hello", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		validate.Hope(name).Named("name").IsNotNullOrEmpty()
		_, _ = w.Write([]byte("hello " + name))
	})
	r.Get("/misused", func(w http.ResponseWriter, r *http.Request) {
		validate.Hope(r.URL.Path).MatchesAny()
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	r.Get("/plain-error", func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("plain"))
	})
	r.Get("/late", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		validate.Hope("").IsNotNullOrEmpty()
	})
	return r
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) guard.Response {
	t.Helper()
	var body guard.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("passes valid requests through", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello?name=bob", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello bob", rec.Body.String())
	})

	t.Run("answers validation failures with 400", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "name must not be empty", decode(t, rec).Error)
	})

	t.Run("hides configuration errors behind 500", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/misused", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, guard.InternalErrorMessage, decode(t, rec).Error)
	})

	t.Run("re-panics non-error values", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "boom", func() {
			newRouter().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
		})
	})

	t.Run("re-panics unrelated errors", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			newRouter().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain-error", nil))
		})
	})

	t.Run("leaves unrelated panics to an outer recoverer", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Use(guard.Middleware())
		r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("does not write after the response started", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/late", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestMiddlewareLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs validation failures with request context", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())

		req := httptest.NewRequest(http.MethodGet, "/hello", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		newRouter(guard.WithLogger(log)).ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "request rejected", entry["msg"])
		assert.Equal(t, "req-42", entry["request_id"])
		assert.Equal(t, "GET", entry["method"])
		assert.Equal(t, "/hello", entry["path"])
		assert.Equal(t, "guard", entry["component"])
		assert.EqualValues(t, http.StatusBadRequest, entry["status_code"])
		assert.Equal(t, "name must not be empty", entry["error"])
	})

	t.Run("logs misuse at error level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())

		newRouter(guard.WithLogger(log)).ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/misused", nil))

		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), "no patterns supplied")
	})

	t.Run("uses a custom request ID source", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())

		h := guard.Middleware(
			guard.WithLogger(log),
			guard.WithRequestID(func(context.Context) string { return "custom-id" }),
		)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			validate.Hope[*string](nil).Named("token").IsNotNull()
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.Contains(buf.String(), `"request_id":"custom-id"`))
	})
}

func TestMiddlewareConversions(t *testing.T) {
	t.Parallel()

	parseID := func(s string) (uuid.UUID, error) {
		id, err := uuid.Parse(s)
		if err != nil {
			return id, validate.NewUncheckedError("id must be a UUID").Wrap(err)
		}
		return id, nil
	}

	r := chi.NewRouter()
	r.Use(guard.Middleware())
	r.Get("/wrapped/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := validate.MapErr(validate.Hope(chi.URLParam(r, "id")).Named("id"), parseID).Value()
		_, _ = w.Write([]byte(id.String()))
	})
	r.Get("/raw/{id}", func(w http.ResponseWriter, r *http.Request) {
		validate.MapErr(validate.Hope(chi.URLParam(r, "id")), uuid.Parse)
	})

	t.Run("wrapped conversion errors become 400", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wrapped/nope", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id must be a UUID", decode(t, rec).Error)
	})

	t.Run("valid conversions pass", func(t *testing.T) {
		t.Parallel()
		id := uuid.NewString()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wrapped/"+id, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("raw conversion errors are re-panicked", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/raw/nope", nil))
		})
	})
}
