package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	var got string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	t.Run("generated when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("request id %q is not a uuid", got)
		}
		if rec.Header().Get("X-Request-ID") != got {
			t.Fatalf("header = %q, context = %q", rec.Header().Get("X-Request-ID"), got)
		}
	})

	t.Run("valid caller id kept", func(t *testing.T) {
		want := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", want)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != want {
			t.Fatalf("request id = %q, want %q", got, want)
		}
	})

	t.Run("garbage caller id replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "../../etc/passwd")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("request id %q is not a uuid", got)
		}
	})
}
