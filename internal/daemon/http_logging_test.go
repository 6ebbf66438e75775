package daemon

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notepad/internal/logging"
)

func TestLoggingMiddlewareRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingMiddleware(logging.New(&buf, logging.Debug), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodPut, "/v1/notes/n1", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-1" {
		t.Fatalf("expected request id echo, got %q", got)
	}
	line := buf.String()
	for _, want := range []string{"msg=http_request", "request_id=req-1", "method=PUT", "path=/v1/notes/n1", "status=201", "bytes=2"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line %q", want, line)
		}
	}
}

func TestLoggingMiddlewareWarnsOnServerError(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingMiddleware(logging.New(&buf, logging.Debug), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/notes", nil))
	if !strings.Contains(buf.String(), "level=warn") {
		t.Fatalf("expected warn level, got %q", buf.String())
	}
}
