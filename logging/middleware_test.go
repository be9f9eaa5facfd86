package logging

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

// TestLoggingMiddlewareSkipsHealthCheck verifies that /health and /metrics endpoints are not logged
func TestLoggingMiddlewareSkipsHealthCheck(t *testing.T) {
	var logOutput strings.Builder
	logger := slog.New(slog.NewTextHandler(&logOutput, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path+" is not logged", func(t *testing.T) {
			logOutput.Reset()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "test-123"))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != http.StatusOK {
				t.Errorf("expected status 200, got %d", status)
			}
			if logs := logOutput.String(); logs != "" {
				t.Errorf("expected no logs for %s, got: %s", path, logs)
			}
		})
	}

	t.Run("regular paths are logged", func(t *testing.T) {
		logOutput.Reset()
		req := httptest.NewRequest(http.MethodGet, "/medic?q=Aspirin", nil)
		req.Header.Set("X-API-Key", "super-secret")
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "test-789"))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		logs := logOutput.String()
		if !strings.Contains(logs, "HTTP request") {
			t.Errorf("log should contain 'HTTP request', got: %s", logs)
		}
		if !strings.Contains(logs, "path=/medic") {
			t.Errorf("log should contain path, got: %s", logs)
		}
		if !strings.Contains(logs, "q=Aspirin") {
			t.Errorf("log should contain the looked up name, got: %s", logs)
		}
		if !strings.Contains(logs, "request_id=test-789") {
			t.Errorf("log should contain request id, got: %s", logs)
		}
		if strings.Contains(logs, "super-secret") {
			t.Errorf("log must not contain the API key, got: %s", logs)
		}
	})

	t.Run("non-string request ID falls back to unknown", func(t *testing.T) {
		logOutput.Reset()
		req := httptest.NewRequest(http.MethodGet, "/list", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, 12345))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if logs := logOutput.String(); !strings.Contains(logs, "request_id=unknown") {
			t.Errorf("log should contain request_id=unknown for non-string ID, got: %s", logs)
		}
	})

	t.Run("q omitted when absent", func(t *testing.T) {
		logOutput.Reset()
		req := httptest.NewRequest(http.MethodGet, "/similar", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if logs := logOutput.String(); strings.Contains(logs, " q=") {
			t.Errorf("log should not contain 'q=' field when empty, got: %s", logs)
		}
	})
}

func TestLoggingMiddlewareServerErrorsLogAtError(t *testing.T) {
	var logOutput strings.Builder
	logger := slog.New(slog.NewTextHandler(&logOutput, &slog.HandlerOptions{Level: slog.LevelError}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ai?q=test", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	logs := logOutput.String()
	if !strings.Contains(logs, "level=ERROR") || !strings.Contains(logs, "status_code=500") {
		t.Errorf("expected error level log with status 500, got: %s", logs)
	}
}

func TestResponseWriterWrapper(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := &responseWriterWrapper{ResponseWriter: rr, statusCode: http.StatusOK}

	ww.WriteHeader(http.StatusNotFound)
	n, err := ww.Write([]byte("not found"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if ww.statusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", ww.statusCode)
	}
	if ww.bytesWritten != n || n != len("not found") {
		t.Errorf("expected %d bytes written, got %d", len("not found"), ww.bytesWritten)
	}
	if rr.Code != http.StatusNotFound {
		t.Errorf("underlying recorder should see 404, got %d", rr.Code)
	}
}
