package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/statement-report/internal/common"
)

func newTestServer() *Server {
	return &Server{logger: common.NewSilentLogger()}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestCorrelationIDMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string // empty: any generated id
	}{
		{"generated", nil, ""},
		{"request id", map[string]string{"X-Request-ID": "req-1"}, "req-1"},
		{"correlation id", map[string]string{"X-Correlation-ID": "corr-1"}, "corr-1"},
		{"request id wins", map[string]string{"X-Request-ID": "req-2", "X-Correlation-ID": "corr-2"}, "req-2"},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := s.correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = common.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			header := w.Header().Get("X-Correlation-ID")
			if header == "" || header != seen {
				t.Fatalf("expected header %q to match context id %q", header, seen)
			}
			if tt.want != "" && header != tt.want {
				t.Errorf("expected %s, got %s", tt.want, header)
			}
		})
	}
}

func TestCORSMiddleware_ExposesReportHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().corsMiddleware(http.HandlerFunc(okHandler)).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reports/batch", nil))

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS origin header")
	}
	exposed := w.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Content-Disposition", "X-Schema-Version", "X-Batch-Reports", "X-Batch-Failures"} {
		if !strings.Contains(exposed, h) {
			t.Errorf("expected %s to be exposed, got %q", h, exposed)
		}
	}
}

func TestCORSMiddleware_AnswersPreflight(t *testing.T) {
	handler := newTestServer().corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called for OPTIONS")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/reports", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for preflight, got %d", w.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer()

	w := httptest.NewRecorder()
	s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("template exploded")
	})).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reports", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500 after panic, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	s.recoveryMiddleware(http.HandlerFunc(okHandler)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestLoggingMiddleware_LogsCorrelatedFailures(t *testing.T) {
	var buf bytes.Buffer
	s := &Server{logger: common.NewLoggerWithOutput("debug", &buf)}

	handler := s.correlationIDMiddleware(s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":"error"}`))
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	req.Header.Set("X-Request-ID", "trace-77")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", w.Code)
	}
	out := buf.String()
	for _, want := range []string{"HTTP request", "status=422", "path=/api/reports"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output, got %q", want, out)
		}
	}
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rw.Write([]byte("<html>"))
	rw.Write([]byte("</html>"))
	if rw.bytesWritten != 13 {
		t.Errorf("expected 13 bytes written, got %d", rw.bytesWritten)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().securityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("expected the handler status to pass through, got %d", w.Code)
	}
	for _, h := range securityHeaders {
		if got := w.Header().Get(h[0]); got != h[1] {
			t.Errorf("%s = %q, want %q", h[0], got, h[1])
		}
	}
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "https://cdn.plot.ly") {
		t.Error("expected CSP to allow the chart library CDN")
	}
}

func TestMaxBodySizeMiddleware(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"within limit", `{"a":1}`, false},
		{"over limit", strings.Repeat("x", 100), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			handler := s.maxBodySizeMiddleware(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(tt.body)))
			if (readErr != nil) != tt.wantErr {
				t.Errorf("read error = %v, wantErr %v", readErr, tt.wantErr)
			}
		})
	}
}

func TestLoggingMiddleware_PassesFlushThrough(t *testing.T) {
	handler := newTestServer().loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("expected wrapped writer to implement http.Flusher")
		}
		w.Write([]byte("event"))
		f.Flush()
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	if !w.Flushed {
		t.Error("expected flush to reach the underlying writer")
	}
}
