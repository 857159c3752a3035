package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testErrorHandler() *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(discardLogger(), false)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	var seen, traceID string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
		traceID = infrastructure.GetTraceID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, seen, traceID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "caller-id", seen)
}

func TestRecoverer(t *testing.T) {
	h := RequestID(Recoverer(testErrorHandler())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.TypeInternal, body["type"])
	assert.NotEmpty(t, body["trace_id"])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, testErrorHandler(), discardLogger())
	h := rl.Handler(okHandler())

	serve := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve("10.0.0.1:5000").Code)

	rec := serve("10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1000", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve("10.0.0.2:5000").Code)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1, testErrorHandler(), discardLogger())
	now := time.Now()
	rl.now = func() time.Time { return now }

	require.True(t, rl.allow("10.0.0.1"))
	require.Len(t, rl.clients, 1)

	now = now.Add(2 * clientIdleTTL)
	require.True(t, rl.allow("10.0.0.2"))
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "10.0.0.2")
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	rec := httptest.NewRecorder()
	Timeout(10*time.Millisecond, testErrorHandler())(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.TypeTimeout)
}

func TestTimeout_FastHandlerUntouched(t *testing.T) {
	rec := httptest.NewRecorder()
	Timeout(time.Second, testErrorHandler())(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	h := BodyLimit(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))

	var maxBytes *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytes)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		wantStatus int
		wantAllow  string
	}{
		{"wildcard", []string{"*"}, "https://n8n.example.com", http.MethodPost, http.StatusOK, "*"},
		{"listed origin", []string{"https://app.example.com"}, "https://app.example.com", http.MethodPost, http.StatusOK, "https://app.example.com"},
		{"unlisted origin", []string{"https://app.example.com"}, "https://evil.example.com", http.MethodPost, http.StatusOK, ""},
		{"preflight", []string{"*"}, "https://app.example.com", http.MethodOptions, http.StatusNoContent, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CORS(CORSConfig{AllowedOrigins: tt.origins})(okHandler())
			req := httptest.NewRequest(tt.method, "/analyze", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestStructuredLoggerAndOTel(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := RequestID(NewOTelMiddleware(nil, nil, logger).Handler(StructuredLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, buf.String(), `"msg":"request completed"`)
	assert.Contains(t, buf.String(), `"status":202`)
}
