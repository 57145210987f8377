package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/pricetrack/pkg/httpx"
)

func newTestRouter(rpm int) http.Handler {
	r := httpx.NewRouter(httpx.ServerConfig{
		ServiceName:        "pricetrack",
		CORSAllowedOrigins: "https://prices.example.com",
		RequestsPerMinute:  rpm,
	}, httpx.Middlewares{})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

func TestNewRouter_SecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(0).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ok", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	checks := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'self'",
	}
	for header, expected := range checks {
		if got := rr.Header().Get(header); got != expected {
			t.Errorf("%s: got %q, want %q", header, got, expected)
		}
	}
}

func TestNewRouter_JSONNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(0).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body["error"] != "route not found" {
		t.Fatalf("unexpected body %v (%v)", body, err)
	}
}

func TestNewRouter_JSONMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(0).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/ok", http.NoBody))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	h := newTestRouter(2)
	var last int
	for range 3 {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", http.NoBody)
		req.RemoteAddr = "203.0.113.7:5555"
		h.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third request, got %d", last)
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ok", http.NoBody)
	req.Header.Set("Origin", "https://prices.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	newTestRouter(0).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://prices.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin %q", got)
	}
}

func TestRequestBodyLimit_WithinLimit(t *testing.T) {
	const limit = 100

	var gotBody []byte
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+1)
		n, _ := r.Body.Read(buf)
		gotBody = buf[:n]
		w.WriteHeader(http.StatusOK)
	})

	h := httpx.RequestBodyLimit(limit)(inner)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 50))))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(gotBody) != 50 {
		t.Fatalf("expected 50 bytes read, got %d", len(gotBody))
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	srv := httpx.NewServer(":0", http.NotFoundHandler())
	if srv.ReadTimeout == 0 || srv.WriteTimeout == 0 || srv.IdleTimeout == 0 {
		t.Fatalf("expected non-zero timeouts: %+v", srv)
	}
}
