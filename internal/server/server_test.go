package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/optio/internal/metrics"
	"github.com/matzehuels/optio/pkg/errors"
	"github.com/matzehuels/optio/pkg/observability"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	}
	return New(cfg), &buf
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestEncryptDecrypt(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	h := s.Router()

	rec := do(t, h, http.MethodPost, "/api/v1/encrypt", `{"key":"test","message":"Hello, World!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("encrypt status = %d, body %s", rec.Code, rec.Body)
	}
	enc := decodeBody[encryptResponse](t, rec)
	if enc.Ciphertext != "LEUhZktFcWdLIGZEVQ==" {
		t.Errorf("ciphertext = %q", enc.Ciphertext)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/decrypt", `{"key":"test","ciphertext":"LEUhZktFcWdLIGZEVQ=="}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("decrypt status = %d, body %s", rec.Code, rec.Body)
	}
	dec := decodeBody[decryptResponse](t, rec)
	if dec.Message != "Hello, World!" {
		t.Errorf("message = %q", dec.Message)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	rec := do(t, s.Router(), http.MethodPost, "/api/v1/decrypt", `{"key":"wrong","ciphertext":"LEUhZktFcWdLIGZEVQ=="}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeBody[decryptResponse](t, rec).Message; got != "QM!F ,eMuZtoK" {
		t.Errorf("message = %q", got)
	}
}

func TestErrors(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	h := s.Router()

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"decode failure", "/api/v1/decrypt", `{"key":"test","ciphertext":"not-valid-base64!!"}`, http.StatusUnprocessableEntity, errors.ErrCodeDecodeFailure},
		{"bad utf8 payload", "/api/v1/decrypt", `{"key":"test","ciphertext":"/w=="}`, http.StatusUnprocessableEntity, errors.ErrCodeDecodeFailure},
		{"empty key encrypt", "/api/v1/encrypt", `{"key":"","message":"hi"}`, http.StatusBadRequest, errors.ErrCodeInvalidKey},
		{"missing key decrypt", "/api/v1/decrypt", `{"ciphertext":"aGk="}`, http.StatusBadRequest, errors.ErrCodeInvalidKey},
		{"malformed json", "/api/v1/encrypt", `{"key":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "/api/v1/encrypt", `{"key":"k","msg":"hi"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"trailing data", "/api/v1/encrypt", `{"key":"k","message":"hi"} {}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"empty body", "/api/v1/encrypt", ``, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			got := decodeBody[errorResponse](t, rec)
			if got.Code != tt.code {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
			if got.Message == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	body := `{"key":"k","message":"` + strings.Repeat("a", int(MaxBodyBytes)) + `"}`
	rec := do(t, s.Router(), http.MethodPost, "/api/v1/encrypt", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeBody[errorResponse](t, rec).Code; got != errors.ErrCodeInputTooLarge {
		t.Errorf("code = %q", got)
	}
}

func TestHealthzAndVersion(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	h := s.Router()

	rec := do(t, h, http.MethodGet, "/api/v1/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	if got := decodeBody[map[string]string](t, rec)["status"]; got != "ok" {
		t.Errorf("status = %q", got)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("version status = %d", rec.Code)
	}
	if got := decodeBody[map[string]string](t, rec)["version"]; got == "" {
		t.Error("version missing")
	}
}

func TestNotFoundAndMethod(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	h := s.Router()

	if rec := do(t, h, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/encrypt", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET encrypt status = %d", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	h := s.Router()

	rec := do(t, h, http.MethodGet, "/api/v1/healthz", "")
	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated request id %q is not a UUID", id)
	}

	want := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	req.Header.Set(RequestIDHeader, want)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != want {
		t.Errorf("request id = %q, want propagated %q", got, want)
	}
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, Config{RateLimit: 2})
	h := s.Router()

	body := `{"key":"k","message":"hi"}`
	for i := range 2 {
		if rec := do(t, h, http.MethodPost, "/api/v1/encrypt", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}

	rec := do(t, h, http.MethodPost, "/api/v1/encrypt", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := decodeBody[errorResponse](t, rec).Code; got != errors.ErrCodeRateLimited {
		t.Errorf("code = %q", got)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	// Health checks are not rate limited.
	if rec := do(t, h, http.MethodGet, "/api/v1/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Cleanup(observability.Reset)

	m := metrics.New()
	m.Install()
	s, _ := newTestServer(t, Config{Metrics: m})
	h := s.Router()

	do(t, h, http.MethodPost, "/api/v1/encrypt", `{"key":"k","message":"hi"}`)
	do(t, h, http.MethodPost, "/api/v1/decrypt", `{"key":"k","ciphertext":"%%"}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{
		`optio_operations_total{op="encrypt",result="ok"} 1`,
		`optio_operations_total{op="decrypt",result="error"} 1`,
		`optio_http_requests_total{method="POST",route="/api/v1/encrypt",status="200"} 1`,
		`optio_http_requests_total{method="POST",route="/api/v1/decrypt",status="422"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestLogsHaveNoSecrets(t *testing.T) {
	s, buf := newTestServer(t, Config{})
	do(t, s.Router(), http.MethodPost, "/api/v1/encrypt", `{"key":"hunter2-secret","message":"very private words"}`)

	out := buf.String()
	if !strings.Contains(out, "http request") {
		t.Fatalf("no request log line: %q", out)
	}
	if strings.Contains(out, "hunter2-secret") || strings.Contains(out, "very private words") {
		t.Errorf("log leaks request body: %q", out)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s, _ := newTestServer(t, Config{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ListenAndServe = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
