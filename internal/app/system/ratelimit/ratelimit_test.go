package ratelimit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/dossierhub/internal/app/system/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d: expected allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("request 4: expected limited")
	}

	// A different key has its own window
	if !l.Allow("10.0.0.2") {
		t.Error("different key: expected allowed")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	l := ratelimit.New(5, time.Minute)

	if got := l.Remaining("k"); got != 5 {
		t.Errorf("fresh key remaining: got %d, want 5", got)
	}
	l.Allow("k")
	l.Allow("k")
	if got := l.Remaining("k"); got != 3 {
		t.Errorf("after 2 requests: got %d, want 3", got)
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("expected limited before reset")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("expected allowed after reset")
	}
}

func TestMiddleware(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	handler := ratelimit.Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/documents/catalog", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Success {
		t.Error("expected success=false")
	}
	if body.Message != "Trop de requêtes. Veuillez réessayer plus tard." {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.10:5432",
			want:       "192.168.1.10",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ratelimit.ClientIP(req); got != tt.want {
				t.Errorf("ClientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
