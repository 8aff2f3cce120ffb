package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBudget(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over budget should be denied")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("a different IP has its own budget")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request inside the window should be denied")
	}
	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("10.0.0.1") {
		t.Error("request after window reset should be allowed")
	}
}

func TestRateLimitMiddlewareOnlyCountsPost(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	handler := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	get := httptest.NewRequest(http.MethodGet, "/api/v1/maps", nil)
	get.RemoteAddr = "10.0.0.1:1234"
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler(rec, get)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %d got %d, want 200", i, rec.Code)
		}
	}

	post := httptest.NewRequest(http.MethodPost, "/api/v1/maps", nil)
	post.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler(rec, post)
	if rec.Code != http.StatusOK {
		t.Fatalf("first POST got %d, want 200", rec.Code)
	}
	rec = httptest.NewRecorder()
	handler(rec, post)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response should carry Retry-After")
	}
}

func TestClientIPParsing(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "192.168.1.5:9999"
	if got := clientIP(r); got != "192.168.1.5" {
		t.Errorf("clientIP = %q, want 192.168.1.5", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 70.41.3.18")
	if got := clientIP(r); got != "203.0.113.7" {
		t.Errorf("clientIP with XFF = %q, want 203.0.113.7", got)
	}
}
