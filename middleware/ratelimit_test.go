// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	// Burst of 2, then refused until the bucket refills
	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("Expected burst requests to be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Expected third immediate request to be refused")
	}

	// Other clients have their own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("Expected a different IP to be allowed")
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("Request %d refused with limiting disabled", i)
		}
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/status", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("Expected first request 200, got %d", w.Code)
	}
	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
}

func TestRateLimiter_ForgedForwardedFor(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(forwarded string) int {
		req := httptest.NewRequest("POST", "/votes", nil)
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("203.0.113.1"); code != http.StatusOK {
		t.Fatalf("Expected first request 200, got %d", code)
	}
	// A fresh forwarded value per request does not buy a fresh bucket
	for i := 2; i <= 5; i++ {
		if code := send(fmt.Sprintf("203.0.113.%d", i)); code != http.StatusTooManyRequests {
			t.Errorf("Request %d: expected 429, got %d", i, code)
		}
	}
	if n := rl.Clients(); n != 1 {
		t.Errorf("Expected 1 tracked client, got %d", n)
	}
}

func TestRateLimiter_TrustProxy(t *testing.T) {
	rl := NewRateLimiter(1, 1, WithTrustProxy(true))
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(forwarded string) int {
		req := httptest.NewRequest("GET", "/status", nil)
		req.RemoteAddr = "10.0.0.2:8080"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	// Behind a trusted proxy each forwarded client has its own bucket
	if send("203.0.113.1") != http.StatusOK || send("203.0.113.2") != http.StatusOK {
		t.Fatal("Expected distinct forwarded clients to be allowed")
	}
	if code := send("203.0.113.1"); code != http.StatusTooManyRequests {
		t.Errorf("Expected repeat client to be limited, got %d", code)
	}
}

func TestRateLimiter_BoundedClients(t *testing.T) {
	rl := NewRateLimiter(1, 1, WithMaxClients(3))

	for i := 0; i < 50; i++ {
		rl.Allow(fmt.Sprintf("10.1.0.%d", i))
	}
	if n := rl.Clients(); n != 3 {
		t.Fatalf("Expected 3 tracked clients, got %d", n)
	}

	// The most recent clients kept their exhausted buckets
	if rl.Allow("10.1.0.49") {
		t.Error("Expected recent client to still be limited")
	}

	// Touching a client protects it from eviction
	rl.Allow("10.1.0.47")
	rl.Allow("10.2.0.1")
	if rl.Allow("10.1.0.47") {
		t.Error("Expected recently seen client to keep its bucket")
	}
	if n := rl.Clients(); n != 3 {
		t.Errorf("Expected 3 tracked clients, got %d", n)
	}
}
