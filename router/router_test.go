// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/govote/cliparse"
	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/models"
	"github.com/danielhkuo/govote/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, cliparse.Config) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	reg := prometheus.NewRegistry()
	metrics := &ledger.Metrics{}
	metrics.Register(reg)

	clock := ledger.NewManualClock(0)
	l := ledger.New(conn, clock,
		ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		ledger.WithMetrics(metrics),
	)

	genesis := models.DefaultGenesis()
	genesis.Owner = cfg.OwnerID
	if err := l.Init(context.Background(), genesis); err != nil {
		t.Fatalf("Failed to init ledger: %v", err)
	}

	return NewRouter(l, clock, reg, cfg), cfg
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "govote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux, cfg := newTestRouter(t)

	// Produce at least one ledger observation
	req := testutil.MakeRequest("POST", "/rounds", models.CreateRoundRequest{Title: "R", EndTime: 10},
		testutil.CallerHeaders(cfg, cfg.OwnerID))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "govote_ledger_operations_total") {
		t.Errorf("Expected ledger operation counter in metrics output")
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// Routes respond (handler is invoked). Auth failures and absent data
	// are valid handler behavior here.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/metrics"},
		{"POST", "/identities"},
		{"GET", "/status"},
		{"GET", "/clock"},

		{"POST", "/rounds"},
		{"GET", "/rounds/1"},
		{"POST", "/rounds/1/start"},
		{"POST", "/rounds/1/candidates"},
		{"GET", "/rounds/1/candidates"},
		{"GET", "/rounds/1/candidates/1"},
		{"GET", "/rounds/1/stats"},
		{"GET", "/rounds/1/leaderboard"},
		{"POST", "/rounds/1/delegation"},
		{"DELETE", "/rounds/1/delegation"},
		{"GET", "/rounds/1/delegations/alice"},
		{"GET", "/rounds/1/votes/alice"},

		{"POST", "/voters"},
		{"GET", "/voters/alice"},
		{"GET", "/voters/alice/eligible"},
		{"POST", "/voters/alice/kyc"},

		{"POST", "/votes"},
		{"GET", "/audit"},
		{"GET", "/audit/1"},

		{"POST", "/proposals"},
		{"GET", "/proposals/1"},
		{"POST", "/proposals/1/votes"},

		{"POST", "/admin/pause"},
		{"PUT", "/admin/config"},
		{"PUT", "/admin/emergency-admin"},
		{"POST", "/admin/clock"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMutatingRoutesRequireCaller(t *testing.T) {
	mux, cfg := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"POST", "/rounds"},
		{"POST", "/rounds/1/start"},
		{"POST", "/rounds/1/candidates"},
		{"POST", "/rounds/1/delegation"},
		{"DELETE", "/rounds/1/delegation"},
		{"POST", "/voters"},
		{"POST", "/voters/alice/kyc"},
		{"POST", "/votes"},
		{"POST", "/proposals"},
		{"POST", "/proposals/1/votes"},
		{"POST", "/admin/pause"},
		{"PUT", "/admin/config"},
		{"PUT", "/admin/emergency-admin"},
		{"POST", "/admin/clock"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := httptest.NewRequest(p.method, p.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)

			req = httptest.NewRequest(p.method, p.path, nil)
			req.Header.Set("X-Caller-ID", cfg.OwnerID)
			req.Header.Set("X-Caller-Key", "forged")
			w = httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"PUT to candidates endpoint", "PUT", "/rounds/1/candidates", http.StatusMethodNotAllowed},
		{"DELETE a vote", "DELETE", "/votes", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux, cfg := newTestRouter(t)
	owner := testutil.CallerHeaders(cfg, cfg.OwnerID)

	steps := []struct {
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"POST", "/rounds", models.CreateRoundRequest{Title: "Board", EndTime: 100}, http.StatusCreated},
		{"POST", "/rounds/1/start", nil, http.StatusNoContent},
		{"POST", "/rounds/1/candidates", models.AddCandidateRequest{Name: "Alice"}, http.StatusCreated},
		{"GET", "/rounds/1/candidates/1", nil, http.StatusOK},
		{"GET", "/rounds/abc", nil, http.StatusBadRequest},
	}

	for _, s := range steps {
		req := testutil.MakeRequest(s.method, s.path, s.body, owner)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, s.want)
	}
}
