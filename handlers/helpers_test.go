// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/govote/cliparse"
	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/models"
	"github.com/danielhkuo/govote/testutil"
)

type testEnv struct {
	cfg   cliparse.Config
	clock *ledger.ManualClock
	l     *ledger.Ledger
}

func newTestEnv(t *testing.T, opts ...func(*models.Genesis)) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	clock := ledger.NewManualClock(0)
	l := ledger.New(conn, clock, ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	genesis := models.DefaultGenesis()
	genesis.Owner = testutil.TestOwner
	for _, opt := range opts {
		opt(&genesis)
	}
	if err := l.Init(context.Background(), genesis); err != nil {
		t.Fatalf("Failed to init ledger: %v", err)
	}

	return &testEnv{cfg: testutil.GetTestConfig(), clock: clock, l: l}
}

// call runs h behind RequireCaller as caller. An empty caller sends no
// credentials. pathValues are name, value pairs.
func (e *testEnv) call(h http.HandlerFunc, caller, method, path string, body interface{}, pathValues ...string) *httptest.ResponseRecorder {
	var headers map[string]string
	if caller != "" {
		headers = testutil.CallerHeaders(e.cfg, caller)
	}
	req := testutil.MakeRequest(method, path, body, headers)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	w := httptest.NewRecorder()
	middleware.RequireCaller(e.cfg.CallerKeySalt, h)(w, req)
	return w
}

// get runs an unauthenticated read handler.
func (e *testEnv) get(h http.HandlerFunc, path string, pathValues ...string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(http.MethodGet, path, nil, nil)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// openRound creates and starts a round over [start, end] through the ledger.
func (e *testEnv) openRound(t *testing.T, start, end uint64) uint64 {
	t.Helper()
	ctx := context.Background()
	id, err := e.l.CreateRound(ctx, testutil.TestOwner, ledger.NewRound{
		Title:      "Round",
		StartTime:  start,
		EndTime:    end,
		VotingType: models.VotingSimple,
	})
	if err != nil {
		t.Fatalf("Failed to create round: %v", err)
	}
	if err := e.l.StartRound(ctx, testutil.TestOwner, id); err != nil {
		t.Fatalf("Failed to start round: %v", err)
	}
	return id
}

func (e *testEnv) addCandidate(t *testing.T, roundID uint64, name string) uint64 {
	t.Helper()
	id, err := e.l.AddCandidate(context.Background(), testutil.TestOwner, roundID, ledger.NewCandidate{Name: name})
	if err != nil {
		t.Fatalf("Failed to add candidate: %v", err)
	}
	return id
}

func (e *testEnv) eligibleVoter(t *testing.T, voter string, stake uint64) {
	t.Helper()
	ctx := context.Background()
	if err := e.l.RegisterVoter(ctx, voter, "general", stake); err != nil {
		t.Fatalf("Failed to register voter: %v", err)
	}
	if err := e.l.VerifyKYC(ctx, testutil.TestOwner, voter); err != nil {
		t.Fatalf("Failed to verify voter: %v", err)
	}
}
