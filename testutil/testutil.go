// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/govote/auth"
	"github.com/danielhkuo/govote/cliparse"
	"github.com/danielhkuo/govote/db"
	"github.com/danielhkuo/govote/middleware"
)

// TestOwner is the owner identity used by GetTestConfig.
const TestOwner = "owner"

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "govote.db")
	conn, err := db.Open(context.Background(), db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "file::memory:",
		DatabaseType:  db.TypeSQLite,
		CallerKeySalt: "test-caller-salt",
		OwnerID:       TestOwner,
		ClockMode:     cliparse.ClockManual,
	}
}

// CallerHeaders returns the headers authenticating identity.
func CallerHeaders(cfg cliparse.Config, identity string) map[string]string {
	return map[string]string{
		middleware.HeaderCallerID:  identity,
		middleware.HeaderCallerKey: auth.GenerateCallerKey(identity, cfg.CallerKeySalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
