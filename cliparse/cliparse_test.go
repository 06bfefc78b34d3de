// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable ParseFlags reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "CALLER_KEY_SALT", "GENESIS_FILE",
		"OWNER_ID", "CLOCK_MODE", "RATE_LIMIT", "DEBUG",
		"TRUST_PROXY",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("CALLER_KEY_SALT", "test-salt")
	t.Setenv("OWNER_ID", "owner")
	t.Setenv("CLOCK_MODE", "wall")
	t.Setenv("RATE_LIMIT", "5.5")
	t.Setenv("DEBUG", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.OwnerID != "owner" {
		t.Errorf("expected owner from env, got %q", cfg.OwnerID)
	}
	if cfg.ClockMode != ClockWall {
		t.Errorf("expected wall clock, got %s", cfg.ClockMode)
	}
	if cfg.RateLimit != 5.5 {
		t.Errorf("expected rate 5.5, got %v", cfg.RateLimit)
	}
	if !cfg.Debug {
		t.Error("expected debug from env")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-caller-salt", "s", "-owner", "o"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.ClockMode != ClockManual {
		t.Errorf("expected manual clock, got %s", cfg.ClockMode)
	}
	if cfg.RateLimit != 20 {
		t.Errorf("expected default rate 20, got %v", cfg.RateLimit)
	}
	if cfg.TrustProxy {
		t.Error("expected forwarding headers to be untrusted by default")
	}
}

func TestParseFlags_TrustProxy(t *testing.T) {
	base := []string{"-d", "file:test.db", "-caller-salt", "s", "-owner", "o"}

	clearEnv(t)
	cfg, err := ParseFlags(append(base, "-trust-proxy"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected trust proxy from flag")
	}

	t.Setenv("TRUST_PROXY", "true")
	cfg, err = ParseFlags(base)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected trust proxy from env")
	}

	t.Setenv("TRUST_PROXY", "sometimes")
	if _, err := ParseFlags(base); err == nil {
		t.Error("expected error for invalid TRUST_PROXY")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("OWNER_ID", "env-owner")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-caller-salt", "s1", "-owner", "cli-owner"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.OwnerID != "cli-owner" {
		t.Errorf("CLI should override env: expected cli-owner, got %s", cfg.OwnerID)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing salt", []string{"-d", "file:test.db", "-owner", "o"}},
		{"missing database", []string{"-caller-salt", "s", "-owner", "o"}},
		{"missing owner", []string{"-d", "file:test.db", "-caller-salt", "s"}},
		{"bad database type", []string{"-d", "x", "-t", "mysql", "-caller-salt", "s", "-owner", "o"}},
		{"bad clock mode", []string{"-d", "x", "-caller-salt", "s", "-owner", "o", "-clock", "sundial"}},
		{"negative rate", []string{"-d", "x", "-caller-salt", "s", "-owner", "o", "-rate", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_IssueKeyNeedsOnlySalt(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-caller-salt", "s", "-issue-key", "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IssueKey != "alice" {
		t.Errorf("expected issue key alice, got %q", cfg.IssueKey)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GOVOTE_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GOVOTE_TEST_VALUE") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("GOVOTE_TEST_VALUE"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
}

func TestLoadGenesis(t *testing.T) {
	g, err := LoadGenesis("")
	if err != nil {
		t.Fatal(err)
	}
	if g.MaxCandidatesPerRound != 20 || !g.RequireRegistration || g.MinVoteThreshold != 1 {
		t.Errorf("unexpected defaults: %+v", g)
	}

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	data := []byte("owner: council\nemergency_admin: guardian\nmax_candidates_per_round: 5\ntoken_voting: true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	g, err = LoadGenesis(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Owner != "council" {
		t.Errorf("expected owner council, got %q", g.Owner)
	}
	if g.EmergencyAdmin == nil || *g.EmergencyAdmin != "guardian" {
		t.Errorf("expected emergency admin guardian, got %v", g.EmergencyAdmin)
	}
	if g.MaxCandidatesPerRound != 5 {
		t.Errorf("expected max candidates 5, got %d", g.MaxCandidatesPerRound)
	}
	if !g.TokenVoting {
		t.Error("expected token voting on")
	}
	// Keys absent from the file keep their defaults
	if !g.RequireRegistration {
		t.Error("expected require_registration default to survive")
	}
}

func TestGenesis_OwnerOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	if err := os.WriteFile(path, []byte("owner: council\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	g, err := Genesis(Config{GenesisFile: path, OwnerID: "override"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Owner != "override" {
		t.Errorf("expected owner override, got %q", g.Owner)
	}

	if _, err := Genesis(Config{}); err == nil {
		t.Error("expected error without any owner")
	}
}
