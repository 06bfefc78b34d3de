// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The statements are restricted to the subset understood by both
// PostgreSQL and SQLite.
const schema = `
-- Process-wide configuration and counters (single row)
CREATE TABLE IF NOT EXISTS governance_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    owner TEXT NOT NULL,
    emergency_admin TEXT,
    voting_active BOOLEAN NOT NULL DEFAULT FALSE,
    current_round BIGINT NOT NULL DEFAULT 0,
    voting_start_time BIGINT NOT NULL DEFAULT 0,
    voting_end_time BIGINT NOT NULL DEFAULT 0,
    min_vote_threshold BIGINT NOT NULL,
    require_registration BOOLEAN NOT NULL,
    max_candidates_per_round BIGINT NOT NULL,
    token_voting BOOLEAN NOT NULL DEFAULT FALSE,
    next_candidate_id BIGINT NOT NULL DEFAULT 1,
    next_proposal_id BIGINT NOT NULL DEFAULT 1,
    next_audit_id BIGINT NOT NULL DEFAULT 1
);

-- Rounds
CREATE TABLE IF NOT EXISTS round (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    start_time BIGINT NOT NULL,
    end_time BIGINT NOT NULL,
    min_participation BIGINT NOT NULL,
    voting_type TEXT NOT NULL CHECK (voting_type IN ('simple', 'weighted', 'ranked')),
    active BOOLEAN NOT NULL DEFAULT FALSE,
    finalized BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL,
    CHECK (end_time > start_time)
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id BIGINT NOT NULL,
    round_id BIGINT NOT NULL REFERENCES round(id),
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    image_hash TEXT NOT NULL,
    profile_url TEXT,
    manifesto_hash TEXT,
    vote_count BIGINT NOT NULL DEFAULT 0,
    weighted_vote_count BIGINT NOT NULL DEFAULT 0,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at BIGINT NOT NULL,
    creator TEXT NOT NULL,
    category TEXT NOT NULL,
    PRIMARY KEY (id, round_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_candidate_id ON candidate(id);

-- Ordered candidate list per round
CREATE TABLE IF NOT EXISTS round_candidate (
    round_id BIGINT NOT NULL REFERENCES round(id),
    position INTEGER NOT NULL CHECK (position >= 0 AND position < 100),
    candidate_id BIGINT NOT NULL,
    PRIMARY KEY (round_id, position),
    UNIQUE (round_id, candidate_id)
);

-- Voter registrations
CREATE TABLE IF NOT EXISTS voter_registration (
    voter TEXT PRIMARY KEY,
    registered BOOLEAN NOT NULL,
    registration_date BIGINT NOT NULL,
    category TEXT NOT NULL,
    kyc_verified BOOLEAN NOT NULL DEFAULT FALSE,
    stake_amount BIGINT NOT NULL DEFAULT 0
);

-- Delegations
CREATE TABLE IF NOT EXISTS delegation (
    delegator TEXT NOT NULL,
    round_id BIGINT NOT NULL,
    delegate TEXT NOT NULL,
    active BOOLEAN NOT NULL,
    created_at BIGINT NOT NULL,
    PRIMARY KEY (delegator, round_id)
);

CREATE INDEX IF NOT EXISTS idx_delegation_delegate ON delegation(delegate, round_id);

-- Vote records (one per voter per round)
CREATE TABLE IF NOT EXISTS vote_record (
    voter TEXT NOT NULL,
    round_id BIGINT NOT NULL,
    voted BOOLEAN NOT NULL,
    candidate_id BIGINT NOT NULL,
    vote_weight BIGINT NOT NULL,
    timestamp BIGINT NOT NULL,
    verification_hash TEXT,
    PRIMARY KEY (voter, round_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_record_candidate ON vote_record(round_id, candidate_id);

-- Audit trail (append-only)
CREATE TABLE IF NOT EXISTS audit_entry (
    id BIGINT PRIMARY KEY,
    voter TEXT NOT NULL,
    candidate_id BIGINT NOT NULL,
    round_id BIGINT NOT NULL,
    timestamp BIGINT NOT NULL,
    verification_hash TEXT NOT NULL,
    ip_hash TEXT
);

-- Governance proposals
CREATE TABLE IF NOT EXISTS proposal (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    proposer TEXT NOT NULL,
    votes_for BIGINT NOT NULL DEFAULT 0,
    votes_against BIGINT NOT NULL DEFAULT 0,
    voting_deadline BIGINT NOT NULL,
    executed BOOLEAN NOT NULL DEFAULT FALSE,
    proposal_type TEXT NOT NULL,
    target_value BIGINT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at BIGINT NOT NULL
);
`
