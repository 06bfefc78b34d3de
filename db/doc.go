// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the governance store and creates its schema.

# Connecting

Open accepts SQLite (the default, pure Go via modernc.org/sqlite) or
PostgreSQL (lib/pq):

	conn, err := db.Open(ctx, db.TypeSQLite, "file:govote.db")
	if err != nil {
		log.Fatal(err)
	}

SQLite connections are limited to one so the database serializes writers.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The statements stay within the SQL understood by both engines.

# Tables

  - governance_state: Single row of configuration, pointers and id counters
  - round: Round definitions and lifecycle flags
  - candidate: Candidates keyed by (id, round_id) with their tallies
  - round_candidate: Ordered, bounded candidate list per round
  - voter_registration: One registration per voter identity
  - delegation: One delegation per (delegator, round)
  - vote_record: One vote per (voter, round)
  - audit_entry: Append-only log of accepted votes
  - proposal: Governance proposals and their weighted tallies

# Relationships

	round 1──* candidate
	round 1──* round_candidate *──1 candidate
	round 1──* vote_record
	proposal (standalone)

Nothing is ever deleted, so no foreign key cascades.
*/
package db
