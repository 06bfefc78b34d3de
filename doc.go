// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the govote API server.

govote is a governance voting ledger: an owner runs sequential election
rounds with candidates, registered and KYC-verified voters cast one vote per
round, every accepted vote lands in an append-only audit trail, and eligible
voters can raise and vote on proposals.

# Starting the Server

The server reads flags, environment variables and an optional .env file:

	CALLER_KEY_SALT=... OWNER_ID=alice go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --caller-salt ... --owner alice

# Configuration

Required settings:

  - CALLER_KEY_SALT (--caller-salt): Secret for caller key HMAC
  - OWNER_ID (--owner) or GENESIS_FILE (-g): Ledger owner identity

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or sqlite file
  - CLOCK_MODE (--clock): manual or wall (default: manual)
  - RATE_LIMIT (--rate): Requests per second per client IP (default: 20)
  - DEBUG (--debug): Debug logging

# Caller Keys

Every mutating request carries X-Caller-ID and X-Caller-Key. Keys are
issued by POST /identities or offline:

	go run . --caller-salt ... --issue-key alice

# Architecture

  - ledger: Governance state machine over database/sql
  - handlers: HTTP request handlers (rounds, voters, voting, proposals, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Caller identity, rate limiting, CORS, logging, JSON helpers
  - models: Domain, request and response types
  - auth: Identity and caller key generation
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
