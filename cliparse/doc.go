// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - CallerKeySalt: Secret for caller key HMAC (required)
  - GenesisFile: Optional genesis YAML
  - OwnerID: Owner identity (required unless the genesis names one)
  - ClockMode: manual (default) or wall
  - RateLimit: Requests per second per client IP (default: 20)
  - Debug: Debug logging
  - TrustProxy: Take client IPs from forwarding headers (default: false)
  - IssueKey: Print the caller key for an identity and exit

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--caller-salt  Caller key salt
	-g             Genesis file
	--owner        Owner identity
	--clock        Clock mode
	--rate         Rate limit
	--debug        Debug logging
	--trust-proxy  Trust X-Forwarded-For and X-Real-IP
	--issue-key    Identity to issue a key for

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CALLER_KEY_SALT → --caller-salt
	GENESIS_FILE    → -g
	OWNER_ID        → --owner
	CLOCK_MODE      → --clock
	RATE_LIMIT      → --rate
	DEBUG           → --debug
	TRUST_PROXY     → --trust-proxy

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment first; variables already set win.

# Genesis

The genesis file holds the values written once when the ledger is first
initialized:

	owner: council
	emergency_admin: guardian
	min_vote_threshold: 1
	require_registration: true
	max_candidates_per_round: 20
	token_voting: false

Absent keys keep the defaults shown. --owner overrides the file's owner:

	genesis, err := cliparse.Genesis(cfg)
*/
package cliparse
