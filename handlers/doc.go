// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the govote API.

# Handler Types

Each handler is a struct holding the ledger, plus the config where it signs
or hashes with the caller key salt:

  - RoundHandler: Rounds, candidates, stats and leaderboard
  - VoterHandler: Registration, KYC and delegation
  - VotingHandler: Vote casting, vote records, status and the audit trail
  - ProposalHandler: Proposal creation and proposal votes
  - AdminHandler: Pause, configuration, emergency admin and the clock
  - IdentityHandler: Issuing caller identities

Handlers are created via constructor functions:

	roundHandler := handlers.NewRoundHandler(l)
	adminHandler := handlers.NewAdminHandler(l, clock)

# Caller Identity

Mutating handlers read the caller from middleware.CallerID, so they must be
wrapped in middleware.RequireCaller. The ledger decides what the caller may
do; handlers never check ownership themselves, except for AdvanceClock,
which acts on the clock rather than the ledger.

# Error Mapping

Ledger rejections map to statuses by kind:

	unauthorized        → 403
	not found           → 404
	already done        → 409
	invalid state       → 409
	validation          → 400
	insufficient stake  → 422

Anything else is logged and answered with a generic 500.

# Absent Data

Lookups for rounds, candidates, voters, delegations, vote records, proposals
and audit entries return 200 with {"found": false} when nothing exists. A
missing record is an answer, not an error.
*/
package handlers
