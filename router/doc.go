// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the govote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(l, clock, registry, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Public reads:

	GET /status                               - Voting status snapshot
	GET /clock                                - Current logical height
	GET /rounds/{round}                       - Round detail
	GET /rounds/{round}/candidates            - Candidate ids in list order
	GET /rounds/{round}/candidates/{id}       - Candidate detail
	GET /rounds/{round}/stats                 - Election stats
	GET /rounds/{round}/leaderboard           - Ranked candidates
	GET /rounds/{round}/delegations/{voter}   - Delegation detail
	GET /rounds/{round}/votes/{voter}         - Vote record
	GET /voters/{voter}                       - Voter registration
	GET /voters/{voter}/eligible              - Eligibility
	GET /audit                                - Audit entries (?after=&limit=)
	GET /audit/{id}                           - Audit entry
	GET /proposals/{id}                       - Proposal detail

Identities:

	POST /identities - Issue an identity and its caller key

Caller operations (require X-Caller-ID and X-Caller-Key):

	POST   /rounds                      - Create round (owner)
	POST   /rounds/{round}/start        - Start round (owner)
	POST   /rounds/{round}/candidates   - Add candidate (owner)
	POST   /rounds/{round}/delegation   - Delegate
	DELETE /rounds/{round}/delegation   - Revoke delegation
	POST   /voters                      - Register as voter
	POST   /voters/{voter}/kyc          - Verify voter (owner)
	POST   /votes                       - Cast vote
	POST   /proposals                   - Create proposal
	POST   /proposals/{id}/votes        - Vote on proposal
	POST   /admin/pause                 - Emergency pause (owner or admin)
	PUT    /admin/config                - Update configuration (owner)
	PUT    /admin/emergency-admin       - Set emergency admin (owner)
	POST   /admin/clock                 - Advance manual clock (owner)
*/
package router
