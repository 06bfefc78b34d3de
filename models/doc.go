// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateRoundRequest: title, description, start_time, end_time, min_participation, voting_type
  - AddCandidateRequest: name, description, image_hash, profile_url?, manifesto_hash?, category
  - RegisterVoterRequest: category, stake_amount
  - DelegateRequest: delegate
  - CastVoteRequest: candidate_id, base_weight, verification_hash
  - CreateProposalRequest: title, description, proposal_type, target_value, voting_deadline
  - ProposalVoteRequest: support
  - UpdateConfigRequest: min_vote_threshold, max_candidates_per_round, require_registration
  - SetEmergencyAdminRequest: admin
  - AdvanceClockRequest: height

# Response Types

  - IdentityResponse: identity, caller_key
  - CreateRoundResponse, AddCandidateResponse, CreateProposalResponse: new ids
  - CastVoteResponse: round_id, weight, audit_id, verification_hash
  - Lookup[T]: found plus the value when present
  - StatsResponse, LeaderboardResponse, AuditListResponse, CandidateListResponse
  - ErrorResponse: error, message

Reads of absent data answer 200 with "found": false rather than an error.

# Domain Types

  - Genesis: deployment-time values, loaded from YAML
  - GovernanceState: process-wide configuration, pointers and counters
  - Round, Candidate, VoterRegistration, Delegation, VoteRecord
  - AuditEntry: immutable record of an accepted vote; ip_hash never leaves the server
  - Proposal: weighted for/against tallies with a deadline
  - ElectionStats, VotingStatus, LeaderboardItem: derived views

All logical times (start/end, created_at, timestamps, deadlines) are block
heights, not wall-clock times.

# Constants

Voting types (informational only):

	VotingSimple   = "simple"
	VotingWeighted = "weighted"
	VotingRanked   = "ranked"
*/
package models
