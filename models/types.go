// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

type CreateRoundRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	StartTime        uint64 `json:"start_time"`
	EndTime          uint64 `json:"end_time"`
	MinParticipation uint64 `json:"min_participation"`
	VotingType       string `json:"voting_type"`
}

type AddCandidateRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ImageHash     string  `json:"image_hash"`
	ProfileURL    *string `json:"profile_url,omitempty"`
	ManifestoHash *string `json:"manifesto_hash,omitempty"`
	Category      string  `json:"category"`
}

type RegisterVoterRequest struct {
	Category    string `json:"category"`
	StakeAmount uint64 `json:"stake_amount"`
}

type DelegateRequest struct {
	Delegate string `json:"delegate"`
}

type CastVoteRequest struct {
	CandidateID      uint64 `json:"candidate_id"`
	BaseWeight       uint64 `json:"base_weight"`
	VerificationHash string `json:"verification_hash"`
}

type CreateProposalRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ProposalType   string `json:"proposal_type"`
	TargetValue    uint64 `json:"target_value"`
	VotingDeadline uint64 `json:"voting_deadline"`
}

type ProposalVoteRequest struct {
	Support *bool `json:"support"`
}

type UpdateConfigRequest struct {
	MinVoteThreshold      uint64 `json:"min_vote_threshold"`
	MaxCandidatesPerRound uint64 `json:"max_candidates_per_round"`
	RequireRegistration   *bool  `json:"require_registration"`
}

type SetEmergencyAdminRequest struct {
	Admin string `json:"admin"`
}

type AdvanceClockRequest struct {
	Height uint64 `json:"height"`
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type IdentityResponse struct {
	Identity  string `json:"identity"`
	CallerKey string `json:"caller_key"`
}

type CreateRoundResponse struct {
	RoundID uint64 `json:"round_id"`
}

type AddCandidateResponse struct {
	CandidateID uint64 `json:"candidate_id"`
}

type CastVoteResponse struct {
	RoundID          uint64 `json:"round_id"`
	Weight           uint64 `json:"weight"`
	AuditID          uint64 `json:"audit_id"`
	VerificationHash string `json:"verification_hash"`
}

type CreateProposalResponse struct {
	ProposalID uint64 `json:"proposal_id"`
}

type ProposalVoteResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	Weight     uint64 `json:"weight"`
}

// Lookup wraps a read that may find nothing. Absent data is not an error.
type Lookup[T any] struct {
	Found bool `json:"found"`
	Value *T   `json:"value,omitempty"`
}

// Found wraps v as a successful lookup.
func Found[T any](v T) Lookup[T] {
	return Lookup[T]{Found: true, Value: &v}
}

type CandidateListResponse struct {
	RoundID      uint64   `json:"round_id"`
	CandidateIDs []uint64 `json:"candidate_ids"`
}

type StatsResponse struct {
	ElectionStats
	Found   bool   `json:"found"`
	Summary string `json:"summary"`
}

type LeaderboardResponse struct {
	RoundID uint64            `json:"round_id"`
	Items   []LeaderboardItem `json:"items"`
}

type AuditListResponse struct {
	Entries   []AuditEntry `json:"entries"`
	NextAfter uint64       `json:"next_after"`
}

type ClockResponse struct {
	Height uint64 `json:"height"`
}
