// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// VotingType is informational only; tallying is the same for every type.
type VotingType string

// Voting type constants
const (
	VotingSimple   VotingType = "simple"
	VotingWeighted VotingType = "weighted"
	VotingRanked   VotingType = "ranked"
)

// Valid reports whether t is a known voting type.
func (t VotingType) Valid() bool {
	switch t {
	case VotingSimple, VotingWeighted, VotingRanked:
		return true
	default:
		return false
	}
}

// Round phases as seen by vote acceptance
const (
	PhaseNotStarted = "not_started"
	PhaseOpen       = "open"
	PhaseClosed     = "closed"
)

// Genesis holds the deployment-time values used to initialize the ledger.
type Genesis struct {
	Owner                 string  `yaml:"owner"`
	EmergencyAdmin        *string `yaml:"emergency_admin"`
	MinVoteThreshold      uint64  `yaml:"min_vote_threshold"`
	RequireRegistration   bool    `yaml:"require_registration"`
	MaxCandidatesPerRound uint64  `yaml:"max_candidates_per_round"`
	TokenVoting           bool    `yaml:"token_voting"`
}

// DefaultGenesis returns the defaults applied before a genesis file is read.
func DefaultGenesis() Genesis {
	return Genesis{
		MinVoteThreshold:      1,
		RequireRegistration:   true,
		MaxCandidatesPerRound: 20,
	}
}

// GovernanceState is the process-wide configuration and counter row.
type GovernanceState struct {
	Owner                 string  `json:"owner"`
	EmergencyAdmin        *string `json:"emergency_admin,omitempty"`
	VotingActive          bool    `json:"voting_active"`
	CurrentRound          uint64  `json:"current_round"`
	VotingStartTime       uint64  `json:"voting_start_time"`
	VotingEndTime         uint64  `json:"voting_end_time"`
	MinVoteThreshold      uint64  `json:"min_vote_threshold"`
	RequireRegistration   bool    `json:"require_registration"`
	MaxCandidatesPerRound uint64  `json:"max_candidates_per_round"`
	TokenVoting           bool    `json:"token_voting"`
	NextCandidateID       uint64  `json:"-"`
	NextProposalID        uint64  `json:"-"`
	NextAuditID           uint64  `json:"-"`
}

type Round struct {
	ID               uint64     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartTime        uint64     `json:"start_time"`
	EndTime          uint64     `json:"end_time"`
	MinParticipation uint64     `json:"min_participation"`
	VotingType       VotingType `json:"voting_type"`
	Active           bool       `json:"active"`
	Finalized        bool       `json:"finalized"`
	CreatedAt        uint64     `json:"created_at"`
}

type Candidate struct {
	ID                uint64  `json:"id"`
	RoundID           uint64  `json:"round_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	ImageHash         string  `json:"image_hash"`
	ProfileURL        *string `json:"profile_url,omitempty"`
	ManifestoHash     *string `json:"manifesto_hash,omitempty"`
	VoteCount         uint64  `json:"vote_count"`
	WeightedVoteCount uint64  `json:"weighted_vote_count"`
	Active            bool    `json:"active"`
	CreatedAt         uint64  `json:"created_at"`
	Creator           string  `json:"creator"`
	Category          string  `json:"category"`
}

type VoterRegistration struct {
	Voter            string `json:"voter"`
	Registered       bool   `json:"registered"`
	RegistrationDate uint64 `json:"registration_date"`
	Category         string `json:"category"`
	KYCVerified      bool   `json:"kyc_verified"`
	StakeAmount      uint64 `json:"stake_amount"`
}

type Delegation struct {
	Delegator string `json:"delegator"`
	RoundID   uint64 `json:"round_id"`
	Delegate  string `json:"delegate"`
	Active    bool   `json:"active"`
	CreatedAt uint64 `json:"created_at"`
}

type VoteRecord struct {
	Voter            string  `json:"voter"`
	RoundID          uint64  `json:"round_id"`
	Voted            bool    `json:"voted"`
	CandidateID      uint64  `json:"candidate_id"`
	VoteWeight       uint64  `json:"vote_weight"`
	Timestamp        uint64  `json:"timestamp"`
	VerificationHash *string `json:"verification_hash,omitempty"`
}

// AuditEntry is immutable once written.
type AuditEntry struct {
	ID               uint64  `json:"id"`
	Voter            string  `json:"voter"`
	CandidateID      uint64  `json:"candidate_id"`
	RoundID          uint64  `json:"round_id"`
	Timestamp        uint64  `json:"timestamp"`
	VerificationHash string  `json:"verification_hash"`
	IPHash           *string `json:"-"` // Never expose in JSON
}

type Proposal struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Proposer       string `json:"proposer"`
	VotesFor       uint64 `json:"votes_for"`
	VotesAgainst   uint64 `json:"votes_against"`
	VotingDeadline uint64 `json:"voting_deadline"`
	Executed       bool   `json:"executed"`
	ProposalType   string `json:"proposal_type"`
	TargetValue    uint64 `json:"target_value"`
	Active         bool   `json:"active"`
	CreatedAt      uint64 `json:"created_at"`
}

// Stats types

type ElectionStats struct {
	RoundID            uint64 `json:"round_id"`
	Round              *Round `json:"round,omitempty"`
	TotalCandidates    int    `json:"total_candidates"`
	TotalVotes         uint64 `json:"total_votes"`
	TotalWeightedVotes uint64 `json:"total_weighted_votes"`
	MinParticipation   uint64 `json:"min_participation"`
	ParticipationMet   bool   `json:"participation_met"`
}

type VotingStatus struct {
	GovernanceState
	Height uint64 `json:"height"`
	Open   bool   `json:"open"`
}

type LeaderboardItem struct {
	Rank              int    `json:"rank"` // 1-indexed ranking
	CandidateID       uint64 `json:"candidate_id"`
	Name              string `json:"name"`
	VoteCount         uint64 `json:"vote_count"`
	WeightedVoteCount uint64 `json:"weighted_vote_count"`
}
