// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/danielhkuo/govote/models"
)

// Ballot is a vote for a candidate of the current round.
type Ballot struct {
	CandidateID uint64
	// BaseWeight is only honored when token voting is enabled.
	BaseWeight       uint64
	VerificationHash string
	IPHash           *string
}

// Receipt describes an accepted vote.
type Receipt struct {
	RoundID          uint64 `json:"round_id"`
	Weight           uint64 `json:"weight"`
	AuditID          uint64 `json:"audit_id"`
	VerificationHash string `json:"verification_hash"`
}

// CastVote records caller's vote in the current round. Checks run in a fixed
// order: voting open, caller eligible, no prior vote, candidate present and
// active, weight valid. A rejected vote leaves no trace.
func (l *Ledger) CastVote(ctx context.Context, caller string, b Ballot) (Receipt, error) {
	var rcpt Receipt
	err := l.update(ctx, "cast_vote", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := validateIdentity(caller); err != nil {
			return err
		}
		if !st.VotingActive || now > st.VotingEndTime {
			return ErrVotingClosed
		}
		if err := requireEligible(ctx, tx, st, caller); err != nil {
			return err
		}

		roundID := st.CurrentRound

		_, voted, err := getVoteRecord(ctx, tx, caller, roundID)
		if err != nil {
			return err
		}
		if voted {
			return ErrAlreadyVoted
		}

		c, found, err := getCandidate(ctx, tx, roundID, b.CandidateID)
		if err != nil {
			return err
		}
		if !found || !c.Active {
			return ErrCandidateNotFound
		}

		weight, err := effectiveWeight(st, b.BaseWeight)
		if err != nil {
			return err
		}

		total, err := roundWeightedTotal(ctx, tx, roundID)
		if err != nil {
			return err
		}
		if total > maxStored-weight {
			return ErrTallyOverflow
		}

		auditID := st.NextAuditID
		hash := b.VerificationHash
		if hash == "" {
			hash = receiptHash(caller, b.CandidateID, roundID, now, auditID)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote_record (voter, round_id, voted, candidate_id, vote_weight, timestamp, verification_hash)
			VALUES ($1, $2, TRUE, $3, $4, $5, $6)
		`, caller, roundID, b.CandidateID, weight, now, hash)
		if err != nil {
			return fmt.Errorf("failed to insert vote record: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE candidate
			SET vote_count = vote_count + 1, weighted_vote_count = weighted_vote_count + $1
			WHERE id = $2 AND round_id = $3
		`, weight, b.CandidateID, roundID)
		if err != nil {
			return fmt.Errorf("failed to update tally: %w", err)
		}

		if _, err := appendAudit(ctx, tx, st, models.AuditEntry{
			Voter:            caller,
			CandidateID:      b.CandidateID,
			RoundID:          roundID,
			Timestamp:        now,
			VerificationHash: hash,
			IPHash:           b.IPHash,
		}); err != nil {
			return err
		}

		if err := saveState(ctx, tx, st); err != nil {
			return err
		}

		rcpt = Receipt{
			RoundID:          roundID,
			Weight:           weight,
			AuditID:          auditID,
			VerificationHash: hash,
		}

		l.logger.Info("vote cast",
			"event", "vote_cast",
			"module", "ledger",
			"round_id", roundID,
			"candidate_id", b.CandidateID,
			"weight", weight,
			"audit_id", auditID,
		)
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}
	l.metrics.observeVote(rcpt.Weight)
	return rcpt, nil
}

// VoteRecord returns voter's vote in round.
func (l *Ledger) VoteRecord(ctx context.Context, voter string, roundID uint64) (models.VoteRecord, bool, error) {
	var v models.VoteRecord
	var found bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		var err error
		v, found, err = getVoteRecord(ctx, tx, voter, roundID)
		return err
	})
	return v, found, err
}

// effectiveWeight is the baseline weighting policy: one voter one vote, or
// the caller-supplied weight when token voting is on. Balances are not
// checked against any token ledger.
func effectiveWeight(st *models.GovernanceState, base uint64) (uint64, error) {
	if !st.TokenVoting {
		return 1, nil
	}
	if base == 0 || !storable(base) {
		return 0, ErrInvalidInput
	}
	return base, nil
}

func receiptHash(voter string, candidateID, roundID, height, auditID uint64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d|%d|%d", voter, candidateID, roundID, height, auditID))
	return hex.EncodeToString(sum[:])
}

// roundWeightedTotal sums the weighted tallies of the round's listed
// candidates. Keeping it within range bounds every candidate tally and the
// totals reported by ElectionStats.
func roundWeightedTotal(ctx context.Context, tx *sql.Tx, roundID uint64) (uint64, error) {
	var total uint64
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(c.weighted_vote_count), 0)
		FROM round_candidate rc
		JOIN candidate c ON c.id = rc.candidate_id AND c.round_id = rc.round_id
		WHERE rc.round_id = $1
	`, roundID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum round tally: %w", err)
	}
	return total, nil
}

func getVoteRecord(ctx context.Context, tx *sql.Tx, voter string, roundID uint64) (models.VoteRecord, bool, error) {
	var v models.VoteRecord
	var hash sql.NullString
	if !storable(roundID) {
		return models.VoteRecord{}, false, nil
	}
	err := tx.QueryRowContext(ctx, `
		SELECT voter, round_id, voted, candidate_id, vote_weight, timestamp, verification_hash
		FROM vote_record
		WHERE voter = $1 AND round_id = $2
	`, voter, roundID).Scan(&v.Voter, &v.RoundID, &v.Voted, &v.CandidateID, &v.VoteWeight, &v.Timestamp, &hash)
	if err == sql.ErrNoRows {
		return models.VoteRecord{}, false, nil
	}
	if err != nil {
		return models.VoteRecord{}, false, fmt.Errorf("failed to get vote record: %w", err)
	}
	v.VerificationHash = stringPtr(hash)
	return v, true, nil
}
