// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/govote/models"
)

// NewRound holds the owner-supplied fields of a round.
type NewRound struct {
	Title            string
	Description      string
	StartTime        uint64
	EndTime          uint64
	MinParticipation uint64
	VotingType       models.VotingType
}

// CreateRound stores a new inactive round and returns its id. The id is the
// current-round pointer plus one, so creating a second round before starting
// the first collides and fails with ErrRoundExists.
func (l *Ledger) CreateRound(ctx context.Context, caller string, r NewRound) (uint64, error) {
	var id uint64
	err := l.update(ctx, "create_round", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireOwner(st, caller); err != nil {
			return err
		}
		if !storable(r.StartTime, r.EndTime, r.MinParticipation) {
			return ErrInvalidInput
		}
		if r.EndTime <= r.StartTime {
			return ErrTimeRange
		}
		if !r.VotingType.Valid() {
			return ErrInvalidInput
		}

		id = st.CurrentRound + 1

		exists, err := roundExists(ctx, tx, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrRoundExists
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO round (id, title, description, start_time, end_time, min_participation, voting_type, active, finalized, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE, $8)
		`, id, r.Title, r.Description, r.StartTime, r.EndTime, r.MinParticipation, string(r.VotingType), now)
		if err != nil {
			return fmt.Errorf("failed to insert round: %w", err)
		}

		l.logger.Info("round created",
			"event", "round_created",
			"module", "ledger",
			"round_id", id,
			"start_time", r.StartTime,
			"end_time", r.EndTime,
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// StartRound opens round for voting once the clock has reached its start
// time. Rounds started earlier keep their active flag; only the global
// pointer decides which round accepts votes.
func (l *Ledger) StartRound(ctx context.Context, caller string, roundID uint64) error {
	return l.update(ctx, "start_round", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireOwner(st, caller); err != nil {
			return err
		}

		r, found, err := getRound(ctx, tx, roundID)
		if err != nil {
			return err
		}
		if !found {
			return ErrRoundNotFound
		}
		if now < r.StartTime {
			return ErrNotStarted
		}

		if _, err := tx.ExecContext(ctx, `UPDATE round SET active = TRUE WHERE id = $1`, roundID); err != nil {
			return fmt.Errorf("failed to activate round: %w", err)
		}

		st.CurrentRound = roundID
		st.VotingActive = true
		st.VotingStartTime = r.StartTime
		st.VotingEndTime = r.EndTime
		if err := saveState(ctx, tx, st); err != nil {
			return err
		}

		l.logger.Info("round started",
			"event", "round_started",
			"module", "ledger",
			"round_id", roundID,
			"height", now,
		)
		return nil
	})
}

// Round returns the round with the given id.
func (l *Ledger) Round(ctx context.Context, roundID uint64) (models.Round, bool, error) {
	var r models.Round
	var found bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		var err error
		r, found, err = getRound(ctx, tx, roundID)
		return err
	})
	return r, found, err
}

func getRound(ctx context.Context, tx *sql.Tx, roundID uint64) (models.Round, bool, error) {
	var r models.Round
	var votingType string
	if !storable(roundID) {
		return models.Round{}, false, nil
	}
	err := tx.QueryRowContext(ctx, `
		SELECT id, title, description, start_time, end_time, min_participation, voting_type, active, finalized, created_at
		FROM round
		WHERE id = $1
	`, roundID).Scan(&r.ID, &r.Title, &r.Description, &r.StartTime, &r.EndTime,
		&r.MinParticipation, &votingType, &r.Active, &r.Finalized, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Round{}, false, nil
	}
	if err != nil {
		return models.Round{}, false, fmt.Errorf("failed to get round: %w", err)
	}
	r.VotingType = models.VotingType(votingType)
	return r, true, nil
}

func roundExists(ctx context.Context, tx *sql.Tx, roundID uint64) (bool, error) {
	if !storable(roundID) {
		return false, nil
	}
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM round WHERE id = $1)`, roundID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check round: %w", err)
	}
	return exists, nil
}
