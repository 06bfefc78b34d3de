// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/govote/models"
)

// NewCandidate holds the owner-supplied fields of a candidate.
type NewCandidate struct {
	Name          string
	Description   string
	ImageHash     string
	ProfileURL    *string
	ManifestoHash *string
	Category      string
}

// AddCandidate registers a candidate for round and appends it to the round's
// ordered list. The list is bounded by max-candidates-per-round and by a hard
// ceiling of 100 entries.
func (l *Ledger) AddCandidate(ctx context.Context, caller string, roundID uint64, c NewCandidate) (uint64, error) {
	var id uint64
	err := l.update(ctx, "add_candidate", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireOwner(st, caller); err != nil {
			return err
		}
		if strings.TrimSpace(c.Name) == "" {
			return ErrInvalidInput
		}

		exists, err := roundExists(ctx, tx, roundID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrRoundNotFound
		}

		count, err := countRoundCandidates(ctx, tx, roundID)
		if err != nil {
			return err
		}
		if count >= st.MaxCandidatesPerRound || count >= candidateListBound {
			return ErrCapacity
		}

		id = st.NextCandidateID
		st.NextCandidateID++

		_, err = tx.ExecContext(ctx, `
			INSERT INTO candidate (id, round_id, name, description, image_hash, profile_url, manifesto_hash,
			                       vote_count, weighted_vote_count, active, created_at, creator, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, TRUE, $8, $9, $10)
		`, id, roundID, c.Name, c.Description, c.ImageHash, nullString(c.ProfileURL),
			nullString(c.ManifestoHash), now, caller, c.Category)
		if err != nil {
			return fmt.Errorf("failed to insert candidate: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO round_candidate (round_id, position, candidate_id)
			VALUES ($1, $2, $3)
		`, roundID, count, id)
		if err != nil {
			return fmt.Errorf("failed to append candidate to round: %w", err)
		}

		if err := saveState(ctx, tx, st); err != nil {
			return err
		}

		l.logger.Info("candidate added",
			"event", "candidate_added",
			"module", "ledger",
			"round_id", roundID,
			"candidate_id", id,
			"position", count,
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Candidate returns candidate candidateID of round.
func (l *Ledger) Candidate(ctx context.Context, roundID, candidateID uint64) (models.Candidate, bool, error) {
	var c models.Candidate
	var found bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		var err error
		c, found, err = getCandidate(ctx, tx, roundID, candidateID)
		return err
	})
	return c, found, err
}

// RoundCandidateIDs returns the round's candidate ids in insertion order.
// An unknown round yields an empty list.
func (l *Ledger) RoundCandidateIDs(ctx context.Context, roundID uint64) ([]uint64, error) {
	ids := []uint64{}
	if !storable(roundID) {
		return ids, nil
	}
	err := l.view(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT candidate_id FROM round_candidate
			WHERE round_id = $1
			ORDER BY position
		`, roundID)
		if err != nil {
			return fmt.Errorf("failed to list round candidates: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var id uint64
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("failed to scan candidate id: %w", err)
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func getCandidate(ctx context.Context, tx *sql.Tx, roundID, candidateID uint64) (models.Candidate, bool, error) {
	var c models.Candidate
	var profileURL, manifestoHash sql.NullString
	if !storable(roundID, candidateID) {
		return models.Candidate{}, false, nil
	}
	err := tx.QueryRowContext(ctx, `
		SELECT id, round_id, name, description, image_hash, profile_url, manifesto_hash,
		       vote_count, weighted_vote_count, active, created_at, creator, category
		FROM candidate
		WHERE id = $1 AND round_id = $2
	`, candidateID, roundID).Scan(&c.ID, &c.RoundID, &c.Name, &c.Description, &c.ImageHash,
		&profileURL, &manifestoHash, &c.VoteCount, &c.WeightedVoteCount, &c.Active,
		&c.CreatedAt, &c.Creator, &c.Category)
	if err == sql.ErrNoRows {
		return models.Candidate{}, false, nil
	}
	if err != nil {
		return models.Candidate{}, false, fmt.Errorf("failed to get candidate: %w", err)
	}
	c.ProfileURL = stringPtr(profileURL)
	c.ManifestoHash = stringPtr(manifestoHash)
	return c, true, nil
}

func countRoundCandidates(ctx context.Context, tx *sql.Tx, roundID uint64) (uint64, error) {
	var count uint64
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM round_candidate WHERE round_id = $1`, roundID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count round candidates: %w", err)
	}
	return count, nil
}
