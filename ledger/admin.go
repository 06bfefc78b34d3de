// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/govote/models"
)

// ConfigUpdate carries the owner-tunable configuration values.
type ConfigUpdate struct {
	MinVoteThreshold      uint64
	MaxCandidatesPerRound uint64
	RequireRegistration   bool
}

// EmergencyPause closes voting globally. It affects every round, since vote
// acceptance only looks at the global flag and the current-round pointer.
func (l *Ledger) EmergencyPause(ctx context.Context, caller string) error {
	return l.update(ctx, "emergency_pause", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireAdmin(st, caller); err != nil {
			return err
		}

		st.VotingActive = false
		if err := saveState(ctx, tx, st); err != nil {
			return err
		}

		l.logger.Warn("voting paused",
			"event", "emergency_pause",
			"module", "ledger",
			"caller", caller,
			"height", now,
		)
		return nil
	})
}

// UpdateConfig replaces the tunable configuration. A candidate cap below the
// size of an existing round's list is rejected.
func (l *Ledger) UpdateConfig(ctx context.Context, caller string, cfg ConfigUpdate) error {
	return l.update(ctx, "update_config", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireOwner(st, caller); err != nil {
			return err
		}
		if cfg.MaxCandidatesPerRound == 0 || cfg.MaxCandidatesPerRound > candidateListBound {
			return ErrInvalidInput
		}
		if !storable(cfg.MinVoteThreshold) {
			return ErrInvalidInput
		}

		var largest uint64
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(n), 0)
			FROM (SELECT COUNT(*) AS n FROM round_candidate GROUP BY round_id) counts
		`).Scan(&largest)
		if err != nil {
			return fmt.Errorf("failed to count round candidates: %w", err)
		}
		if largest > cfg.MaxCandidatesPerRound {
			return ErrCapacity
		}

		st.MinVoteThreshold = cfg.MinVoteThreshold
		st.MaxCandidatesPerRound = cfg.MaxCandidatesPerRound
		st.RequireRegistration = cfg.RequireRegistration
		if err := saveState(ctx, tx, st); err != nil {
			return err
		}

		l.logger.Info("config updated",
			"event", "config_updated",
			"module", "ledger",
			"min_vote_threshold", cfg.MinVoteThreshold,
			"max_candidates_per_round", cfg.MaxCandidatesPerRound,
			"require_registration", cfg.RequireRegistration,
		)
		return nil
	})
}

// SetEmergencyAdmin installs admin as the emergency admin identity.
func (l *Ledger) SetEmergencyAdmin(ctx context.Context, caller, admin string) error {
	return l.update(ctx, "set_emergency_admin", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireOwner(st, caller); err != nil {
			return err
		}
		if err := validateIdentity(admin); err != nil {
			return ErrInvalidInput
		}

		st.EmergencyAdmin = &admin
		if err := saveState(ctx, tx, st); err != nil {
			return err
		}

		l.logger.Info("emergency admin set",
			"event", "emergency_admin_set",
			"module", "ledger",
			"admin", admin,
		)
		return nil
	})
}
