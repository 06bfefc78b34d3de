// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/govote/models"
)

// Delegate records that caller delegates to delegate for round, replacing any
// earlier delegation by caller for that round. Only a direct reciprocal
// delegation is treated as a loop; A->B->C->A is accepted.
//
// Delegations are informational. Vote weight never depends on them.
func (l *Ledger) Delegate(ctx context.Context, caller, delegate string, roundID uint64) error {
	return l.update(ctx, "delegate", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := validateIdentity(caller); err != nil {
			return err
		}
		if err := validateIdentity(delegate); err != nil {
			return ErrInvalidInput
		}
		if caller == delegate {
			return ErrSelfDelegation
		}
		if !storable(roundID) {
			return ErrInvalidInput
		}
		if err := requireEligible(ctx, tx, st, caller); err != nil {
			return err
		}

		reverse, found, err := getDelegation(ctx, tx, delegate, roundID)
		if err != nil {
			return err
		}
		if found && reverse.Active && reverse.Delegate == caller {
			return ErrDelegationLoop
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO delegation (delegator, round_id, delegate, active, created_at)
			VALUES ($1, $2, $3, TRUE, $4)
			ON CONFLICT (delegator, round_id)
			DO UPDATE SET delegate = EXCLUDED.delegate, active = TRUE, created_at = EXCLUDED.created_at
		`, caller, roundID, delegate, now)
		if err != nil {
			return fmt.Errorf("failed to upsert delegation: %w", err)
		}

		l.logger.Info("vote delegated",
			"event", "delegated",
			"module", "ledger",
			"delegator", caller,
			"delegate", delegate,
			"round_id", roundID,
		)
		return nil
	})
}

// RevokeDelegation deactivates caller's delegation for round. The record is
// kept; revoking an inactive delegation succeeds.
func (l *Ledger) RevokeDelegation(ctx context.Context, caller string, roundID uint64) error {
	return l.update(ctx, "revoke_delegation", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := validateIdentity(caller); err != nil {
			return err
		}
		if !storable(roundID) {
			return ErrDelegationNotFound
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE delegation SET active = FALSE
			WHERE delegator = $1 AND round_id = $2
		`, caller, roundID)
		if err != nil {
			return fmt.Errorf("failed to revoke delegation: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to revoke delegation: %w", err)
		}
		if n == 0 {
			return ErrDelegationNotFound
		}

		l.logger.Info("delegation revoked",
			"event", "delegation_revoked",
			"module", "ledger",
			"delegator", caller,
			"round_id", roundID,
		)
		return nil
	})
}

// Delegation returns delegator's delegation for round.
func (l *Ledger) Delegation(ctx context.Context, delegator string, roundID uint64) (models.Delegation, bool, error) {
	var d models.Delegation
	var found bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		var err error
		d, found, err = getDelegation(ctx, tx, delegator, roundID)
		return err
	})
	return d, found, err
}

func getDelegation(ctx context.Context, tx *sql.Tx, delegator string, roundID uint64) (models.Delegation, bool, error) {
	var d models.Delegation
	if !storable(roundID) {
		return models.Delegation{}, false, nil
	}
	err := tx.QueryRowContext(ctx, `
		SELECT delegator, round_id, delegate, active, created_at
		FROM delegation
		WHERE delegator = $1 AND round_id = $2
	`, delegator, roundID).Scan(&d.Delegator, &d.RoundID, &d.Delegate, &d.Active, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Delegation{}, false, nil
	}
	if err != nil {
		return models.Delegation{}, false, fmt.Errorf("failed to get delegation: %w", err)
	}
	return d, true, nil
}
