// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/govote/models"
)

// RegisterVoter creates caller's registration. KYC starts unverified.
func (l *Ledger) RegisterVoter(ctx context.Context, caller, category string, stake uint64) error {
	return l.update(ctx, "register_voter", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := validateIdentity(caller); err != nil {
			return err
		}
		if !storable(stake) {
			return ErrInvalidInput
		}

		_, found, err := getVoter(ctx, tx, caller)
		if err != nil {
			return err
		}
		if found {
			return ErrAlreadyRegistered
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO voter_registration (voter, registered, registration_date, category, kyc_verified, stake_amount)
			VALUES ($1, TRUE, $2, $3, FALSE, $4)
		`, caller, now, category, stake)
		if err != nil {
			return fmt.Errorf("failed to insert voter registration: %w", err)
		}

		l.logger.Info("voter registered",
			"event", "voter_registered",
			"module", "ledger",
			"voter", caller,
			"category", category,
		)
		return nil
	})
}

// VerifyKYC marks voter as KYC-verified.
func (l *Ledger) VerifyKYC(ctx context.Context, caller, voter string) error {
	return l.update(ctx, "verify_kyc", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireOwner(st, caller); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `UPDATE voter_registration SET kyc_verified = TRUE WHERE voter = $1`, voter)
		if err != nil {
			return fmt.Errorf("failed to verify voter: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to verify voter: %w", err)
		}
		if n == 0 {
			return ErrVoterNotFound
		}

		l.logger.Info("voter verified",
			"event", "kyc_verified",
			"module", "ledger",
			"voter", voter,
		)
		return nil
	})
}

// IsEligible reports whether voter may vote, delegate and propose.
func (l *Ledger) IsEligible(ctx context.Context, voter string) (bool, error) {
	var eligible bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}
		eligible, err = isEligible(ctx, tx, &st, voter)
		return err
	})
	return eligible, err
}

// Voter returns voter's registration.
func (l *Ledger) Voter(ctx context.Context, voter string) (models.VoterRegistration, bool, error) {
	var v models.VoterRegistration
	var found bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		var err error
		v, found, err = getVoter(ctx, tx, voter)
		return err
	})
	return v, found, err
}

func isEligible(ctx context.Context, tx *sql.Tx, st *models.GovernanceState, voter string) (bool, error) {
	if !st.RequireRegistration {
		return true, nil
	}
	v, found, err := getVoter(ctx, tx, voter)
	if err != nil {
		return false, err
	}
	return found && v.Registered && v.KYCVerified, nil
}

// requireEligible gates operations restricted to eligible voters.
func requireEligible(ctx context.Context, tx *sql.Tx, st *models.GovernanceState, caller string) error {
	if err := validateIdentity(caller); err != nil {
		return err
	}
	ok, err := isEligible(ctx, tx, st, caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotEligible
	}
	return nil
}

func getVoter(ctx context.Context, tx *sql.Tx, voter string) (models.VoterRegistration, bool, error) {
	var v models.VoterRegistration
	err := tx.QueryRowContext(ctx, `
		SELECT voter, registered, registration_date, category, kyc_verified, stake_amount
		FROM voter_registration
		WHERE voter = $1
	`, voter).Scan(&v.Voter, &v.Registered, &v.RegistrationDate, &v.Category, &v.KYCVerified, &v.StakeAmount)
	if err == sql.ErrNoRows {
		return models.VoterRegistration{}, false, nil
	}
	if err != nil {
		return models.VoterRegistration{}, false, fmt.Errorf("failed to get voter: %w", err)
	}
	return v, true, nil
}
