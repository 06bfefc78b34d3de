// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/govote/models"
)

// MaxAuditPage caps the number of entries returned by AuditEntries.
const MaxAuditPage = 500

// appendAudit writes e under the next audit id. The caller persists the
// advanced counter with saveState in the same transaction.
func appendAudit(ctx context.Context, tx *sql.Tx, st *models.GovernanceState, e models.AuditEntry) (uint64, error) {
	id := st.NextAuditID
	_, err := tx.ExecContext(ctx, `
		INSERT INTO audit_entry (id, voter, candidate_id, round_id, timestamp, verification_hash, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, e.Voter, e.CandidateID, e.RoundID, e.Timestamp, e.VerificationHash, nullString(e.IPHash))
	if err != nil {
		return 0, fmt.Errorf("failed to append audit entry: %w", err)
	}
	st.NextAuditID++
	return id, nil
}

// AuditEntry returns the entry with the given id.
func (l *Ledger) AuditEntry(ctx context.Context, id uint64) (models.AuditEntry, bool, error) {
	var e models.AuditEntry
	var ipHash sql.NullString
	if !storable(id) {
		return models.AuditEntry{}, false, nil
	}
	err := l.db.QueryRowContext(ctx, `
		SELECT id, voter, candidate_id, round_id, timestamp, verification_hash, ip_hash
		FROM audit_entry
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Voter, &e.CandidateID, &e.RoundID, &e.Timestamp, &e.VerificationHash, &ipHash)
	if err == sql.ErrNoRows {
		return models.AuditEntry{}, false, nil
	}
	if err != nil {
		return models.AuditEntry{}, false, fmt.Errorf("failed to get audit entry: %w", err)
	}
	e.IPHash = stringPtr(ipHash)
	return e, true, nil
}

// AuditEntries returns up to limit entries with ids greater than after, in
// id order. A zero limit, or one above MaxAuditPage, is treated as
// MaxAuditPage.
func (l *Ledger) AuditEntries(ctx context.Context, after uint64, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > MaxAuditPage {
		limit = MaxAuditPage
	}
	if !storable(after) {
		return []models.AuditEntry{}, nil
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, voter, candidate_id, round_id, timestamp, verification_hash, ip_hash
		FROM audit_entry
		WHERE id > $1
		ORDER BY id
		LIMIT $2
	`, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		var ipHash sql.NullString
		if err := rows.Scan(&e.ID, &e.Voter, &e.CandidateID, &e.RoundID, &e.Timestamp, &e.VerificationHash, &ipHash); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.IPHash = stringPtr(ipHash)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}
	return entries, nil
}
