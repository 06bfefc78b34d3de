// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/danielhkuo/govote/models"
)

const (
	maxIdentityLen = 128

	// Hard ceiling on a round's candidate list, independent of configuration.
	candidateListBound = 100

	// maxStored is the largest id, height, stake or tally the store holds.
	// Columns are signed 64-bit on both backends.
	maxStored = math.MaxInt64
)

var ErrNotInitialized = errors.New("ledger is not initialized")

// Ledger is the governance state machine. Every mutating operation is one
// serializable unit: it holds the writer lock for its whole duration and
// commits all of its writes in a single SQL transaction, or none of them.
type Ledger struct {
	db      *sql.DB
	clock   Clock
	metrics *Metrics
	logger  *slog.Logger

	// readOpts configures the transactions behind read-only queries.
	readOpts *sql.TxOptions

	mu sync.Mutex
}

type Option func(*Ledger)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(l *Ledger) {
		l.metrics = metrics
	}
}

// WithReadOptions replaces the transaction options used by read-only
// queries. The default is a read-only repeatable read transaction.
func WithReadOptions(opts *sql.TxOptions) Option {
	return func(l *Ledger) {
		l.readOpts = opts
	}
}

func New(db *sql.DB, clock Clock, opts ...Option) *Ledger {
	l := &Ledger{
		db:       db,
		clock:    clock,
		logger:   slog.Default(),
		readOpts: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Height returns the current logical clock value.
func (l *Ledger) Height() uint64 {
	return l.clock.Height()
}

// Init writes the process-wide state from genesis. It only takes effect the
// first time; later calls leave the stored state untouched.
func (l *Ledger) Init(ctx context.Context, genesis models.Genesis) error {
	if err := validateIdentity(genesis.Owner); err != nil {
		return fmt.Errorf("genesis owner: %w", err)
	}
	if genesis.EmergencyAdmin != nil {
		if err := validateIdentity(*genesis.EmergencyAdmin); err != nil {
			return fmt.Errorf("genesis emergency admin: %w", err)
		}
	}
	if genesis.MaxCandidatesPerRound == 0 || !storable(genesis.MaxCandidatesPerRound) {
		return fmt.Errorf("genesis max candidates per round: %w", ErrInvalidInput)
	}
	if !storable(genesis.MinVoteThreshold) {
		return fmt.Errorf("genesis min vote threshold: %w", ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO governance_state (
			id, owner, emergency_admin, voting_active, current_round,
			voting_start_time, voting_end_time, min_vote_threshold,
			require_registration, max_candidates_per_round, token_voting,
			next_candidate_id, next_proposal_id, next_audit_id
		)
		VALUES (1, $1, $2, FALSE, 0, 0, 0, $3, $4, $5, $6, 1, 1, 1)
		ON CONFLICT (id) DO NOTHING
	`, genesis.Owner, nullString(genesis.EmergencyAdmin), genesis.MinVoteThreshold,
		genesis.RequireRegistration, genesis.MaxCandidatesPerRound, genesis.TokenVoting)
	if err != nil {
		return fmt.Errorf("failed to initialize governance state: %w", err)
	}

	l.logger.Info("ledger initialized",
		"event", "ledger_initialized",
		"module", "ledger",
		"owner", genesis.Owner,
	)
	return nil
}

// update runs fn as one atomic state transition.
func (l *Ledger) update(ctx context.Context, op string, fn func(tx *sql.Tx, st *models.GovernanceState, now uint64) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.runUpdate(ctx, fn)
	l.metrics.observeOperation(op, err)
	if err != nil {
		if KindOf(err) != nil {
			l.logger.Warn("ledger operation rejected",
				"event", op+"_rejected",
				"module", "ledger",
				"error", err.Error(),
			)
		} else {
			l.logger.Error("ledger operation failed",
				"event", op+"_failed",
				"module", "ledger",
				"error", err.Error(),
			)
		}
	}
	return err
}

func (l *Ledger) runUpdate(ctx context.Context, fn func(tx *sql.Tx, st *models.GovernanceState, now uint64) error) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	st, err := loadState(ctx, tx)
	if err != nil {
		return err
	}

	if err := fn(tx, &st, l.clock.Height()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// view runs fn inside a read-only transaction that is always rolled back.
// Repeatable read gives multi-table reads one snapshot on PostgreSQL, where
// the default is read committed.
func (l *Ledger) view(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := l.db.BeginTx(ctx, l.readOpts)
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()
	return fn(tx)
}

func loadState(ctx context.Context, tx *sql.Tx) (models.GovernanceState, error) {
	var st models.GovernanceState
	var admin sql.NullString
	err := tx.QueryRowContext(ctx, `
		SELECT owner, emergency_admin, voting_active, current_round,
		       voting_start_time, voting_end_time, min_vote_threshold,
		       require_registration, max_candidates_per_round, token_voting,
		       next_candidate_id, next_proposal_id, next_audit_id
		FROM governance_state
		WHERE id = 1
	`).Scan(
		&st.Owner, &admin, &st.VotingActive, &st.CurrentRound,
		&st.VotingStartTime, &st.VotingEndTime, &st.MinVoteThreshold,
		&st.RequireRegistration, &st.MaxCandidatesPerRound, &st.TokenVoting,
		&st.NextCandidateID, &st.NextProposalID, &st.NextAuditID,
	)
	if err == sql.ErrNoRows {
		return models.GovernanceState{}, ErrNotInitialized
	}
	if err != nil {
		return models.GovernanceState{}, fmt.Errorf("failed to load governance state: %w", err)
	}
	st.EmergencyAdmin = stringPtr(admin)
	return st, nil
}

func saveState(ctx context.Context, tx *sql.Tx, st *models.GovernanceState) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE governance_state
		SET emergency_admin = $1, voting_active = $2, current_round = $3,
		    voting_start_time = $4, voting_end_time = $5, min_vote_threshold = $6,
		    require_registration = $7, max_candidates_per_round = $8,
		    next_candidate_id = $9, next_proposal_id = $10, next_audit_id = $11
		WHERE id = 1
	`, nullString(st.EmergencyAdmin), st.VotingActive, st.CurrentRound,
		st.VotingStartTime, st.VotingEndTime, st.MinVoteThreshold,
		st.RequireRegistration, st.MaxCandidatesPerRound,
		st.NextCandidateID, st.NextProposalID, st.NextAuditID)
	if err != nil {
		return fmt.Errorf("failed to save governance state: %w", err)
	}
	return nil
}

// validateIdentity rejects identities that could alias another caller.
func validateIdentity(id string) error {
	if id == "" || len(id) > maxIdentityLen || strings.TrimSpace(id) != id {
		return ErrInvalidIdentity
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return ErrInvalidIdentity
		}
	}
	return nil
}

// storable reports whether every value fits the store's signed columns.
func storable(vs ...uint64) bool {
	for _, v := range vs {
		if v > maxStored {
			return false
		}
	}
	return true
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
