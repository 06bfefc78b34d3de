// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/govote/models"
)

// stakePerWeight is the stake needed for each extra unit of proposal weight.
const stakePerWeight = 1000

// NewProposal holds the fields supplied by the proposer.
type NewProposal struct {
	Title          string
	Description    string
	ProposalType   string
	TargetValue    uint64
	VotingDeadline uint64
}

// CreateProposal stores an active proposal and returns its id.
func (l *Ledger) CreateProposal(ctx context.Context, caller string, p NewProposal) (uint64, error) {
	var id uint64
	err := l.update(ctx, "create_proposal", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireEligible(ctx, tx, st, caller); err != nil {
			return err
		}
		if !storable(p.TargetValue, p.VotingDeadline) {
			return ErrInvalidInput
		}

		id = st.NextProposalID
		st.NextProposalID++

		_, err := tx.ExecContext(ctx, `
			INSERT INTO proposal (id, title, description, proposer, votes_for, votes_against,
			                      voting_deadline, executed, proposal_type, target_value, active, created_at)
			VALUES ($1, $2, $3, $4, 0, 0, $5, FALSE, $6, $7, TRUE, $8)
		`, id, p.Title, p.Description, caller, p.VotingDeadline, p.ProposalType, p.TargetValue, now)
		if err != nil {
			return fmt.Errorf("failed to insert proposal: %w", err)
		}

		if err := saveState(ctx, tx, st); err != nil {
			return err
		}

		l.logger.Info("proposal created",
			"event", "proposal_created",
			"module", "ledger",
			"proposal_id", id,
			"proposer", caller,
			"deadline", p.VotingDeadline,
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// VoteOnProposal adds caller's weight to the for or against tally and
// returns the weight applied. Repeat votes by the same caller accumulate.
func (l *Ledger) VoteOnProposal(ctx context.Context, caller string, proposalID uint64, support bool) (uint64, error) {
	var weight uint64
	err := l.update(ctx, "vote_on_proposal", func(tx *sql.Tx, st *models.GovernanceState, now uint64) error {
		if err := requireEligible(ctx, tx, st, caller); err != nil {
			return err
		}

		p, found, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		if !found || !p.Active {
			return ErrProposalNotFound
		}
		if now > p.VotingDeadline {
			return ErrVotingClosed
		}

		weight = 1
		v, registered, err := getVoter(ctx, tx, caller)
		if err != nil {
			return err
		}
		if registered {
			weight += v.StakeAmount / stakePerWeight
		}

		column, tally := "votes_against", p.VotesAgainst
		if support {
			column, tally = "votes_for", p.VotesFor
		}
		if tally > maxStored-weight {
			return ErrTallyOverflow
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE proposal SET `+column+` = `+column+` + $1 WHERE id = $2`,
			weight, proposalID)
		if err != nil {
			return fmt.Errorf("failed to update proposal tally: %w", err)
		}

		l.logger.Info("proposal vote recorded",
			"event", "proposal_voted",
			"module", "ledger",
			"proposal_id", proposalID,
			"support", support,
			"weight", weight,
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	l.metrics.observeProposalVote(support)
	return weight, nil
}

// Proposal returns the proposal with the given id.
func (l *Ledger) Proposal(ctx context.Context, proposalID uint64) (models.Proposal, bool, error) {
	var p models.Proposal
	var found bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		var err error
		p, found, err = getProposal(ctx, tx, proposalID)
		return err
	})
	return p, found, err
}

func getProposal(ctx context.Context, tx *sql.Tx, proposalID uint64) (models.Proposal, bool, error) {
	var p models.Proposal
	if !storable(proposalID) {
		return models.Proposal{}, false, nil
	}
	err := tx.QueryRowContext(ctx, `
		SELECT id, title, description, proposer, votes_for, votes_against, voting_deadline,
		       executed, proposal_type, target_value, active, created_at
		FROM proposal
		WHERE id = $1
	`, proposalID).Scan(&p.ID, &p.Title, &p.Description, &p.Proposer, &p.VotesFor, &p.VotesAgainst,
		&p.VotingDeadline, &p.Executed, &p.ProposalType, &p.TargetValue, &p.Active, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Proposal{}, false, nil
	}
	if err != nil {
		return models.Proposal{}, false, fmt.Errorf("failed to get proposal: %w", err)
	}
	return p, true, nil
}
