// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Unregistered(t *testing.T) {
	var m *Metrics
	m.observeOperation("cast_vote", nil)
	m.observeVote(3)
	m.observeProposalVote(true)

	m = &Metrics{}
	m.Register(nil)
	m.observeOperation("cast_vote", ErrAlreadyVoted)
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := &Metrics{}
	m.Register(reg)
	// Registering again must not panic on duplicate collectors
	m.Register(reg)

	m.observeOperation("cast_vote", nil)
	m.observeOperation("cast_vote", ErrAlreadyVoted)
	m.observeVote(7)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("cast_vote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("cast_vote", "already_done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.votesCast))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.voteWeight))
}

func TestMetrics_LedgerOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := &Metrics{}
	m.Register(reg)

	f := newFixture(t)
	f.l.metrics = m

	roundID := f.openRound(t, 0, 100)
	c := f.addCandidate(t, roundID, "A")
	f.eligibleVoter(t, "voter", 3000)

	_, err := f.l.CastVote(f.ctx, "voter", Ballot{CandidateID: c})
	require.NoError(t, err)
	_, err = f.l.CastVote(f.ctx, "voter", Ballot{CandidateID: c})
	require.ErrorIs(t, err, ErrAlreadyVoted)
	_, err = f.l.CreateRound(f.ctx, "mallory", NewRound{StartTime: 0, EndTime: 1, VotingType: "simple"})
	require.ErrorIs(t, err, ErrNotOwner)

	id, err := f.l.CreateProposal(f.ctx, "voter", NewProposal{Title: "P", VotingDeadline: 100})
	require.NoError(t, err)
	_, err = f.l.VoteOnProposal(f.ctx, "voter", id, false)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("cast_vote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("cast_vote", "already_done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("create_round", "unauthorized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.votesCast))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.voteWeight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.proposalVotes.WithLabelValues("against")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.proposalVotes.WithLabelValues("for")))
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrNotInitialized, "error"},
		{ErrNotAdmin, "unauthorized"},
		{ErrVoterNotFound, "not_found"},
		{ErrAlreadyRegistered, "already_done"},
		{ErrNotStarted, "invalid_state"},
		{ErrSelfDelegation, "validation"},
		{newError(ErrInsufficientStake, "stake"), "rejected"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resultLabel(tt.err))
	}
}
