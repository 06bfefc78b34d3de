// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/govote/models"
)

func TestCreateRound(t *testing.T) {
	f := newFixture(t)
	f.advance(t, 10)

	id, err := f.l.CreateRound(f.ctx, owner, NewRound{
		Title:            "Board election",
		Description:      "Annual",
		StartTime:        100,
		EndTime:          200,
		MinParticipation: 3,
		VotingType:       models.VotingWeighted,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	r, found, err := f.l.Round(f.ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Board election", r.Title)
	assert.Equal(t, uint64(100), r.StartTime)
	assert.Equal(t, uint64(200), r.EndTime)
	assert.Equal(t, uint64(3), r.MinParticipation)
	assert.Equal(t, models.VotingWeighted, r.VotingType)
	assert.False(t, r.Active)
	assert.False(t, r.Finalized)
	assert.Equal(t, uint64(10), r.CreatedAt)

	ids, err := f.l.RoundCandidateIDs(f.ctx, id)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCreateRound_Rejections(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		caller  string
		round   NewRound
		wantErr error
	}{
		{
			name:    "not owner",
			caller:  "mallory",
			round:   NewRound{StartTime: 1, EndTime: 2, VotingType: models.VotingSimple},
			wantErr: ErrNotOwner,
		},
		{
			name:    "malformed caller",
			caller:  "",
			round:   NewRound{StartTime: 1, EndTime: 2, VotingType: models.VotingSimple},
			wantErr: ErrInvalidIdentity,
		},
		{
			name:    "end equals start",
			caller:  owner,
			round:   NewRound{StartTime: 5, EndTime: 5, VotingType: models.VotingSimple},
			wantErr: ErrTimeRange,
		},
		{
			name:    "end before start",
			caller:  owner,
			round:   NewRound{StartTime: 5, EndTime: 4, VotingType: models.VotingSimple},
			wantErr: ErrTimeRange,
		},
		{
			name:    "unknown voting type",
			caller:  owner,
			round:   NewRound{StartTime: 1, EndTime: 2, VotingType: "approval"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.l.CreateRound(f.ctx, tt.caller, tt.round)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, found, err := f.l.Round(f.ctx, 1)
	require.NoError(t, err)
	assert.False(t, found, "rejected creations must not store a round")
}

func TestCreateRound_IDCollision(t *testing.T) {
	f := newFixture(t)
	round := NewRound{StartTime: 1, EndTime: 2, VotingType: models.VotingSimple}

	first, err := f.l.CreateRound(f.ctx, owner, round)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first)

	// The id derives from the current-round pointer, which has not moved
	_, err = f.l.CreateRound(f.ctx, owner, round)
	assert.ErrorIs(t, err, ErrRoundExists)

	f.advance(t, 1)
	require.NoError(t, f.l.StartRound(f.ctx, owner, first))

	second, err := f.l.CreateRound(f.ctx, owner, NewRound{StartTime: 10, EndTime: 20, VotingType: models.VotingSimple})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second)
}

func TestStartRound_Scenario(t *testing.T) {
	f := newFixture(t)

	id, err := f.l.CreateRound(f.ctx, owner, NewRound{
		Title:      "Scenario",
		StartTime:  100,
		EndTime:    200,
		VotingType: models.VotingSimple,
	})
	require.NoError(t, err)

	f.advance(t, 50)
	err = f.l.StartRound(f.ctx, owner, id)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.False(t, f.state(t).VotingActive)

	f.advance(t, 150)
	require.NoError(t, f.l.StartRound(f.ctx, owner, id))

	st := f.state(t)
	assert.Equal(t, id, st.CurrentRound)
	assert.True(t, st.VotingActive)
	assert.Equal(t, uint64(100), st.VotingStartTime)
	assert.Equal(t, uint64(200), st.VotingEndTime)

	r, _, err := f.l.Round(f.ctx, id)
	require.NoError(t, err)
	assert.True(t, r.Active)
}

func TestStartRound_Rejections(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.l.StartRound(f.ctx, owner, 42), ErrRoundNotFound)

	id, err := f.l.CreateRound(f.ctx, owner, NewRound{StartTime: 0, EndTime: 10, VotingType: models.VotingSimple})
	require.NoError(t, err)
	assert.ErrorIs(t, f.l.StartRound(f.ctx, "mallory", id), ErrNotOwner)
}

func TestStartRound_PreviousRoundKeepsFlag(t *testing.T) {
	f := newFixture(t)

	first := f.openRound(t, 0, 10)
	second := f.openRound(t, 5, 20)

	assert.Equal(t, second, f.state(t).CurrentRound)

	r, _, err := f.l.Round(f.ctx, first)
	require.NoError(t, err)
	assert.True(t, r.Active, "earlier rounds are not deactivated")
}

func TestRound_Absent(t *testing.T) {
	f := newFixture(t)

	r, found, err := f.l.Round(f.ctx, 9)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, models.Round{}, r)
}
