// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/govote/models"
)

// ElectionStats aggregates a round. Totals are recomputed from the candidate
// table over the round's list on every call. An unknown round yields zero
// stats and found == false.
func (l *Ledger) ElectionStats(ctx context.Context, roundID uint64) (models.ElectionStats, bool, error) {
	stats := models.ElectionStats{RoundID: roundID}
	var found bool
	err := l.view(ctx, func(tx *sql.Tx) error {
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}

		r, ok, err := getRound(ctx, tx, roundID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		found = true
		stats.Round = &r
		stats.MinParticipation = r.MinParticipation

		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*), COALESCE(SUM(c.vote_count), 0), COALESCE(SUM(c.weighted_vote_count), 0)
			FROM round_candidate rc
			JOIN candidate c ON c.id = rc.candidate_id AND c.round_id = rc.round_id
			WHERE rc.round_id = $1
		`, roundID).Scan(&stats.TotalCandidates, &stats.TotalVotes, &stats.TotalWeightedVotes)
		if err != nil {
			return fmt.Errorf("failed to aggregate round: %w", err)
		}

		stats.ParticipationMet = stats.TotalVotes >= r.MinParticipation &&
			stats.TotalVotes >= st.MinVoteThreshold
		return nil
	})
	if err != nil {
		return models.ElectionStats{}, false, err
	}
	return stats, found, nil
}

// VotingStatus returns the global state together with the current height.
func (l *Ledger) VotingStatus(ctx context.Context) (models.VotingStatus, error) {
	var status models.VotingStatus
	err := l.view(ctx, func(tx *sql.Tx) error {
		st, err := loadState(ctx, tx)
		if err != nil {
			return err
		}
		height := l.clock.Height()
		status = models.VotingStatus{
			GovernanceState: st,
			Height:          height,
			Open:            st.VotingActive && height >= st.VotingStartTime && height <= st.VotingEndTime,
		}
		return nil
	})
	return status, err
}

// Leaderboard ranks a round's candidates by weighted votes, highest first,
// breaking ties by ascending candidate id.
func (l *Ledger) Leaderboard(ctx context.Context, roundID uint64) ([]models.LeaderboardItem, error) {
	items := []models.LeaderboardItem{}
	if !storable(roundID) {
		return items, nil
	}
	err := l.view(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT c.id, c.name, c.vote_count, c.weighted_vote_count
			FROM round_candidate rc
			JOIN candidate c ON c.id = rc.candidate_id AND c.round_id = rc.round_id
			WHERE rc.round_id = $1
		`, roundID)
		if err != nil {
			return fmt.Errorf("failed to query leaderboard: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var item models.LeaderboardItem
			if err := rows.Scan(&item.CandidateID, &item.Name, &item.VoteCount, &item.WeightedVoteCount); err != nil {
				return fmt.Errorf("failed to scan leaderboard row: %w", err)
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].WeightedVoteCount != items[j].WeightedVoteCount {
			return items[i].WeightedVoteCount > items[j].WeightedVoteCount
		}
		return items[i].CandidateID < items[j].CandidateID
	})
	for i := range items {
		items[i].Rank = i + 1
	}
	return items, nil
}

// Summary renders stats as a single human-readable line.
func Summary(stats models.ElectionStats) string {
	if stats.Round == nil {
		return fmt.Sprintf("round %d: no such round", stats.RoundID)
	}
	met := "not met"
	if stats.ParticipationMet {
		met = "met"
	}
	return fmt.Sprintf("round %d %q: %s votes (%s weighted) across %s candidates, participation %s",
		stats.RoundID,
		stats.Round.Title,
		humanize.Comma(int64(stats.TotalVotes)),
		humanize.Comma(int64(stats.TotalWeightedVotes)),
		humanize.Comma(int64(stats.TotalCandidates)),
		met,
	)
}
