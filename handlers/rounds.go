// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/models"
)

type RoundHandler struct {
	ledger *ledger.Ledger
}

func NewRoundHandler(l *ledger.Ledger) *RoundHandler {
	return &RoundHandler{ledger: l}
}

// CreateRound handles POST /rounds
func (h *RoundHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoundRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	votingType := models.VotingType(req.VotingType)
	if votingType == "" {
		votingType = models.VotingSimple
	}

	id, err := h.ledger.CreateRound(r.Context(), middleware.CallerID(r.Context()), ledger.NewRound{
		Title:            req.Title,
		Description:      req.Description,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		MinParticipation: req.MinParticipation,
		VotingType:       votingType,
	})
	if err != nil {
		ledgerError(w, "create_round", err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRoundResponse{RoundID: id})
}

// GetRound handles GET /rounds/{round}
func (h *RoundHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	round, found, err := h.ledger.Round(r.Context(), roundID)
	if err != nil {
		ledgerError(w, "round", err)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.Lookup[models.Round]{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.Found(round))
}

// StartRound handles POST /rounds/{round}/start
func (h *RoundHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	if err := h.ledger.StartRound(r.Context(), middleware.CallerID(r.Context()), roundID); err != nil {
		ledgerError(w, "start_round", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddCandidate handles POST /rounds/{round}/candidates
func (h *RoundHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := h.ledger.AddCandidate(r.Context(), middleware.CallerID(r.Context()), roundID, ledger.NewCandidate{
		Name:          req.Name,
		Description:   req.Description,
		ImageHash:     req.ImageHash,
		ProfileURL:    req.ProfileURL,
		ManifestoHash: req.ManifestoHash,
		Category:      req.Category,
	})
	if err != nil {
		ledgerError(w, "add_candidate", err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{CandidateID: id})
}

// ListCandidates handles GET /rounds/{round}/candidates
func (h *RoundHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	ids, err := h.ledger.RoundCandidateIDs(r.Context(), roundID)
	if err != nil {
		ledgerError(w, "round_candidates", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateListResponse{
		RoundID:      roundID,
		CandidateIDs: ids,
	})
}

// GetCandidate handles GET /rounds/{round}/candidates/{id}
func (h *RoundHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}
	candidateID, ok := pathUint(w, r, "id")
	if !ok {
		return
	}

	c, found, err := h.ledger.Candidate(r.Context(), roundID, candidateID)
	if err != nil {
		ledgerError(w, "candidate", err)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.Lookup[models.Candidate]{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.Found(c))
}

// GetStats handles GET /rounds/{round}/stats
func (h *RoundHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	stats, found, err := h.ledger.ElectionStats(r.Context(), roundID)
	if err != nil {
		ledgerError(w, "election_stats", err)
		return
	}

	slog.Debug("stats computed", "round_id", roundID, "found", found)

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		ElectionStats: stats,
		Found:         found,
		Summary:       ledger.Summary(stats),
	})
}

// GetLeaderboard handles GET /rounds/{round}/leaderboard
func (h *RoundHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	items, err := h.ledger.Leaderboard(r.Context(), roundID)
	if err != nil {
		ledgerError(w, "leaderboard", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		RoundID: roundID,
		Items:   items,
	})
}
