// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/models"
)

type ProposalHandler struct {
	ledger *ledger.Ledger
}

func NewProposalHandler(l *ledger.Ledger) *ProposalHandler {
	return &ProposalHandler{ledger: l}
}

// CreateProposal handles POST /proposals
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	id, err := h.ledger.CreateProposal(r.Context(), middleware.CallerID(r.Context()), ledger.NewProposal{
		Title:          req.Title,
		Description:    req.Description,
		ProposalType:   req.ProposalType,
		TargetValue:    req.TargetValue,
		VotingDeadline: req.VotingDeadline,
	})
	if err != nil {
		ledgerError(w, "create_proposal", err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProposalResponse{ProposalID: id})
}

// GetProposal handles GET /proposals/{id}
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}

	p, found, err := h.ledger.Proposal(r.Context(), id)
	if err != nil {
		ledgerError(w, "proposal", err)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.Lookup[models.Proposal]{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.Found(p))
}

// VoteOnProposal handles POST /proposals/{id}/votes
func (h *ProposalHandler) VoteOnProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}

	var req models.ProposalVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Support == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "support is required")
		return
	}

	weight, err := h.ledger.VoteOnProposal(r.Context(), middleware.CallerID(r.Context()), id, *req.Support)
	if err != nil {
		ledgerError(w, "vote_on_proposal", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalVoteResponse{ProposalID: id, Weight: weight})
}
