// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/govote/auth"
	"github.com/danielhkuo/govote/cliparse"
	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/models"
)

type VotingHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewVotingHandler(l *ledger.Ledger, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{ledger: l, cfg: cfg}
}

// CastVote handles POST /votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Hash IP for the audit trail; the raw address is never stored
	var ipHash *string
	if ip := middleware.ClientIP(r, h.cfg.TrustProxy); ip != "" {
		hashed := auth.HashIP(ip, h.cfg.CallerKeySalt)
		ipHash = &hashed
	}

	voter := middleware.CallerID(r.Context())
	rcpt, err := h.ledger.CastVote(r.Context(), voter, ledger.Ballot{
		CandidateID:      req.CandidateID,
		BaseWeight:       req.BaseWeight,
		VerificationHash: req.VerificationHash,
		IPHash:           ipHash,
	})
	if err != nil {
		ledgerError(w, "cast_vote", err)
		return
	}

	slog.Info("vote cast", "voter", voter, "round_id", rcpt.RoundID, "audit_id", rcpt.AuditID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		RoundID:          rcpt.RoundID,
		Weight:           rcpt.Weight,
		AuditID:          rcpt.AuditID,
		VerificationHash: rcpt.VerificationHash,
	})
}

// GetVoteRecord handles GET /rounds/{round}/votes/{voter}
func (h *VotingHandler) GetVoteRecord(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	rec, found, err := h.ledger.VoteRecord(r.Context(), r.PathValue("voter"), roundID)
	if err != nil {
		ledgerError(w, "vote_record", err)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.Lookup[models.VoteRecord]{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.Found(rec))
}

// GetStatus handles GET /status
func (h *VotingHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.ledger.VotingStatus(r.Context())
	if err != nil {
		ledgerError(w, "voting_status", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}

// ListAudit handles GET /audit?after=N&limit=M
func (h *VotingHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var after uint64
	if s := q.Get("after"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "after must be a non-negative integer")
			return
		}
		after = v
	}

	var limit int
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = v
	}

	entries, err := h.ledger.AuditEntries(r.Context(), after, limit)
	if err != nil {
		ledgerError(w, "audit_entries", err)
		return
	}

	next := after
	if n := len(entries); n > 0 {
		next = entries[n-1].ID
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuditListResponse{
		Entries:   entries,
		NextAfter: next,
	})
}

// GetAuditEntry handles GET /audit/{id}
func (h *VotingHandler) GetAuditEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}

	e, found, err := h.ledger.AuditEntry(r.Context(), id)
	if err != nil {
		ledgerError(w, "audit_entry", err)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.Lookup[models.AuditEntry]{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.Found(e))
}
