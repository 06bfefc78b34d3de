// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/models"
)

type VoterHandler struct {
	ledger *ledger.Ledger
}

func NewVoterHandler(l *ledger.Ledger) *VoterHandler {
	return &VoterHandler{ledger: l}
}

// RegisterVoter handles POST /voters
func (h *VoterHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.ledger.RegisterVoter(r.Context(), middleware.CallerID(r.Context()), req.Category, req.StakeAmount); err != nil {
		ledgerError(w, "register_voter", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// GetVoter handles GET /voters/{voter}
func (h *VoterHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	reg, found, err := h.ledger.Voter(r.Context(), r.PathValue("voter"))
	if err != nil {
		ledgerError(w, "voter", err)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.Lookup[models.VoterRegistration]{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.Found(reg))
}

// GetEligibility handles GET /voters/{voter}/eligible
func (h *VoterHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	eligible, err := h.ledger.IsEligible(r.Context(), r.PathValue("voter"))
	if err != nil {
		ledgerError(w, "is_eligible", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"eligible": eligible})
}

// VerifyKYC handles POST /voters/{voter}/kyc
func (h *VoterHandler) VerifyKYC(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.VerifyKYC(r.Context(), middleware.CallerID(r.Context()), r.PathValue("voter")); err != nil {
		ledgerError(w, "verify_kyc", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delegate handles POST /rounds/{round}/delegation
func (h *VoterHandler) Delegate(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	var req models.DelegateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.ledger.Delegate(r.Context(), middleware.CallerID(r.Context()), req.Delegate, roundID); err != nil {
		ledgerError(w, "delegate", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RevokeDelegation handles DELETE /rounds/{round}/delegation
func (h *VoterHandler) RevokeDelegation(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	if err := h.ledger.RevokeDelegation(r.Context(), middleware.CallerID(r.Context()), roundID); err != nil {
		ledgerError(w, "revoke_delegation", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDelegation handles GET /rounds/{round}/delegations/{voter}
func (h *VoterHandler) GetDelegation(w http.ResponseWriter, r *http.Request) {
	roundID, ok := pathUint(w, r, "round")
	if !ok {
		return
	}

	d, found, err := h.ledger.Delegation(r.Context(), r.PathValue("voter"), roundID)
	if err != nil {
		ledgerError(w, "delegation", err)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.Lookup[models.Delegation]{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.Found(d))
}
