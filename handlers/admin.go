// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/models"
)

type AdminHandler struct {
	ledger *ledger.Ledger
	clock  ledger.Clock
}

func NewAdminHandler(l *ledger.Ledger, clock ledger.Clock) *AdminHandler {
	return &AdminHandler{ledger: l, clock: clock}
}

// Pause handles POST /admin/pause
func (h *AdminHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.EmergencyPause(r.Context(), middleware.CallerID(r.Context())); err != nil {
		ledgerError(w, "emergency_pause", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateConfig handles PUT /admin/config
func (h *AdminHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.RequireRegistration == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "require_registration is required")
		return
	}

	err := h.ledger.UpdateConfig(r.Context(), middleware.CallerID(r.Context()), ledger.ConfigUpdate{
		MinVoteThreshold:      req.MinVoteThreshold,
		MaxCandidatesPerRound: req.MaxCandidatesPerRound,
		RequireRegistration:   *req.RequireRegistration,
	})
	if err != nil {
		ledgerError(w, "update_config", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetEmergencyAdmin handles PUT /admin/emergency-admin
func (h *AdminHandler) SetEmergencyAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.SetEmergencyAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.ledger.SetEmergencyAdmin(r.Context(), middleware.CallerID(r.Context()), req.Admin); err != nil {
		ledgerError(w, "set_emergency_admin", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetClock handles GET /clock
func (h *AdminHandler) GetClock(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ClockResponse{Height: h.clock.Height()})
}

// AdvanceClock handles POST /admin/clock. Only a manual clock can be moved,
// and only by the owner.
func (h *AdminHandler) AdvanceClock(w http.ResponseWriter, r *http.Request) {
	manual, ok := h.clock.(*ledger.ManualClock)
	if !ok {
		middleware.ErrorResponse(w, http.StatusConflict, "clock is not manual")
		return
	}

	var req models.AdvanceClockRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	status, err := h.ledger.VotingStatus(r.Context())
	if err != nil {
		ledgerError(w, "voting_status", err)
		return
	}
	if middleware.CallerID(r.Context()) != status.Owner {
		middleware.ErrorResponse(w, http.StatusForbidden, ledger.ErrNotOwner.Error())
		return
	}

	if err := manual.Advance(req.Height); err != nil {
		if errors.Is(err, ledger.ErrClockRegression) {
			middleware.ErrorResponse(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, ledger.ErrClockRange) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to advance clock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	slog.Info("clock advanced", "height", manual.Height())

	middleware.JSONResponse(w, http.StatusOK, models.ClockResponse{Height: manual.Height()})
}
