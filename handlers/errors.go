// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
)

// statusFor maps a ledger rejection kind to an HTTP status. Zero means the
// error is not a rejection.
func statusFor(err error) int {
	switch ledger.KindOf(err) {
	case ledger.ErrUnauthorized:
		return http.StatusForbidden
	case ledger.ErrNotFound:
		return http.StatusNotFound
	case ledger.ErrAlreadyDone, ledger.ErrInvalidState:
		return http.StatusConflict
	case ledger.ErrValidation:
		return http.StatusBadRequest
	case ledger.ErrInsufficientStake:
		return http.StatusUnprocessableEntity
	default:
		return 0
	}
}

// ledgerError writes the response for a failed ledger call.
func ledgerError(w http.ResponseWriter, op string, err error) {
	if status := statusFor(err); status != 0 {
		middleware.ErrorResponse(w, status, err.Error())
		return
	}
	slog.Error("ledger call failed", "operation", op, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
}

// pathUint parses a numeric path parameter, writing 400 on failure.
func pathUint(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	v, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
