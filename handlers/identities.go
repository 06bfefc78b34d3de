// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/govote/auth"
	"github.com/danielhkuo/govote/cliparse"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/models"
)

type IdentityHandler struct {
	cfg cliparse.Config
}

func NewIdentityHandler(cfg cliparse.Config) *IdentityHandler {
	return &IdentityHandler{cfg: cfg}
}

// CreateIdentity handles POST /identities. The returned key is the only
// credential for the identity and is not stored.
func (h *IdentityHandler) CreateIdentity(w http.ResponseWriter, r *http.Request) {
	id := auth.NewIdentity()
	middleware.JSONResponse(w, http.StatusCreated, models.IdentityResponse{
		Identity:  id,
		CallerKey: auth.GenerateCallerKey(id, h.cfg.CallerKeySalt),
	})
}
