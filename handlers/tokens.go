// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/burn-ballot/auth"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/middleware"
	"github.com/danielhkuo/burn-ballot/models"
	"github.com/danielhkuo/burn-ballot/token"
)

type TokenHandler struct {
	program *engine.Program
}

func NewTokenHandler(program *engine.Program) *TokenHandler {
	return &TokenHandler{program: program}
}

// GetHolding handles GET /tokens/{mint}/holders/{owner}
// A holding that was never opened reports a zero balance.
func (h *TokenHandler) GetHolding(w http.ResponseWriter, r *http.Request) {
	mint, err := auth.ParseAddress(r.PathValue("mint"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mint must be a valid address")
		return
	}
	owner, err := auth.ParseAddress(r.PathValue("owner"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner must be a valid address")
		return
	}

	if _, err := h.program.Tokens.Mint(r.Context(), h.program.Host.DB(), mint); err != nil {
		if errors.Is(err, token.ErrMintNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Mint not found")
			return
		}
		writeError(w, err, "Failed to load mint")
		return
	}

	holding, err := h.program.Tokens.HoldingAddress(owner, mint)
	if err != nil {
		writeError(w, err, "Failed to derive holding")
		return
	}

	resp := models.HoldingResponse{
		Mint:    mint.Hex(),
		Owner:   owner.Hex(),
		Holding: holding.Hex(),
	}

	acct, err := h.program.Tokens.Account(r.Context(), h.program.Host.DB(), holding)
	switch {
	case errors.Is(err, token.ErrAccountNotFound):
	case err != nil:
		writeError(w, err, "Failed to load holding")
		return
	default:
		resp.Amount = acct.Amount
		resp.Frozen = acct.Frozen
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
