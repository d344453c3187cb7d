// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/auth"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/middleware"
	"github.com/danielhkuo/burn-ballot/models"
)

type VotingHandler struct {
	program *engine.Program
}

func NewVotingHandler(program *engine.Program) *VotingHandler {
	return &VotingHandler{program: program}
}

// CastVote handles POST /campaigns/{address}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voter, ok := middleware.SignerFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Signed request required")
		return
	}

	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionIndex == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_index is required")
		return
	}

	mint, err := auth.ParseAddress(req.Mint)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mint must be a valid address")
		return
	}

	var holding common.Address
	if req.Holding != "" {
		holding, err = auth.ParseAddress(req.Holding)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "holding must be a valid address")
			return
		}
	}

	c, err := h.program.CastVote(r.Context(), engine.CastVoteInput{
		Campaign:    addr,
		Voter:       voter,
		Holding:     holding,
		Mint:        mint,
		OptionIndex: *req.OptionIndex,
	})
	if err != nil {
		writeError(w, err, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toCampaign(c, h.program.Now()))
}
