// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/middleware"
	"github.com/danielhkuo/burn-ballot/models"
)

type ResultsHandler struct {
	program *engine.Program
}

func NewResultsHandler(program *engine.Program) *ResultsHandler {
	return &ResultsHandler{program: program}
}

// GetResults handles GET /campaigns/{address}/results
// Tallies are public at every stage; status tells whether they are final.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	c, err := h.program.Campaign(r.Context(), addr)
	if err != nil {
		writeError(w, err, "Failed to load campaign")
		return
	}

	results := c.Results()
	resp := models.ResultsResponse{
		Address:    c.Address.Hex(),
		Status:     c.Status(h.program.Now()),
		TotalVotes: c.TotalVotes,
		Results:    make([]models.OptionResult, len(results)),
		Leaders:    []int{},
	}
	for i, res := range results {
		resp.Results[i] = models.OptionResult{
			Index: res.Index,
			Label: res.Label,
			Votes: res.Votes,
			Share: res.Share,
		}
	}
	for _, idx := range c.Leaders() {
		resp.Leaders = append(resp.Leaders, int(idx))
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
