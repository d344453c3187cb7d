// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/burn-ballot/cliparse"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/handlers"
	"github.com/danielhkuo/burn-ballot/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	program := engine.NewProgram(db, cfg.DatabaseType, cfg.ProgramID, cfg.TokenProgramID, engine.SystemClock{})
	return NewProgramRouter(program)
}

// NewProgramRouter serves an already wired program
func NewProgramRouter(program *engine.Program) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	campaignHandler := handlers.NewCampaignHandler(program)
	votingHandler := handlers.NewVotingHandler(program)
	resultsHandler := handlers.NewResultsHandler(program)
	tokenHandler := handlers.NewTokenHandler(program)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Campaigns
	mux.HandleFunc("POST /campaigns", middleware.WithLogging(middleware.RequireSigner(campaignHandler.CreateCampaign)))
	mux.HandleFunc("GET /campaigns", middleware.WithLogging(campaignHandler.ListCampaigns))
	mux.HandleFunc("GET /campaigns/derive", middleware.WithLogging(campaignHandler.DeriveAddress))
	mux.HandleFunc("GET /campaigns/{address}", middleware.WithLogging(campaignHandler.GetCampaign))

	// Voting (signed by the voter)
	mux.HandleFunc("POST /campaigns/{address}/votes", middleware.WithLogging(middleware.RequireSigner(votingHandler.CastVote)))

	// Results (public at every stage)
	mux.HandleFunc("GET /campaigns/{address}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Token balances
	mux.HandleFunc("GET /tokens/{mint}/holders/{owner}", middleware.WithLogging(tokenHandler.GetHolding))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("burn-ballot API v1"))
	})

	return mux
}
