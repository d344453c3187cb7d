// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/auth"
	"github.com/danielhkuo/burn-ballot/campaign"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/middleware"
	"github.com/danielhkuo/burn-ballot/models"
)

type CampaignHandler struct {
	program *engine.Program
}

func NewCampaignHandler(program *engine.Program) *CampaignHandler {
	return &CampaignHandler{program: program}
}

// CreateCampaign handles POST /campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	creator, ok := middleware.SignerFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Signed request required")
		return
	}

	var req models.CreateCampaignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	mint, err := auth.ParseAddress(req.Mint)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mint must be a valid address")
		return
	}

	c, err := h.program.CreateCampaign(r.Context(), engine.CreateCampaignInput{
		Creator:   creator,
		Mint:      mint,
		Title:     req.Title,
		Options:   req.Options,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(w, err, "Failed to create campaign")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, toCampaign(c, h.program.Now()))
}

// GetCampaign handles GET /campaigns/{address}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	c, err := h.program.Campaign(r.Context(), addr)
	if err != nil {
		writeError(w, err, "Failed to load campaign")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toCampaign(c, h.program.Now()))
}

// ListCampaigns handles GET /campaigns?creator=
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	var creator common.Address
	if s := r.URL.Query().Get("creator"); s != "" {
		var err error
		creator, err = auth.ParseAddress(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "creator must be a valid address")
			return
		}
	}

	list, err := h.program.ListCampaigns(r.Context(), creator)
	if err != nil {
		writeError(w, err, "Failed to list campaigns")
		return
	}

	now := h.program.Now()
	resp := models.ListCampaignsResponse{Campaigns: make([]models.Campaign, 0, len(list))}
	for _, c := range list {
		resp.Campaigns = append(resp.Campaigns, toCampaign(c, now))
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// DeriveAddress handles GET /campaigns/derive?creator=&title=
func (h *CampaignHandler) DeriveAddress(w http.ResponseWriter, r *http.Request) {
	creator, err := auth.ParseAddress(r.URL.Query().Get("creator"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator must be a valid address")
		return
	}
	title := r.URL.Query().Get("title")
	if title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	addr, err := h.program.CampaignAddress(creator, title)
	if err != nil {
		writeError(w, err, "Failed to derive address")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeriveAddressResponse{
		Address: addr.Hex(),
		Creator: creator.Hex(),
		Title:   title,
	})
}

// pathAddress parses the {address} path value, writing a 400 on failure
func pathAddress(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	addr, err := auth.ParseAddress(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be a valid address")
		return common.Address{}, false
	}
	return addr, true
}

func toCampaign(c *campaign.Campaign, now int64) models.Campaign {
	return models.Campaign{
		Address:    c.Address.Hex(),
		Creator:    c.Creator.Hex(),
		Title:      c.Title,
		Options:    c.Options,
		Votes:      c.Votes,
		Mint:       c.Mint.Hex(),
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		TotalVotes: c.TotalVotes,
		Status:     c.Status(now),
	}
}
