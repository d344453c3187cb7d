// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/burn-ballot/campaign"
	"github.com/danielhkuo/burn-ballot/derive"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/middleware"
	"github.com/danielhkuo/burn-ballot/token"
)

// statusFor maps a program failure to its HTTP status
func statusFor(err error) int {
	if ve, ok := campaign.AsVoteError(err); ok {
		switch ve {
		case campaign.ErrCampaignNotStarted, campaign.ErrCampaignEnded:
			return http.StatusConflict
		default:
			return http.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, campaign.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, campaign.ErrAccountInUse):
		return http.StatusConflict
	case errors.Is(err, campaign.ErrEmptyTitle),
		errors.Is(err, campaign.ErrTitleTooLong),
		errors.Is(err, campaign.ErrTooManyOptions),
		errors.Is(err, campaign.ErrEmptyOption),
		errors.Is(err, campaign.ErrOptionTooLong),
		errors.Is(err, derive.ErrMaxSeedLength):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrHoldingMismatch),
		errors.Is(err, campaign.ErrSeedsMismatch),
		errors.Is(err, token.ErrSupplyOverflow),
		errors.Is(err, campaign.ErrTallyOverflow),
		errors.Is(err, token.ErrMintNotFound),
		errors.Is(err, token.ErrAccountNotFound),
		errors.Is(err, token.ErrMintMismatch),
		errors.Is(err, token.ErrOwnerMismatch),
		errors.Is(err, token.ErrAccountFrozen),
		errors.Is(err, token.ErrInsufficientFunds),
		errors.Is(err, token.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Unexpected failures are logged and hidden
// behind fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)

	if ve, ok := campaign.AsVoteError(err); ok {
		middleware.CodedErrorResponse(w, status, ve.Code, ve.Name, ve.Msg)
		return
	}

	if status == http.StatusInternalServerError {
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, status, fallback)
		return
	}

	middleware.ErrorResponse(w, status, err.Error())
}
