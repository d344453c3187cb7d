// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"errors"
	"fmt"
)

// VoteError is a typed transition failure with a stable code
type VoteError struct {
	Code int
	Name string
	Msg  string
}

func (e *VoteError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

// Codes start at 6000 and keep declaration order; clients match on them.
var (
	ErrCampaignNotStarted = &VoteError{6000, "CampaignNotStarted", "the campaign has not started yet"}
	ErrCampaignEnded      = &VoteError{6001, "CampaignEnded", "the campaign has already ended"}
	ErrInvalidOption      = &VoteError{6002, "InvalidOption", "invalid option"}
	ErrInvalidOptions     = &VoteError{6003, "InvalidOptions", "at least two options are required"}
	ErrInvalidTimestamps  = &VoteError{6004, "InvalidTimestamps", "invalid timestamps"}
	ErrInsufficientTokens = &VoteError{6005, "InsufficientTokens", "not enough tokens to vote"}
	ErrInvalidTokenMint   = &VoteError{6006, "InvalidTokenMint", "the token does not belong to the mint authorized for this campaign"}
)

// Capacity and storage failures
var (
	ErrEmptyTitle     = errors.New("title is required")
	ErrTitleTooLong   = fmt.Errorf("title exceeds %d bytes", MaxTitleLen)
	ErrTooManyOptions = fmt.Errorf("more than %d options", MaxOptions)
	ErrEmptyOption    = errors.New("option label is required")
	ErrOptionTooLong  = fmt.Errorf("option label exceeds %d bytes", MaxOptionLen)
	ErrTallyOverflow  = errors.New("tally overflow")

	ErrAccountInUse  = errors.New("campaign account already in use")
	ErrNotFound      = errors.New("campaign not found")
	ErrCorruptRecord = errors.New("corrupt campaign record")
	ErrSeedsMismatch = errors.New("campaign record does not live at its derived address")
)

// AsVoteError reports whether err is a typed transition failure
func AsVoteError(err error) (*VoteError, bool) {
	var ve *VoteError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
