// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"math"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	creator = common.HexToAddress("0x1111111111111111111111111111111111111111")
	mint    = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestNew(t *testing.T) {
	tooMany := make([]string, MaxOptions+1)
	for i := range tooMany {
		tooMany[i] = "x"
	}

	tests := []struct {
		name    string
		title   string
		options []string
		start   int64
		end     int64
		wantErr error
	}{
		{"valid", "Lunch", []string{"A", "B"}, 100, 200, nil},
		{"max sizes", strings.Repeat("t", MaxTitleLen), []string{strings.Repeat("o", MaxOptionLen), "B"}, 0, 1, nil},
		{"negative times", "Past", []string{"A", "B"}, -200, -100, nil},
		{"no options", "Lunch", nil, 100, 200, ErrInvalidOptions},
		{"one option", "Lunch", []string{"A"}, 100, 200, ErrInvalidOptions},
		{"start equals end", "Lunch", []string{"A", "B"}, 100, 100, ErrInvalidTimestamps},
		{"start after end", "Lunch", []string{"A", "B"}, 200, 100, ErrInvalidTimestamps},
		{"options before timestamps", "Lunch", []string{"A"}, 200, 100, ErrInvalidOptions},
		{"empty title", "", []string{"A", "B"}, 100, 200, ErrEmptyTitle},
		{"title too long", strings.Repeat("t", MaxTitleLen+1), []string{"A", "B"}, 100, 200, ErrTitleTooLong},
		{"too many options", "Lunch", tooMany, 100, 200, ErrTooManyOptions},
		{"empty label", "Lunch", []string{"A", ""}, 100, 200, ErrEmptyOption},
		{"label too long", "Lunch", []string{"A", strings.Repeat("o", MaxOptionLen+1)}, 100, 200, ErrOptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(creator, mint, tt.title, tt.options, tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.title, c.Title)
			assert.Equal(t, tt.options, c.Options)
			assert.Len(t, c.Votes, len(tt.options))
			assert.Zero(t, c.TotalVotes)
			assert.Equal(t, creator, c.Creator)
			assert.Equal(t, mint, c.Mint)
		})
	}
}

func TestNewCopiesOptions(t *testing.T) {
	options := []string{"A", "B"}
	c, err := New(creator, mint, "Lunch", options, 100, 200)
	require.NoError(t, err)

	options[0] = "changed"
	assert.Equal(t, "A", c.Options[0])
}

func TestStatusAndWindow(t *testing.T) {
	c, err := New(creator, mint, "Lunch", []string{"A", "B"}, 100, 200)
	require.NoError(t, err)

	tests := []struct {
		now     int64
		status  string
		wantErr error
	}{
		{50, StatusCreated, ErrCampaignNotStarted},
		{99, StatusCreated, ErrCampaignNotStarted},
		{100, StatusActive, nil},
		{150, StatusActive, nil},
		{200, StatusActive, nil},
		{201, StatusClosed, ErrCampaignEnded},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, c.Status(tt.now), "status at %d", tt.now)
		if tt.wantErr == nil {
			assert.NoError(t, c.CheckWindow(tt.now), "window at %d", tt.now)
		} else {
			assert.ErrorIs(t, c.CheckWindow(tt.now), tt.wantErr, "window at %d", tt.now)
		}
	}
}

func TestRecordVote(t *testing.T) {
	c, err := New(creator, mint, "Lunch", []string{"A", "B", "C"}, 100, 200)
	require.NoError(t, err)

	require.NoError(t, c.RecordVote(1))
	require.NoError(t, c.RecordVote(1))
	require.NoError(t, c.RecordVote(2))

	assert.Equal(t, []uint64{0, 2, 1}, c.Votes)
	assert.Equal(t, uint64(3), c.TotalVotes)

	assert.ErrorIs(t, c.RecordVote(3), ErrInvalidOption)
	assert.ErrorIs(t, c.RecordVote(255), ErrInvalidOption)
	assert.Equal(t, uint64(3), c.TotalVotes)
}

func TestRecordVoteOverflow(t *testing.T) {
	c, err := New(creator, mint, "Lunch", []string{"A", "B"}, 100, 200)
	require.NoError(t, err)

	c.Votes[0] = math.MaxUint64
	c.TotalVotes = math.MaxUint64

	assert.ErrorIs(t, c.RecordVote(0), ErrTallyOverflow)
	assert.ErrorIs(t, c.RecordVote(1), ErrTallyOverflow)
	assert.Equal(t, uint64(0), c.Votes[1])
}

func TestResultsAndLeaders(t *testing.T) {
	c, err := New(creator, mint, "Lunch", []string{"A", "B", "C"}, 100, 200)
	require.NoError(t, err)

	assert.Nil(t, c.Leaders())
	for _, r := range c.Results() {
		assert.Zero(t, r.Share)
	}

	for _, idx := range []uint8{0, 2, 2, 0} {
		require.NoError(t, c.RecordVote(idx))
	}

	results := c.Results()
	require.Len(t, results, 3)
	assert.Equal(t, OptionResult{Index: 0, Label: "A", Votes: 2, Share: 0.5}, results[0])
	assert.Equal(t, OptionResult{Index: 1, Label: "B", Votes: 0, Share: 0}, results[1])
	assert.Equal(t, []uint8{0, 2}, c.Leaders())

	require.NoError(t, c.RecordVote(2))
	assert.Equal(t, []uint8{2}, c.Leaders())
}

func TestVoteErrorCodes(t *testing.T) {
	codes := []struct {
		err  *VoteError
		code int
		name string
	}{
		{ErrCampaignNotStarted, 6000, "CampaignNotStarted"},
		{ErrCampaignEnded, 6001, "CampaignEnded"},
		{ErrInvalidOption, 6002, "InvalidOption"},
		{ErrInvalidOptions, 6003, "InvalidOptions"},
		{ErrInvalidTimestamps, 6004, "InvalidTimestamps"},
		{ErrInsufficientTokens, 6005, "InsufficientTokens"},
		{ErrInvalidTokenMint, 6006, "InvalidTokenMint"},
	}

	for _, tt := range codes {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.Equal(t, tt.name, tt.err.Name)

		ve, ok := AsVoteError(tt.err)
		require.True(t, ok)
		assert.Same(t, tt.err, ve)
	}

	_, ok := AsVoteError(ErrNotFound)
	assert.False(t, ok)
	assert.Contains(t, ErrCampaignEnded.Error(), "CampaignEnded (6001)")
}
