// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"math"

	"github.com/ethereum/go-ethereum/common"
)

// Record capacity
const (
	MaxOptions   = 10
	MaxTitleLen  = 64
	MaxOptionLen = 32
)

// Lifecycle states, derived from the clock and never stored
const (
	StatusCreated = "created"
	StatusActive  = "active"
	StatusClosed  = "closed"
)

// Campaign is the durable record of one ballot
type Campaign struct {
	Address    common.Address
	Creator    common.Address
	Title      string
	Options    []string
	Votes      []uint64
	Mint       common.Address
	StartTime  int64
	EndTime    int64
	TotalVotes uint64
}

// OptionResult is the tally of one option
type OptionResult struct {
	Index uint8
	Label string
	Votes uint64
	Share float64
}

// New validates the creation parameters and returns a campaign with
// zeroed tallies. The address is left empty; the store assigns it.
func New(creator, mint common.Address, title string, options []string, startTime, endTime int64) (*Campaign, error) {
	if len(options) < 2 {
		return nil, ErrInvalidOptions
	}
	if startTime >= endTime {
		return nil, ErrInvalidTimestamps
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLen {
		return nil, ErrTitleTooLong
	}
	if len(options) > MaxOptions {
		return nil, ErrTooManyOptions
	}
	for _, label := range options {
		if label == "" {
			return nil, ErrEmptyOption
		}
		if len(label) > MaxOptionLen {
			return nil, ErrOptionTooLong
		}
	}

	return &Campaign{
		Creator:   creator,
		Title:     title,
		Options:   append([]string(nil), options...),
		Votes:     make([]uint64, len(options)),
		Mint:      mint,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// Status reports the lifecycle state at unix time now
func (c *Campaign) Status(now int64) string {
	switch {
	case now < c.StartTime:
		return StatusCreated
	case now > c.EndTime:
		return StatusClosed
	default:
		return StatusActive
	}
}

// CheckWindow fails unless start <= now <= end
func (c *Campaign) CheckWindow(now int64) error {
	if now < c.StartTime {
		return ErrCampaignNotStarted
	}
	if now > c.EndTime {
		return ErrCampaignEnded
	}
	return nil
}

// CheckOption fails unless index names an existing option
func (c *Campaign) CheckOption(index uint8) error {
	if int(index) >= len(c.Options) {
		return ErrInvalidOption
	}
	return nil
}

// RecordVote adds one vote to option index. Votes and TotalVotes move
// together or not at all.
func (c *Campaign) RecordVote(index uint8) error {
	if err := c.CheckOption(index); err != nil {
		return err
	}
	if c.Votes[index] == math.MaxUint64 || c.TotalVotes == math.MaxUint64 {
		return ErrTallyOverflow
	}
	c.Votes[index]++
	c.TotalVotes++
	return nil
}

// Results returns per-option tallies with their share of all votes
func (c *Campaign) Results() []OptionResult {
	results := make([]OptionResult, len(c.Options))
	for i, label := range c.Options {
		results[i] = OptionResult{
			Index: uint8(i),
			Label: label,
			Votes: c.Votes[i],
		}
		if c.TotalVotes > 0 {
			results[i].Share = float64(c.Votes[i]) / float64(c.TotalVotes)
		}
	}
	return results
}

// Leaders returns the indexes of the options with the most votes
func (c *Campaign) Leaders() []uint8 {
	if c.TotalVotes == 0 {
		return nil
	}
	var best uint64
	var leaders []uint8
	for i, v := range c.Votes {
		switch {
		case v > best:
			best = v
			leaders = []uint8{uint8(i)}
		case v == best:
			leaders = append(leaders, uint8(i))
		}
	}
	return leaders
}
