// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/campaign"
	"github.com/danielhkuo/burn-ballot/db"
	"github.com/danielhkuo/burn-ballot/derive"
	"github.com/danielhkuo/burn-ballot/token"
)

// ErrHoldingMismatch means the presented holding is not the voter's
// associated holding of the presented mint
var ErrHoldingMismatch = errors.New("token account is not the voter's holding for this mint")

// Tokens is the token capability the program needs
type Tokens interface {
	token.Burner
	token.Reader
	HoldingAddress(owner, mint common.Address) (common.Address, error)
}

// Program processes create_campaign and cast_vote transitions
type Program struct {
	Host      *Host
	Campaigns *campaign.Store
	Tokens    Tokens
	Clock     Clock
	ProgramID common.Address
}

// NewProgram wires a program over conn using the SQL token ledger
func NewProgram(conn *sql.DB, dbType string, programID, tokenProgramID common.Address, clock Clock) *Program {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Program{
		Host:      NewHost(conn),
		Campaigns: campaign.NewStore(dbType),
		Tokens:    token.NewLedger(dbType, tokenProgramID),
		Clock:     clock,
		ProgramID: programID,
	}
}

// CreateCampaignInput is signed by Creator
type CreateCampaignInput struct {
	Creator   common.Address
	Mint      common.Address
	Title     string
	Options   []string
	StartTime int64
	EndTime   int64
}

// CastVoteInput is signed by Voter. A zero Holding means the voter's
// associated holding of Mint.
type CastVoteInput struct {
	Campaign    common.Address
	Voter       common.Address
	Holding     common.Address
	Mint        common.Address
	OptionIndex uint8
}

// CampaignAddress derives where creator's campaign titled title lives
func (p *Program) CampaignAddress(creator common.Address, title string) (common.Address, error) {
	return derive.CampaignAddress(p.ProgramID, creator, title)
}

// CreateCampaign validates in and allocates a new campaign record at the
// address derived from (creator, title)
func (p *Program) CreateCampaign(ctx context.Context, in CreateCampaignInput) (*campaign.Campaign, error) {
	c, err := campaign.New(in.Creator, in.Mint, in.Title, in.Options, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	c.Address, err = p.CampaignAddress(in.Creator, in.Title)
	if err != nil {
		return nil, err
	}

	err = p.Host.Atomic(ctx, func(q db.Querier) error {
		if _, err := p.Tokens.Mint(ctx, q, in.Mint); err != nil {
			return err
		}
		return p.Campaigns.Create(ctx, q, c)
	})
	if err != nil {
		slog.Warn("campaign creation rejected",
			"creator", in.Creator.Hex(),
			"title", in.Title,
			"error", err,
		)
		return nil, err
	}

	slog.Info("campaign created",
		"campaign", c.Address.Hex(),
		"creator", c.Creator.Hex(),
		"options", len(c.Options),
		"start_time", c.StartTime,
		"end_time", c.EndTime,
	)
	return c, nil
}

// CastVote burns one eligibility token from the voter's holding and adds
// one vote to the chosen option, as a single atomic unit. Errors from the
// token capability are returned unchanged.
func (p *Program) CastVote(ctx context.Context, in CastVoteInput) (*campaign.Campaign, error) {
	var updated *campaign.Campaign

	err := p.Host.Atomic(ctx, func(q db.Querier) error {
		c, err := p.Campaigns.Load(ctx, q, in.Campaign, true)
		if err != nil {
			return err
		}
		want, err := p.CampaignAddress(c.Creator, c.Title)
		if err != nil {
			return err
		}
		if want != in.Campaign {
			return campaign.ErrSeedsMismatch
		}
		now := p.Clock.Now().Unix()

		if err := c.CheckWindow(now); err != nil {
			return err
		}
		if err := c.CheckOption(in.OptionIndex); err != nil {
			return err
		}
		if in.Mint != c.Mint {
			return campaign.ErrInvalidTokenMint
		}

		holding, err := p.Tokens.HoldingAddress(in.Voter, in.Mint)
		if err != nil {
			return err
		}
		if in.Holding != (common.Address{}) && in.Holding != holding {
			return ErrHoldingMismatch
		}

		acct, err := p.Tokens.Account(ctx, q, holding)
		if errors.Is(err, token.ErrAccountNotFound) {
			return campaign.ErrInsufficientTokens
		}
		if err != nil {
			return err
		}
		if acct.Amount < 1 {
			return campaign.ErrInsufficientTokens
		}

		err = p.Tokens.Burn(ctx, q, token.BurnRequest{
			Mint:      in.Mint,
			Account:   holding,
			Authority: in.Voter,
			Amount:    1,
		})
		if err != nil {
			return err
		}

		if err := c.RecordVote(in.OptionIndex); err != nil {
			return err
		}
		if err := p.Campaigns.Save(ctx, q, c); err != nil {
			return err
		}

		updated = c
		return nil
	})
	if err != nil {
		slog.Warn("vote rejected",
			"campaign", in.Campaign.Hex(),
			"voter", in.Voter.Hex(),
			"option", in.OptionIndex,
			"error", err,
		)
		return nil, err
	}

	slog.Info("vote cast",
		"campaign", updated.Address.Hex(),
		"option", in.OptionIndex,
		"total_votes", updated.TotalVotes,
	)
	return updated, nil
}

// Campaign reads a campaign outside any transition
func (p *Program) Campaign(ctx context.Context, addr common.Address) (*campaign.Campaign, error) {
	return p.Campaigns.Load(ctx, p.Host.DB(), addr, false)
}

// ListCampaigns lists stored campaigns, optionally filtered by creator
func (p *Program) ListCampaigns(ctx context.Context, creator common.Address) ([]*campaign.Campaign, error) {
	return p.Campaigns.List(ctx, p.Host.DB(), creator)
}

// Now reads the program clock as unix seconds
func (p *Program) Now() int64 {
	return p.Clock.Now().Unix()
}
