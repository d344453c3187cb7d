// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/db"
)

var (
	ErrMintNotFound      = errors.New("mint not found")
	ErrAccountNotFound   = errors.New("token account not found")
	ErrMintMismatch      = errors.New("token account does not belong to mint")
	ErrOwnerMismatch     = errors.New("authority does not own token account")
	ErrMintAuthority     = errors.New("authority may not mint this token")
	ErrAccountFrozen     = errors.New("token account is frozen")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSupplyOverflow    = errors.New("mint would exceed maximum supply")
)

// Mint is a token type
type Mint struct {
	Address   common.Address
	Authority common.Address
	Decimals  uint8
	Supply    uint64
}

// Account is one owner's holding of one mint
type Account struct {
	Address common.Address
	Mint    common.Address
	Owner   common.Address
	Amount  uint64
	Frozen  bool
}

// BurnRequest destroys Amount units held in Account, authorized by Authority
type BurnRequest struct {
	Mint      common.Address
	Account   common.Address
	Authority common.Address
	Amount    uint64
}

// Burner destroys tokens as part of the caller's transaction. Either the
// burn is applied to q or an error is returned and nothing changed.
type Burner interface {
	Burn(ctx context.Context, q db.Querier, req BurnRequest) error
}

// Reader looks up mints and holdings
type Reader interface {
	Mint(ctx context.Context, q db.Querier, addr common.Address) (*Mint, error)
	Account(ctx context.Context, q db.Querier, addr common.Address) (*Account, error)
}
