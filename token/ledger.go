// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/danielhkuo/burn-ballot/db"
	"github.com/danielhkuo/burn-ballot/derive"
)

// Ledger is the SQL-backed token program
type Ledger struct {
	dbType    string
	programID common.Address
}

var (
	_ Burner = (*Ledger)(nil)
	_ Reader = (*Ledger)(nil)
)

func NewLedger(dbType string, programID common.Address) *Ledger {
	return &Ledger{dbType: dbType, programID: programID}
}

// ProgramID is the namespace holding addresses are derived in
func (l *Ledger) ProgramID() common.Address {
	return l.programID
}

// HoldingAddress returns the associated holding of owner for mint
func (l *Ledger) HoldingAddress(owner, mint common.Address) (common.Address, error) {
	return derive.HoldingAddress(l.programID, owner, mint)
}

// CreateMint registers a new token type controlled by authority. The mint
// address is a fresh random key address.
func (l *Ledger) CreateMint(ctx context.Context, q db.Querier, authority common.Address, decimals uint8) (*Mint, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate mint address: %w", err)
	}
	mint := &Mint{
		Address:   crypto.PubkeyToAddress(key.PublicKey),
		Authority: authority,
		Decimals:  decimals,
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO token_mint (address, authority, decimals, supply)
		VALUES ($1, $2, $3, 0)
	`, mint.Address.Hex(), authority.Hex(), int(decimals))
	if err != nil {
		return nil, fmt.Errorf("failed to insert mint: %w", err)
	}

	slog.Info("mint created", "mint", mint.Address.Hex(), "authority", authority.Hex())
	return mint, nil
}

// MintTo credits amount units to owner's associated holding, creating the
// holding if needed
func (l *Ledger) MintTo(ctx context.Context, q db.Querier, mintAddr, owner, authority common.Address, amount uint64) (*Account, error) {
	if amount == 0 || amount > math.MaxInt64 {
		return nil, ErrInvalidAmount
	}

	mint, err := l.mint(ctx, q, mintAddr, true)
	if err != nil {
		return nil, err
	}
	if mint.Authority != authority {
		return nil, ErrMintAuthority
	}
	// Supply is the sum of all holdings, so bounding it bounds every balance
	if mint.Supply > math.MaxInt64-amount {
		return nil, ErrSupplyOverflow
	}

	holding, err := l.HoldingAddress(owner, mintAddr)
	if err != nil {
		return nil, err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO token_account (address, mint, owner, amount, frozen)
		VALUES ($1, $2, $3, 0, 0)
		ON CONFLICT (address) DO NOTHING
	`, holding.Hex(), mintAddr.Hex(), owner.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to open token account: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		UPDATE token_account SET amount = amount + $1 WHERE address = $2
	`, int64(amount), holding.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to credit token account: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		UPDATE token_mint SET supply = supply + $1 WHERE address = $2
	`, int64(amount), mintAddr.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to update supply: %w", err)
	}

	slog.Info("tokens minted", "mint", mintAddr.Hex(), "owner", owner.Hex(), "amount", amount)
	return l.account(ctx, q, holding, false)
}

// SetFrozen freezes or thaws a holding
func (l *Ledger) SetFrozen(ctx context.Context, q db.Querier, holding common.Address, frozen bool) error {
	flag := 0
	if frozen {
		flag = 1
	}
	res, err := q.ExecContext(ctx, `
		UPDATE token_account SET frozen = $1 WHERE address = $2
	`, flag, holding.Hex())
	if err != nil {
		return fmt.Errorf("failed to update token account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Burn destroys req.Amount units from req.Account. Only the owner of the
// holding may burn from it.
func (l *Ledger) Burn(ctx context.Context, q db.Querier, req BurnRequest) error {
	if req.Amount == 0 || req.Amount > math.MaxInt64 {
		return ErrInvalidAmount
	}

	acct, err := l.account(ctx, q, req.Account, true)
	if err != nil {
		return err
	}
	if acct.Mint != req.Mint {
		return ErrMintMismatch
	}
	if acct.Owner != req.Authority {
		return ErrOwnerMismatch
	}
	if acct.Frozen {
		return ErrAccountFrozen
	}
	if acct.Amount < req.Amount {
		return ErrInsufficientFunds
	}

	res, err := q.ExecContext(ctx, `
		UPDATE token_account SET amount = amount - $1
		WHERE address = $2 AND amount >= $1
	`, int64(req.Amount), req.Account.Hex())
	if err != nil {
		return fmt.Errorf("failed to debit token account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read debit result: %w", err)
	}
	if n == 0 {
		return ErrInsufficientFunds
	}

	_, err = q.ExecContext(ctx, `
		UPDATE token_mint SET supply = supply - $1 WHERE address = $2
	`, int64(req.Amount), req.Mint.Hex())
	if err != nil {
		return fmt.Errorf("failed to update supply: %w", err)
	}

	return nil
}

// Mint returns the token type at addr
func (l *Ledger) Mint(ctx context.Context, q db.Querier, addr common.Address) (*Mint, error) {
	return l.mint(ctx, q, addr, false)
}

// Account returns the holding at addr
func (l *Ledger) Account(ctx context.Context, q db.Querier, addr common.Address) (*Account, error) {
	return l.account(ctx, q, addr, false)
}

// Balance returns owner's balance of mint; a missing holding is zero
func (l *Ledger) Balance(ctx context.Context, q db.Querier, owner, mint common.Address) (uint64, error) {
	holding, err := l.HoldingAddress(owner, mint)
	if err != nil {
		return 0, err
	}
	acct, err := l.account(ctx, q, holding, false)
	if errors.Is(err, ErrAccountNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acct.Amount, nil
}

func (l *Ledger) mint(ctx context.Context, q db.Querier, addr common.Address, forUpdate bool) (*Mint, error) {
	query := `SELECT authority, decimals, supply FROM token_mint WHERE address = $1`
	if forUpdate {
		query += db.ForUpdate(l.dbType)
	}

	var authority string
	var decimals int
	var supply int64
	err := q.QueryRowContext(ctx, query, addr.Hex()).Scan(&authority, &decimals, &supply)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query mint: %w", err)
	}

	return &Mint{
		Address:   addr,
		Authority: common.HexToAddress(authority),
		Decimals:  uint8(decimals),
		Supply:    uint64(supply),
	}, nil
}

func (l *Ledger) account(ctx context.Context, q db.Querier, addr common.Address, forUpdate bool) (*Account, error) {
	query := `SELECT mint, owner, amount, frozen FROM token_account WHERE address = $1`
	if forUpdate {
		query += db.ForUpdate(l.dbType)
	}

	var mint, owner string
	var amount int64
	var frozen int
	err := q.QueryRowContext(ctx, query, addr.Hex()).Scan(&mint, &owner, &amount, &frozen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token account: %w", err)
	}

	return &Account{
		Address: addr,
		Mint:    common.HexToAddress(mint),
		Owner:   common.HexToAddress(owner),
		Amount:  uint64(amount),
		Frozen:  frozen != 0,
	}, nil
}
