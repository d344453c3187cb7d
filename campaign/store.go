// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/db"
)

// Store persists campaign records at their derived addresses
type Store struct {
	dbType string
}

func NewStore(dbType string) *Store {
	return &Store{dbType: dbType}
}

// Create allocates a new record for c at c.Address. It fails with
// ErrAccountInUse if any record already lives there.
func (s *Store) Create(ctx context.Context, q db.Querier, c *Campaign) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO campaign (address, data, space)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO NOTHING
	`, c.Address.Hex(), data, Space)
	if err != nil {
		return fmt.Errorf("failed to insert campaign: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}
	if n == 0 {
		return ErrAccountInUse
	}
	return nil
}

// Load reads the campaign at addr. With forUpdate the row stays locked
// until q's transaction ends.
func (s *Store) Load(ctx context.Context, q db.Querier, addr common.Address, forUpdate bool) (*Campaign, error) {
	query := `SELECT data FROM campaign WHERE address = $1`
	if forUpdate {
		query += db.ForUpdate(s.dbType)
	}

	var data []byte
	err := q.QueryRowContext(ctx, query, addr.Hex()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign: %w", err)
	}

	c, err := Decode(data)
	if err != nil {
		return nil, err
	}
	c.Address = addr
	return c, nil
}

// Save rewrites the record of an existing campaign in place
func (s *Store) Save(ctx context.Context, q db.Querier, c *Campaign) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx, `
		UPDATE campaign SET data = $1 WHERE address = $2
	`, data, c.Address.Hex())
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List decodes every stored campaign, oldest first. A zero creator
// matches all campaigns.
func (s *Store) List(ctx context.Context, q db.Querier, creator common.Address) ([]*Campaign, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT address, data FROM campaign ORDER BY created_at, address
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*Campaign{}
	for rows.Next() {
		var addr string
		var data []byte
		if err := rows.Scan(&addr, &data); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		c, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("campaign %s: %w", addr, err)
		}
		if creator != (common.Address{}) && c.Creator != creator {
			continue
		}
		c.Address = common.HexToAddress(addr)
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}

	return campaigns, nil
}
