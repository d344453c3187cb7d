// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/burn-ballot/db"
)

// Host applies transitions as indivisible units
type Host struct {
	db *sql.DB
}

func NewHost(conn *sql.DB) *Host {
	return &Host{db: conn}
}

// Atomic runs fn inside one transaction. Every effect fn writes through q
// commits together, or none do if fn or the commit fails.
func (h *Host) Atomic(ctx context.Context, fn func(q db.Querier) error) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DB exposes the connection for read-only queries outside a transition
func (h *Host) DB() *sql.DB {
	return h.db
}
