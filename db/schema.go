// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the database of the given type and verifies the connection
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
		url = sqliteDSN(url)
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == TypeSQLite {
		// sqlite has a single writer; one connection keeps transitions serial
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// sqliteDSN adds the pragmas every connection needs
func sqliteDSN(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

// ForUpdate returns the row-locking suffix for a SELECT inside a transaction.
// sqlite locks the whole database on BEGIN IMMEDIATE so it needs none.
func ForUpdate(dbType string) string {
	if dbType == TypePostgres {
		return " FOR UPDATE"
	}
	return ""
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Campaign accounts: one fixed-size record per (creator, title) address
CREATE TABLE IF NOT EXISTS campaign (
    address TEXT PRIMARY KEY,
    data BYTEA NOT NULL,
    space INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (length(data) = space)
);

-- Eligibility token mints
CREATE TABLE IF NOT EXISTS token_mint (
    address TEXT PRIMARY KEY,
    authority TEXT NOT NULL,
    decimals INTEGER NOT NULL DEFAULT 0,
    supply BIGINT NOT NULL DEFAULT 0 CHECK (supply >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Token holdings, one per (mint, owner)
CREATE TABLE IF NOT EXISTS token_account (
    address TEXT PRIMARY KEY,
    mint TEXT NOT NULL REFERENCES token_mint(address) ON DELETE CASCADE,
    owner TEXT NOT NULL,
    amount BIGINT NOT NULL DEFAULT 0 CHECK (amount >= 0),
    frozen INTEGER NOT NULL DEFAULT 0,
    UNIQUE (mint, owner)
);

CREATE INDEX IF NOT EXISTS idx_token_account_owner ON token_account(owner);
`
