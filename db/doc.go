// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(db.TypeSQLite, "file:ballot.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

sqlite connections are opened with BEGIN IMMEDIATE transactions and a
single connection, so every transition holds the write lock for its whole
duration. Postgres transitions lock the rows they touch with SELECT ... FOR
UPDATE (see ForUpdate).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - campaign: fixed-size campaign records keyed by derived address
  - token_mint: eligibility token types
  - token_account: token holdings per (mint, owner)

campaign.data is always exactly campaign.space bytes; the CHECK constraint
rejects any write that would grow or shrink a record.
*/
package db
