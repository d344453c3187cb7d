// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the burn-ballot API server and
its operator commands.

burn-ballot runs token-gated ballots. Each campaign lives at an address
derived from its creator and title, accepts votes only inside its time
window, and counts a vote only by burning one eligibility token from the
voter's holding in the same transaction.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	PROGRAM_ID=0x... TOKEN_PROGRAM_ID=0x... DATABASE_URL=ballot.db burn-ballot serve

Or with flags:

	burn-ballot serve -p 3318 -d ballot.db -program-id 0x... -token-program-id 0x...

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - PROGRAM_ID (-program-id): address campaigns are derived under
  - TOKEN_PROGRAM_ID (-token-program-id): address token holdings are derived under

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Commands

	burn-ballot keygen                                   - new signing key
	burn-ballot derive --creator 0x... --title "Lunch"   - campaign address
	burn-ballot inspect 0x... [--raw]                    - stored campaign
	burn-ballot token create-mint --authority-key 0x...  - new eligibility mint
	burn-ballot token mint-to --mint 0x... --owner 0x... - credit tokens

# Architecture

  - engine: create_campaign and cast_vote transitions in one SQL transaction
  - campaign: record validation, fixed-size codec and store
  - token: SQL token ledger with burn
  - derive: deterministic address derivation
  - handlers: HTTP request handlers (campaigns, voting, results, tokens)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, signature verification, JSON helpers
  - models: Request/response types
  - auth: secp256k1 keys and request signatures
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
