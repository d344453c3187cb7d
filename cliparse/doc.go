// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: database connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - ProgramID: address namespace of campaign accounts (required)
  - TokenProgramID: address namespace of token holdings (required)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-program-id       Campaign program address
	-token-program-id Token program address

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	PROGRAM_ID       → -program-id
	TOKEN_PROGRAM_ID → -token-program-id

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded by main before parsing.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is neither sqlite nor postgres
  - PROGRAM_ID or TOKEN_PROGRAM_ID is missing or not a non-zero address
  - PROGRAM_ID equals TOKEN_PROGRAM_ID

Changing PROGRAM_ID moves every campaign address; existing records are
no longer reachable under the new namespace.
*/
package cliparse
