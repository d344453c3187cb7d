// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package token is the token program the voting engine burns eligibility
tokens through.

The engine depends only on the Burner interface:

	err := burner.Burn(ctx, tx, token.BurnRequest{
		Mint:      mint,
		Account:   holding,
		Authority: voter,
		Amount:    1,
	})

Burn runs on the caller's transaction, so the destruction commits or
rolls back together with whatever else the caller wrote.

Ledger is the SQL implementation. CreateMint and MintTo exist for local
issuance (CLI and tests); how eligibility tokens reach voters in
production is decided outside this service.
*/
package token
