// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine applies the two ballot transitions: creating a campaign
and casting a vote.

# Transitions

Each transition runs inside Host.Atomic, one database transaction:

	program := engine.NewProgram(conn, db.TypeSQLite, programID, tokenProgramID, engine.SystemClock{})

	c, err := program.CreateCampaign(ctx, engine.CreateCampaignInput{...})
	c, err  = program.CastVote(ctx, engine.CastVoteInput{...})

# Casting a Vote

CastVote locks the campaign record, reads the clock once, then checks in
order:

 1. start_time <= now <= end_time (CampaignNotStarted, CampaignEnded)
 2. option index in range (InvalidOption)
 3. presented mint is the campaign's mint (InvalidTokenMint) and the
    holding is the voter's holding of it (ErrHoldingMismatch)
 4. holding balance >= 1 (InsufficientTokens)

It then burns one token through the token capability, authorized by the
voter, increments the tally and saves the record. The burn and the tally
update commit together. A burn error is returned as-is.

There is no record of who voted. A voter who holds two tokens can vote
twice; replay protection is the scarcity of the token.
*/
package engine
