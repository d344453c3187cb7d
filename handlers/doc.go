// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the burn-ballot API.

# Handler Types

Each handler is a struct over the ballot program:

  - CampaignHandler: Campaign creation, lookup, listing and address derivation
  - VotingHandler: Token-burning votes
  - ResultsHandler: Tallies and leaders
  - TokenHandler: Eligibility token balances

Handlers are created via constructor functions that accept *engine.Program:

	campaignHandler := handlers.NewCampaignHandler(program)

# Campaign Lifecycle

A campaign's status follows the program clock: created → active → closed.
It is never stored.

	POST /campaigns                    → CreateCampaign (signed by the creator)
	GET  /campaigns/derive             → DeriveAddress
	GET  /campaigns/{address}          → GetCampaign
	GET  /campaigns/{address}/results  → GetResults

The creator is the request signer and the campaign address is derived from
(creator, title), so one creator cannot reuse a title.

# Voting

	POST /campaigns/{address}/votes → CastVote (signed by the voter)

Each vote burns one token from the voter's holding of the campaign mint and
counts one vote in the same transaction.

# Errors

Typed ballot failures carry their stable code and name:

	{"error":"Conflict","message":"...","code":6000,"name":"CampaignNotStarted"}

Window failures map to 409, other ballot failures to 400, missing records
to 404 and token program failures to 422.
*/
package handlers
