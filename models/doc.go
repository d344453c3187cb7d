// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateCampaignRequest: title, options, start_time, end_time, mint
  - CastVoteRequest: option_index, mint, holding (optional)

# Response Types

Types for JSON responses:

  - Campaign: the stored record plus its derived status
  - ListCampaignsResponse: campaigns
  - ResultsResponse: per-option tallies, shares and leaders
  - DeriveAddressResponse: address, creator, title
  - HoldingResponse: a voter's eligibility token balance
  - ErrorResponse: error, message, code, name

Addresses are 0x hex strings. Timestamps are unix seconds.

# Error Codes

Ballot failures carry a stable numeric code:

	6000 CampaignNotStarted
	6001 CampaignEnded
	6002 InvalidOption
	6003 InvalidOptions
	6004 InvalidTimestamps
	6005 InsufficientTokens
	6006 InvalidTokenMint
*/
package models
