// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the burn-ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

NewProgramRouter serves a program built elsewhere, such as one with a
fixed clock in tests.

# Endpoints

Health:

	GET /health

Campaigns:

	POST /campaigns                   - Create campaign (signed)
	GET  /campaigns?creator=          - List campaigns
	GET  /campaigns/derive            - Derive address from creator and title
	GET  /campaigns/{address}         - Campaign record and status
	GET  /campaigns/{address}/results - Tallies, shares and leaders

Voting:

	POST /campaigns/{address}/votes - Burn one token and count one vote (signed)

Tokens:

	GET /tokens/{mint}/holders/{owner} - Holding address and balance

Signed routes require X-Signer and X-Signature headers; see package
middleware.
*/
package router
