// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package derive computes deterministic account addresses.

Every account the service stores lives at an address that is a pure
function of its owning program and a list of seeds:

	addr = keccak256(0xff ‖ program ‖ keccak256(len(s1) ‖ s1 ‖ len(s2) ‖ s2 …))[12:]

No lookup index is needed: anyone who knows the seeds can compute where
the record lives.

# Campaigns

	addr, err := derive.CampaignAddress(programID, creator, "Board election")

Seeds are "campaign", the creator address and the title bytes. A creator
can hold at most one campaign per title.

# Token Holdings

	holding, err := derive.HoldingAddress(tokenProgramID, owner, mint)

# Limits

Seeds longer than MaxSeedLen bytes or more than MaxSeeds seeds fail with
ErrMaxSeedLength and ErrMaxSeeds.
*/
package derive
