// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package derive

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

const (
	// MaxSeedLen is the longest single seed accepted by Address
	MaxSeedLen = 64
	// MaxSeeds is the largest number of seeds accepted by Address
	MaxSeeds = 16
)

var (
	ErrMaxSeedLength = errors.New("seed exceeds maximum length")
	ErrMaxSeeds      = errors.New("too many seeds")
	ErrNoSeeds       = errors.New("at least one seed is required")
)

// CampaignSeed prefixes every campaign address derivation
var CampaignSeed = []byte("campaign")

// Address derives a deterministic account address owned by programID.
// The same program and seeds always produce the same address; seeds are
// length-prefixed so ("ab","c") and ("a","bc") never collide.
func Address(programID common.Address, seeds ...[]byte) (common.Address, error) {
	if len(seeds) == 0 {
		return common.Address{}, ErrNoSeeds
	}
	if len(seeds) > MaxSeeds {
		return common.Address{}, ErrMaxSeeds
	}

	seedHash := sha3.NewLegacyKeccak256()
	var prefix [2]byte
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return common.Address{}, ErrMaxSeedLength
		}
		binary.BigEndian.PutUint16(prefix[:], uint16(len(seed)))
		seedHash.Write(prefix[:])
		seedHash.Write(seed)
	}

	d := sha3.NewLegacyKeccak256()
	d.Write([]byte{0xff})
	d.Write(programID.Bytes())
	d.Write(seedHash.Sum(nil))
	return common.BytesToAddress(d.Sum(nil)[12:]), nil
}

// CampaignAddress returns the storage address of the campaign created by
// creator with the given title
func CampaignAddress(programID, creator common.Address, title string) (common.Address, error) {
	return Address(programID, CampaignSeed, creator.Bytes(), []byte(title))
}

// HoldingAddress returns the associated token holding of owner for mint
func HoldingAddress(tokenProgramID, owner, mint common.Address) (common.Address, error) {
	return Address(tokenProgramID, owner.Bytes(), tokenProgramID.Bytes(), mint.Bytes())
}
