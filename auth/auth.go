// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidKey       = errors.New("invalid private key")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrSignerMismatch   = errors.New("signature does not match signer")
)

// Headers carrying a request signature
const (
	HeaderSigner    = "X-Signer"
	HeaderSignature = "X-Signature"
)

// GenerateKey creates a new signing identity
func GenerateKey() (*ecdsa.PrivateKey, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// ParsePrivateKey decodes a hex private key, with or without 0x
func ParsePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key, nil
}

// EncodePrivateKey renders a private key as 0x hex
func EncodePrivateKey(key *ecdsa.PrivateKey) string {
	return hexutil.Encode(crypto.FromECDSA(key))
}

// Address returns the identity of a signing key
func Address(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}

// ParseAddress decodes a 0x hex address. The zero address is rejected.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, ErrInvalidAddress
	}
	return addr, nil
}

// RequestDigest is the hash a client signs for a request
func RequestDigest(method, path string, body []byte) []byte {
	return crypto.Keccak256([]byte(method), []byte("\n"), []byte(path), []byte("\n"), body)
}

// SignRequest signs a request and returns the 0x hex signature
func SignRequest(key *ecdsa.PrivateKey, method, path string, body []byte) (string, error) {
	sig, err := crypto.Sign(RequestDigest(method, path, body), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return hexutil.Encode(sig), nil
}

// VerifyRequest checks that signature was produced over the request by
// signer and returns the signer's address
func VerifyRequest(signer, signature, method, path string, body []byte) (common.Address, error) {
	claimed, err := ParseAddress(signer)
	if err != nil {
		return common.Address{}, err
	}

	sig, err := hexutil.Decode(strings.TrimSpace(signature))
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}

	pub, err := crypto.SigToPub(RequestDigest(method, path, body), sig)
	if err != nil {
		return common.Address{}, ErrInvalidSignature
	}

	if crypto.PubkeyToAddress(*pub) != claimed {
		return common.Address{}, ErrSignerMismatch
	}
	return claimed, nil
}
