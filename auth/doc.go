// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles signing identities and request signatures.

# Identities

Every creator and voter is a secp256k1 key; its identity is the 20-byte
address derived from the public key:

	key, _ := auth.GenerateKey()
	addr := auth.Address(key)

# Signed Requests

State-changing requests carry two headers:

	X-Signer:    0x<address>
	X-Signature: 0x<65-byte signature>

The signature covers keccak256(METHOD "\n" PATH "\n" BODY). VerifyRequest
recovers the public key from the signature and compares its address with
X-Signer:

	signer, err := auth.VerifyRequest(
		r.Header.Get(auth.HeaderSigner),
		r.Header.Get(auth.HeaderSignature),
		r.Method, r.URL.Path, body,
	)

Replaying a signed request is harmless: a replayed creation collides with
the existing campaign address and a replayed vote needs another token.

# Errors

  - ErrInvalidAddress: malformed or zero address
  - ErrInvalidSignature: malformed signature or unrecoverable key
  - ErrSignerMismatch: signature valid but made by someone else
*/
package auth
