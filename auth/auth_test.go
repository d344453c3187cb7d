// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	k1, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	k2, _ := GenerateKey()

	if Address(k1) == Address(k2) {
		t.Error("GenerateKey() produced duplicate identities (extremely unlikely)")
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	key, _ := GenerateKey()
	encoded := EncodePrivateKey(key)

	if !strings.HasPrefix(encoded, "0x") {
		t.Errorf("EncodePrivateKey() = %s, want 0x prefix", encoded)
	}

	for _, s := range []string{encoded, strings.TrimPrefix(encoded, "0x")} {
		parsed, err := ParsePrivateKey(s)
		if err != nil {
			t.Fatalf("ParsePrivateKey(%q) error = %v", s, err)
		}
		if Address(parsed) != Address(key) {
			t.Errorf("ParsePrivateKey() identity mismatch")
		}
	}

	if _, err := ParsePrivateKey("0xnothex"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("ParsePrivateKey(bad) error = %v, want ErrInvalidKey", err)
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"checksummed", "0x1111111111111111111111111111111111111111", false},
		{"no prefix", "2222222222222222222222222222222222222222", false},
		{"padded", "  0x3333333333333333333333333333333333333333 ", false},
		{"zero", "0x0000000000000000000000000000000000000000", true},
		{"short", "0x1234", true},
		{"empty", "", true},
		{"not hex", "0xzz11111111111111111111111111111111111111", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAddress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSignAndVerifyRequest(t *testing.T) {
	key, _ := GenerateKey()
	signer := Address(key).Hex()
	body := []byte(`{"option_index":1}`)

	sig, err := SignRequest(key, "POST", "/campaigns/0xabc/votes", body)
	if err != nil {
		t.Fatalf("SignRequest() error = %v", err)
	}

	got, err := VerifyRequest(signer, sig, "POST", "/campaigns/0xabc/votes", body)
	if err != nil {
		t.Fatalf("VerifyRequest() error = %v", err)
	}
	if got != Address(key) {
		t.Errorf("VerifyRequest() = %s, want %s", got.Hex(), signer)
	}
}

func TestVerifyRequestRejects(t *testing.T) {
	key, _ := GenerateKey()
	other, _ := GenerateKey()
	body := []byte(`{"option_index":1}`)
	sig, _ := SignRequest(key, "POST", "/campaigns", body)

	tests := []struct {
		name    string
		signer  string
		sig     string
		method  string
		path    string
		body    []byte
		wantErr error
	}{
		{"tampered body", Address(key).Hex(), sig, "POST", "/campaigns", []byte(`{"option_index":0}`), ErrSignerMismatch},
		{"other path", Address(key).Hex(), sig, "POST", "/campaigns/x", body, ErrSignerMismatch},
		{"other method", Address(key).Hex(), sig, "PUT", "/campaigns", body, ErrSignerMismatch},
		{"wrong signer", Address(other).Hex(), sig, "POST", "/campaigns", body, ErrSignerMismatch},
		{"bad signer", "nope", sig, "POST", "/campaigns", body, ErrInvalidAddress},
		{"short signature", Address(key).Hex(), "0x1234", "POST", "/campaigns", body, ErrInvalidSignature},
		{"not hex", Address(key).Hex(), "signature", "POST", "/campaigns", body, ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyRequest(tt.signer, tt.sig, tt.method, tt.path, tt.body)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyRequest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
