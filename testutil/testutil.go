// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/auth"
	"github.com/danielhkuo/burn-ballot/campaign"
	"github.com/danielhkuo/burn-ballot/cliparse"
	"github.com/danielhkuo/burn-ballot/db"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/token"
)

// TestDBURL is an in-memory sqlite database private to each connection pool
const TestDBURL = ":memory:"

// Fixed program namespaces so derived addresses are stable across tests
var (
	TestProgramID      = common.HexToAddress("0x1111111111111111111111111111111111111111")
	TestTokenProgramID = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   db.TypeSQLite,
		ProgramID:      TestProgramID,
		TokenProgramID: TestTokenProgramID,
	}
}

// NewTestProgram returns a program over conn whose clock reads now
func NewTestProgram(conn *sql.DB, now int64) *engine.Program {
	cfg := GetTestConfig()
	return engine.NewProgram(conn, cfg.DatabaseType, cfg.ProgramID, cfg.TokenProgramID, engine.UnixClock(now))
}

// NewTestLedger returns the token ledger the test program uses
func NewTestLedger() *token.Ledger {
	return token.NewLedger(db.TypeSQLite, TestTokenProgramID)
}

// NewTestKey generates a signing key and returns it with its address
func NewTestKey(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()

	key, err := auth.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return key, auth.Address(key)
}

// CreateTestMint creates a mint controlled by authority and returns its address
func CreateTestMint(t *testing.T, conn *sql.DB, authority common.Address) common.Address {
	t.Helper()

	mint, err := NewTestLedger().CreateMint(context.Background(), conn, authority, 0)
	if err != nil {
		t.Fatalf("Failed to create test mint: %v", err)
	}
	return mint.Address
}

// FundTestVoter credits amount tokens of mint to owner and returns the holding
func FundTestVoter(t *testing.T, conn *sql.DB, mint, authority, owner common.Address, amount uint64) common.Address {
	t.Helper()

	acct, err := NewTestLedger().MintTo(context.Background(), conn, mint, owner, authority, amount)
	if err != nil {
		t.Fatalf("Failed to fund test voter: %v", err)
	}
	return acct.Address
}

// TestBalance returns owner's balance of mint
func TestBalance(t *testing.T, conn *sql.DB, owner, mint common.Address) uint64 {
	t.Helper()

	amount, err := NewTestLedger().Balance(context.Background(), conn, owner, mint)
	if err != nil {
		t.Fatalf("Failed to read balance: %v", err)
	}
	return amount
}

// CreateTestCampaign creates a campaign through the program
func CreateTestCampaign(t *testing.T, p *engine.Program, creator, mint common.Address, title string, options []string, start, end int64) *campaign.Campaign {
	t.Helper()

	c, err := p.CreateCampaign(context.Background(), engine.CreateCampaignInput{
		Creator:   creator,
		Mint:      mint,
		Title:     title,
		Options:   options,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("Failed to create test campaign: %v", err)
	}
	return c
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeSignedRequest creates an HTTP test request signed by key
func MakeSignedRequest(t *testing.T, key *ecdsa.PrivateKey, method, path string, body interface{}) *http.Request {
	t.Helper()

	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	sig, err := auth.SignRequest(key, method, req.URL.Path, jsonBody)
	if err != nil {
		t.Fatalf("Failed to sign request: %v", err)
	}
	req.Header.Set(auth.HeaderSigner, auth.Address(key).Hex())
	req.Header.Set(auth.HeaderSignature, sig)

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
