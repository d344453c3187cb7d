// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"crypto/ecdsa"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/derive"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/middleware"
	"github.com/danielhkuo/burn-ballot/models"
	"github.com/danielhkuo/burn-ballot/testutil"
)

// fixture is a database with one creator who controls one mint
type fixture struct {
	db         *sql.DB
	program    *engine.Program
	creatorKey *ecdsa.PrivateKey
	creator    common.Address
	mint       common.Address
}

func newFixture(t *testing.T, now int64) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	key, creator := testutil.NewTestKey(t)
	return &fixture{
		db:         db,
		program:    testutil.NewTestProgram(db, now),
		creatorKey: key,
		creator:    creator,
		mint:       testutil.CreateTestMint(t, db, creator),
	}
}

func (f *fixture) setClock(now int64) {
	f.program.Clock = engine.UnixClock(now)
}

func (f *fixture) campaign(t *testing.T, title string, options []string, start, end int64) common.Address {
	t.Helper()
	return testutil.CreateTestCampaign(t, f.program, f.creator, f.mint, title, options, start, end).Address
}

// voter returns a fresh voter holding amount eligibility tokens
func (f *fixture) voter(t *testing.T, amount uint64) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	key, addr := testutil.NewTestKey(t)
	if amount > 0 {
		testutil.FundTestVoter(t, f.db, f.mint, f.creator, addr, amount)
	}
	return key, addr
}

func (f *fixture) createRequest(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeSignedRequest(t, f.creatorKey, "POST", "/campaigns", body)
	w := httptest.NewRecorder()
	middleware.RequireSigner(NewCampaignHandler(f.program).CreateCampaign)(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func TestCreateCampaign(t *testing.T) {
	f := newFixture(t, 50)
	f.campaign(t, "Existing", []string{"A", "B"}, 100, 200)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   int
		checkResponse  func(t *testing.T, resp *models.Campaign)
	}{
		{
			name: "valid campaign",
			body: models.CreateCampaignRequest{
				Title:     "Lunch",
				Options:   []string{"Pizza", "Sushi", "Tacos"},
				StartTime: 100,
				EndTime:   200,
				Mint:      f.mint.Hex(),
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.Campaign) {
				want, _ := derive.CampaignAddress(testutil.TestProgramID, f.creator, "Lunch")
				if resp.Address != want.Hex() {
					t.Errorf("Expected address %s, got %s", want.Hex(), resp.Address)
				}
				if resp.Creator != f.creator.Hex() {
					t.Errorf("Expected creator %s, got %s", f.creator.Hex(), resp.Creator)
				}
				if resp.Status != "created" {
					t.Errorf("Expected status 'created', got '%s'", resp.Status)
				}
				if len(resp.Votes) != 3 || resp.TotalVotes != 0 {
					t.Errorf("Expected three zero tallies, got %v total %d", resp.Votes, resp.TotalVotes)
				}
			},
		},
		{
			name: "duplicate title",
			body: models.CreateCampaignRequest{
				Title: "Existing", Options: []string{"C", "D"}, StartTime: 10, EndTime: 20, Mint: f.mint.Hex(),
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "single option",
			body: models.CreateCampaignRequest{
				Title: "One", Options: []string{"A"}, StartTime: 100, EndTime: 200, Mint: f.mint.Hex(),
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   6003,
		},
		{
			name: "start equals end",
			body: models.CreateCampaignRequest{
				Title: "Instant", Options: []string{"A", "B"}, StartTime: 100, EndTime: 100, Mint: f.mint.Hex(),
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   6004,
		},
		{
			name: "options checked before timestamps",
			body: models.CreateCampaignRequest{
				Title: "Both", Options: []string{}, StartTime: 200, EndTime: 100, Mint: f.mint.Hex(),
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   6003,
		},
		{
			name: "title too long",
			body: models.CreateCampaignRequest{
				Title: strings.Repeat("t", 65), Options: []string{"A", "B"}, StartTime: 100, EndTime: 200, Mint: f.mint.Hex(),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "too many options",
			body: models.CreateCampaignRequest{
				Title:     "Many",
				Options:   []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
				StartTime: 100,
				EndTime:   200,
				Mint:      f.mint.Hex(),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown mint",
			body: models.CreateCampaignRequest{
				Title: "Orphan", Options: []string{"A", "B"}, StartTime: 100, EndTime: 200,
				Mint: "0x3333333333333333333333333333333333333333",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed mint",
			body: models.CreateCampaignRequest{
				Title: "Bad", Options: []string{"A", "B"}, StartTime: 100, EndTime: 200, Mint: "not-an-address",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.createRequest(t, tt.body)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedCode != 0 {
				resp := decodeError(t, w)
				if resp.Code != tt.expectedCode {
					t.Errorf("Expected code %d, got %d (%s)", tt.expectedCode, resp.Code, resp.Name)
				}
			}

			if tt.checkResponse != nil && w.Code == tt.expectedStatus {
				var resp models.Campaign
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestCreateCampaign_Unsigned(t *testing.T) {
	f := newFixture(t, 50)

	req := testutil.MakeRequest("POST", "/campaigns", models.CreateCampaignRequest{
		Title: "Lunch", Options: []string{"A", "B"}, StartTime: 100, EndTime: 200, Mint: f.mint.Hex(),
	}, nil)
	w := httptest.NewRecorder()
	middleware.RequireSigner(NewCampaignHandler(f.program).CreateCampaign)(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestCreateCampaign_SameTitleOtherCreator(t *testing.T) {
	f := newFixture(t, 50)
	f.campaign(t, "Shared", []string{"A", "B"}, 100, 200)

	otherKey, other := testutil.NewTestKey(t)
	req := testutil.MakeSignedRequest(t, otherKey, "POST", "/campaigns", models.CreateCampaignRequest{
		Title: "Shared", Options: []string{"A", "B"}, StartTime: 100, EndTime: 200, Mint: f.mint.Hex(),
	})
	w := httptest.NewRecorder()
	middleware.RequireSigner(NewCampaignHandler(f.program).CreateCampaign)(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.Campaign
	testutil.AssertJSON(t, w, &resp)
	if resp.Creator != other.Hex() {
		t.Errorf("Expected creator %s, got %s", other.Hex(), resp.Creator)
	}
}

func TestGetCampaign(t *testing.T) {
	f := newFixture(t, 150)
	addr := f.campaign(t, "Lunch", []string{"A", "B"}, 100, 200)
	handler := NewCampaignHandler(f.program)

	tests := []struct {
		name           string
		address        string
		expectedStatus int
	}{
		{"existing campaign", addr.Hex(), http.StatusOK},
		{"unknown campaign", "0x4444444444444444444444444444444444444444", http.StatusNotFound},
		{"malformed address", "xyz", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/campaigns/"+tt.address, nil)
			req.SetPathValue("address", tt.address)
			w := httptest.NewRecorder()

			handler.GetCampaign(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.Campaign
			testutil.AssertJSON(t, w, &resp)
			if resp.Title != "Lunch" {
				t.Errorf("Expected title 'Lunch', got '%s'", resp.Title)
			}
			if resp.Status != "active" {
				t.Errorf("Expected status 'active', got '%s'", resp.Status)
			}
			if resp.Mint != f.mint.Hex() {
				t.Errorf("Expected mint %s, got %s", f.mint.Hex(), resp.Mint)
			}
		})
	}
}

func TestListCampaigns(t *testing.T) {
	f := newFixture(t, 50)
	f.campaign(t, "First", []string{"A", "B"}, 100, 200)
	f.campaign(t, "Second", []string{"A", "B"}, 100, 200)

	_, other := testutil.NewTestKey(t)
	testutil.CreateTestCampaign(t, f.program, other, f.mint, "Third", []string{"A", "B"}, 100, 200)

	handler := NewCampaignHandler(f.program)

	tests := []struct {
		name          string
		query         string
		expectedCount int
		expectedCode  int
	}{
		{"all campaigns", "", 3, http.StatusOK},
		{"by creator", "?creator=" + f.creator.Hex(), 2, http.StatusOK},
		{"by other creator", "?creator=" + other.Hex(), 1, http.StatusOK},
		{"creator without campaigns", "?creator=0x5555555555555555555555555555555555555555", 0, http.StatusOK},
		{"malformed creator", "?creator=nope", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/campaigns"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ListCampaigns(w, req)

			testutil.AssertStatus(t, w, tt.expectedCode)
			if tt.expectedCode != http.StatusOK {
				return
			}

			var resp models.ListCampaignsResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Campaigns) != tt.expectedCount {
				t.Errorf("Expected %d campaigns, got %d", tt.expectedCount, len(resp.Campaigns))
			}
		})
	}
}

func TestDeriveAddress(t *testing.T) {
	f := newFixture(t, 50)
	created := f.campaign(t, "Lunch", []string{"A", "B"}, 100, 200)
	handler := NewCampaignHandler(f.program)

	t.Run("matches created campaign", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/campaigns/derive?creator="+f.creator.Hex()+"&title=Lunch", nil)
		w := httptest.NewRecorder()

		handler.DeriveAddress(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.DeriveAddressResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Address != created.Hex() {
			t.Errorf("Expected address %s, got %s", created.Hex(), resp.Address)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/campaigns/derive?creator="+f.creator.Hex(), nil)
		w := httptest.NewRecorder()

		handler.DeriveAddress(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("title longer than a seed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/campaigns/derive?creator="+f.creator.Hex()+"&title="+strings.Repeat("x", 65), nil)
		w := httptest.NewRecorder()

		handler.DeriveAddress(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
