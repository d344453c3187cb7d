package models

// Request types

type CreateCampaignRequest struct {
	Title     string   `json:"title"`
	Options   []string `json:"options"`
	StartTime int64    `json:"start_time"`
	EndTime   int64    `json:"end_time"`
	Mint      string   `json:"mint"`
}

// Holding is optional; it defaults to the voter's associated holding of Mint
type CastVoteRequest struct {
	OptionIndex *uint8 `json:"option_index"`
	Mint        string `json:"mint"`
	Holding     string `json:"holding,omitempty"`
}

// Response types

type Campaign struct {
	Address    string   `json:"address"`
	Creator    string   `json:"creator"`
	Title      string   `json:"title"`
	Options    []string `json:"options"`
	Votes      []uint64 `json:"votes"`
	Mint       string   `json:"mint"`
	StartTime  int64    `json:"start_time"`
	EndTime    int64    `json:"end_time"`
	TotalVotes uint64   `json:"total_votes"`
	Status     string   `json:"status"`
}

type ListCampaignsResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

type OptionResult struct {
	Index uint8   `json:"index"`
	Label string  `json:"label"`
	Votes uint64  `json:"votes"`
	Share float64 `json:"share"`
}

type ResultsResponse struct {
	Address    string         `json:"address"`
	Status     string         `json:"status"`
	TotalVotes uint64         `json:"total_votes"`
	Results    []OptionResult `json:"results"`
	Leaders    []int          `json:"leaders"`
}

type DeriveAddressResponse struct {
	Address string `json:"address"`
	Creator string `json:"creator"`
	Title   string `json:"title"`
}

type HoldingResponse struct {
	Mint    string `json:"mint"`
	Owner   string `json:"owner"`
	Holding string `json:"holding"`
	Amount  uint64 `json:"amount"`
	Frozen  bool   `json:"frozen"`
}

// Error response

// Code and Name are set for typed ballot failures
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
	Name    string `json:"name,omitempty"`
}
