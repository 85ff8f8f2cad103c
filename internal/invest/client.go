// Package invest fetches decorative investment suggestions. They
// never participate in ledger arithmetic, so every failure here is
// soft: logged, then reported to the caller as still loading.
package invest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultFundListURL is the public mutual-fund listing endpoint.
const DefaultFundListURL = "https://api.mfapi.in/mf"

const fundNote = "Good for medium-term returns"

// FundSuggestion is one mutual-fund entry shown on the balance page.
type FundSuggestion struct {
	SchemeCode int    `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
	Note       string `json:"note"`
}

// DepositSuggestion is a static fixed-deposit rate entry.
type DepositSuggestion struct {
	Bank   string  `json:"bank"`
	Rate   float64 `json:"rate"`
	Tenure string  `json:"tenure"`
}

// FixedDeposits returns the static rate table. A fresh slice every
// call, so callers can't corrupt the source data.
func FixedDeposits() []DepositSuggestion {
	return []DepositSuggestion{
		{Bank: "HDFC Bank", Rate: 6.6, Tenure: "1 year"},
		{Bank: "SBI", Rate: 6.9, Tenure: "2 years"},
		{Bank: "ICICI Bank", Rate: 7.1, Tenure: "3 years"},
	}
}

// Client queries the fund listing API.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultFundListURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type fundListEntry struct {
	SchemeCode int    `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
}

// TopFunds returns the first n funds from the listing, each annotated
// with the standard note.
func (c *Client) TopFunds(ctx context.Context, n int) ([]FundSuggestion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build fund list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fund list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch fund list: unexpected status %d", resp.StatusCode)
	}

	var entries []fundListEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode fund list: %w", err)
	}

	if len(entries) > n {
		entries = entries[:n]
	}
	funds := make([]FundSuggestion, 0, len(entries))
	for _, e := range entries {
		funds = append(funds, FundSuggestion{
			SchemeCode: e.SchemeCode,
			SchemeName: e.SchemeName,
			Note:       fundNote,
		})
	}
	return funds, nil
}
