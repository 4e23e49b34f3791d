// Package fxrate fetches spot currency quotes against THB from a
// Yahoo-Finance-compatible chart endpoint.
package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// tickers maps a source currency to its THB quote symbol. Currencies
// without an entry fall back to the USD/THB symbol.
var tickers = map[string]string{
	"USD": "THB=X",
	"EUR": "EURTHB=X",
	"JPY": "JPYTHB=X",
}

const defaultTicker = "THB=X"

// Client queries the chart endpoint for daily closes.
type Client struct {
	Endpoint string
	Client   *http.Client
}

func NewClient(endpoint string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Endpoint: endpoint, Client: client}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Spot returns the latest daily close for currency against THB. A
// fetch failure returns an error and no rate; callers keep whatever
// rate they already had.
func (c *Client) Spot(ctx context.Context, currency string) (float64, error) {
	ticker, ok := tickers[strings.ToUpper(currency)]
	if !ok {
		ticker = defaultTicker
	}

	endpoint := strings.TrimRight(c.Endpoint, "/")
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", endpoint, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("fxrate: build request: %w", err)
	}
	req.Header.Set("User-Agent", "costsheet/1.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fxrate: fetch %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fxrate: fetch %s: status %d", ticker, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("fxrate: decode %s: %w", ticker, err)
	}
	if payload.Chart.Error != nil {
		return 0, fmt.Errorf("fxrate: %s: %s", ticker, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return 0, fmt.Errorf("fxrate: %s: empty chart result", ticker)
	}

	closes := payload.Chart.Result[0].Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i], nil
		}
	}
	return 0, fmt.Errorf("fxrate: %s: no close price", ticker)
}

// Effective derives the booking rate from a spot quote and the
// negotiated discount and premium adjustments.
func Effective(spot, discount, premium float64) float64 {
	return spot - discount + premium
}
