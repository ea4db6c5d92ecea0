package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Rates is the currency widget value: roubles per one unit of each currency,
// already formatted for display.
type Rates struct {
	USD    string `json:"usd" yaml:"usd"`
	EUR    string `json:"eur" yaml:"eur"`
	Source string `json:"source" yaml:"source"`
}

// World Bank country ids for the two rows shown.
const (
	countryUS  = "US"
	countryEMU = "EMU"
)

// wbRecord is one row of a World Bank indicator response.
type wbRecord struct {
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	Value *float64 `json:"value"`
}

// RatesFetcher queries the World Bank official exchange rate indicator.
type RatesFetcher struct {
	Client  *http.Client
	BaseURL string
	Date    string
}

// Fetch loads the current rates.
func (f RatesFetcher) Fetch(ctx context.Context) (Rates, error) {
	u, err := url.Parse(f.BaseURL)
	if err != nil {
		return Rates{}, fmt.Errorf("parse rates url: %w", err)
	}
	q := u.Query()
	q.Set("format", "json")
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	u.RawQuery = q.Encode()

	body, err := getBody(ctx, f.Client, u.String())
	if err != nil {
		return Rates{}, err
	}
	return parseRates(body)
}

// parseRates decodes a [meta, records] World Bank payload.
func parseRates(body []byte) (Rates, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return Rates{}, fmt.Errorf("decode rates: %w", err)
	}
	if len(parts) < 2 {
		return Rates{}, fmt.Errorf("decode rates: %w: unexpected response shape", ErrNoData)
	}
	var records []wbRecord
	if err := json.Unmarshal(parts[1], &records); err != nil {
		return Rates{}, fmt.Errorf("decode rate records: %w", err)
	}

	usd, okUSD := findRate(records, countryUS)
	eur, okEUR := findRate(records, countryEMU)
	if !okUSD || !okEUR {
		return Rates{}, fmt.Errorf("extract rates: %w", ErrNoData)
	}
	return Rates{
		USD:    strconv.FormatFloat(1/usd, 'f', 4, 64),
		EUR:    strconv.FormatFloat(1/eur, 'f', 4, 64),
		Source: "World Bank",
	}, nil
}

func findRate(records []wbRecord, countryID string) (float64, bool) {
	for _, r := range records {
		if r.Country.ID != countryID {
			continue
		}
		if r.Value == nil || *r.Value == 0 {
			return 0, false
		}
		return *r.Value, true
	}
	return 0, false
}

// FallbackRates is the value shown when the rates source is unreachable.
func FallbackRates(usd, eur string) Rates {
	return Rates{USD: usd, EUR: eur, Source: "fallback"}
}

const maxBody = 4 << 20

func getBody(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %s", req.URL.Host, resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}
