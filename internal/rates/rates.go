package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source provides the latest exchange rates relative to the base
// currency. Implementations may return an empty map on failure; callers
// are expected to carry their own fallback.
type Source interface {
	GetRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// StaticSource is a fixed rate table, used for tests and as a fallback.
type StaticSource map[string]decimal.Decimal

// GetRates returns a copy of the table with upper-cased currency codes.
func (s StaticSource) GetRates(_ context.Context) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(s))
	for code, rate := range s {
		out[strings.ToUpper(code)] = rate
	}
	return out, nil
}

// HTTPSource fetches rates from a JSON endpoint of the form
// {"rates": {"USD": 41.5, "EUR": 45.2}}.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource for the given URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ratesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// GetRates performs a single GET against the rate endpoint.
func (s *HTTPSource) GetRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("rates: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates: unexpected status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("rates: decode response: %w", err)
	}

	out := make(map[string]decimal.Decimal, len(payload.Rates))
	for code, rate := range payload.Rates {
		out[strings.ToUpper(code)] = rate
	}
	return out, nil
}
