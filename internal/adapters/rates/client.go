// Package rates implements the live exchange-rate source against an external
// HTTP rate API, fronted by a circuit breaker so a flapping provider cannot
// stall checkouts.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	portsprov "github.com/petalhub/florist_backend/internal/core/ports/providers"
)

const requestTimeout = 5 * time.Second

// HTTPRateSource fetches current exchange rates from a rate API that answers
// GET {baseURL}?base=INR&symbols=USD with {"base":"INR","rates":{"USD":0.0116}}.
type HTTPRateSource struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[decimal.Decimal]
}

// NewHTTPRateSource creates a rate source for the given API base URL.
func NewHTTPRateSource(baseURL string) portsprov.LiveRateSource {
	breaker := gobreaker.NewCircuitBreaker[decimal.Decimal](gobreaker.Settings{
		Name:    "rate-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &HTTPRateSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		breaker: breaker,
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRate returns the current from->to rate.
func (s *HTTPRateSource) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	return s.breaker.Execute(func() (decimal.Decimal, error) {
		return s.fetch(ctx, fromCode, toCode)
	})
}

func (s *HTTPRateSource) fetch(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s?base=%s&symbols=%s", s.baseURL, url.QueryEscape(fromCode), url.QueryEscape(toCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate api returned status %s", resp.Status)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}

	raw, ok := body.Rates[toCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate api has no rate for %s", toCode)
	}
	rate := decimal.NewFromFloat(raw)
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate api returned non-positive rate for %s", toCode)
	}
	return rate, nil
}
