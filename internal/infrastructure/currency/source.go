package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RateSource returns how many USD one INR buys.
type RateSource interface {
	INRToUSD(ctx context.Context) (float64, error)
}

type httpSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) RateSource {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &httpSource{url: url, client: client}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (s *httpSource) INRToUSD(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch rates: unexpected status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode rates: %w", err)
	}
	usd, ok := body.Rates["USD"]
	if !ok || usd <= 0 {
		return 0, errors.New("rates: USD missing")
	}
	return usd, nil
}
