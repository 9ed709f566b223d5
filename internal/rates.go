package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"resty.dev/v3"
)

type RateProvider interface {
	Rate(ctx context.Context, currency string) (float64, error)
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// ExchangeRatesClient fetches the whole EUR based table on every call.
type ExchangeRatesClient struct {
	client *resty.Client
	url    string
	apiKey string
}

func NewExchangeRatesClient(client *resty.Client, url string, apiKey string) *ExchangeRatesClient {
	return &ExchangeRatesClient{
		client: client,
		url:    url,
		apiKey: apiKey,
	}
}

// Rate returns 0 when the currency is missing from the table.
func (c *ExchangeRatesClient) Rate(ctx context.Context, currency string) (float64, error) {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if c.apiKey != "" {
		req.SetQueryParam("access_key", c.apiKey)
	}

	start := time.Now()
	res, err := req.Get(c.url)
	lookupDuration.WithLabelValues("rates").Observe(time.Since(start).Seconds())

	if err == nil && res.IsError() {
		err = fmt.Errorf("unexpected status %d", res.StatusCode())
	}
	if err != nil {
		slog.Error("failed to fetch currency rates", "url", c.url, "err", err)
		rateLookupFailures.Inc()
		return 0, fmt.Errorf("%w: %w", ErrRatesUnavailable, err)
	}

	var body ratesResponse
	if err := sonic.ConfigFastest.UnmarshalFromString(res.String(), &body); err != nil {
		slog.Debug("failed to parse the rates response", "url", c.url, "err", err)
		return 0, nil
	}

	return body.Rates[currency], nil
}
