package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"resty.dev/v3"
)

type binResponse struct {
	Country struct {
		Alpha2 string `json:"alpha2"`
	} `json:"country"`
}

type BinListClient struct {
	client  *resty.Client
	baseUrl string
}

func NewBinListClient(client *resty.Client, baseUrl string) *BinListClient {
	return &BinListClient{
		client:  client,
		baseUrl: strings.TrimRight(baseUrl, "/"),
	}
}

// Resolve never fails: transport errors and non-2xx answers degrade to the
// fallback country so the batch keeps going.
func (c *BinListClient) Resolve(ctx context.Context, bin string) CountryResult {
	url := c.baseUrl + "/" + bin

	start := time.Now()
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Accept-Version", "3").
		Get(url)
	lookupDuration.WithLabelValues("binlist").Observe(time.Since(start).Seconds())

	if err == nil && res.IsError() {
		err = fmt.Errorf("unexpected status %d", res.StatusCode())
	}
	if err != nil {
		slog.Warn("failed to fetch BIN information, using fallback country",
			"url", url, "fallback", FallbackCountry, "err", err)
		binLookupDegraded.Inc()
		return Degraded(FallbackCountry, err)
	}

	var body binResponse
	if err := sonic.ConfigFastest.UnmarshalFromString(res.String(), &body); err != nil {
		slog.Debug("failed to parse the BIN response", "url", url, "err", err)
		return Resolved("")
	}

	return Resolved(body.Country.Alpha2)
}
