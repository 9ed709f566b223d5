package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"commission-calculator/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratesBody = `{"base":"EUR","date":"2025-01-02","rates":{"USD":1.1,"JPY":129.53,"GBP":0.87}}`

type providerStub struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newProviderStub(t *testing.T, status int, body string) *providerStub {
	t.Helper()

	stub := &providerStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func newBinServer(t *testing.T, countries map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, ok := countries[r.URL.Path[1:]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"scheme":"visa","country":{"numeric":"208","alpha2":"` + code + `","name":"Somewhere"}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBinListClient_Resolve(t *testing.T) {
	t.Parallel()

	server := newBinServer(t, map[string]string{"45717360": "DK"})
	client := internal.NewBinListClient(internal.NewHTTPClient(time.Second), server.URL)

	got := client.Resolve(context.Background(), "45717360")
	assert.Equal(t, internal.Resolved("DK"), got)
}

func TestBinListClient_TrailingSlashBaseURL(t *testing.T) {
	t.Parallel()

	server := newBinServer(t, map[string]string{"45717360": "DK"})
	client := internal.NewBinListClient(internal.NewHTTPClient(time.Second), server.URL+"/")

	got := client.Resolve(context.Background(), "45717360")
	assert.Equal(t, internal.Resolved("DK"), got)
}

func TestBinListClient_MissingAlpha2(t *testing.T) {
	t.Parallel()

	stub := newProviderStub(t, http.StatusOK, `{"scheme":"visa","country":{}}`)
	client := internal.NewBinListClient(internal.NewHTTPClient(time.Second), stub.server.URL)

	got := client.Resolve(context.Background(), "41417360")
	assert.Equal(t, "", got.Code)
	assert.False(t, got.Degraded)
}

func TestBinListClient_FailureDegrades(t *testing.T) {
	t.Parallel()

	stub := newProviderStub(t, http.StatusTooManyRequests, `{}`)
	client := internal.NewBinListClient(internal.NewHTTPClient(time.Second), stub.server.URL)

	got := client.Resolve(context.Background(), "45417360")
	assert.Equal(t, internal.FallbackCountry, got.Code)
	assert.True(t, got.Degraded)
	assert.Error(t, got.Cause)
	assert.EqualValues(t, 1, stub.calls.Load())
}

func TestBinListClient_UnreachableDegrades(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := internal.NewBinListClient(internal.NewHTTPClient(time.Second), url)
	got := client.Resolve(context.Background(), "45417360")
	assert.Equal(t, "AT", got.Code)
	assert.True(t, got.Degraded)
}

func TestExchangeRatesClient_Rate(t *testing.T) {
	t.Parallel()

	stub := newProviderStub(t, http.StatusOK, ratesBody)
	client := internal.NewExchangeRatesClient(internal.NewHTTPClient(time.Second), stub.server.URL, "")

	rate, err := client.Rate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.1, rate)

	rate, err = client.Rate(context.Background(), "CHF")
	require.NoError(t, err)
	assert.Zero(t, rate)

	// full table fetched on every call
	assert.EqualValues(t, 2, stub.calls.Load())
}

func TestExchangeRatesClient_IgnoresBaseShape(t *testing.T) {
	t.Parallel()

	stub := newProviderStub(t, http.StatusOK, `{"base":123,"rates":{"USD":1.1}}`)
	client := internal.NewExchangeRatesClient(internal.NewHTTPClient(time.Second), stub.server.URL, "")

	rate, err := client.Rate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.1, rate)
}

func TestExchangeRatesClient_SendsAPIKey(t *testing.T) {
	t.Parallel()

	keys := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.URL.Query().Get("access_key")
		w.Write([]byte(ratesBody))
	}))
	t.Cleanup(server.Close)

	client := internal.NewExchangeRatesClient(internal.NewHTTPClient(time.Second), server.URL, "secret")
	_, err := client.Rate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "secret", <-keys)
}

func TestExchangeRatesClient_Failure(t *testing.T) {
	t.Parallel()

	stub := newProviderStub(t, http.StatusServiceUnavailable, `{"error":"down"}`)
	client := internal.NewExchangeRatesClient(internal.NewHTTPClient(time.Second), stub.server.URL, "")

	_, err := client.Rate(context.Background(), "USD")
	require.ErrorIs(t, err, internal.ErrRatesUnavailable)
	assert.Contains(t, err.Error(), "failed to fetch currency rates: ")
	assert.EqualValues(t, 1, stub.calls.Load())
}

func TestExchangeRatesClient_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)

	client := internal.NewExchangeRatesClient(internal.NewHTTPClient(100*time.Millisecond), server.URL, "")
	_, err := client.Rate(context.Background(), "USD")
	require.ErrorIs(t, err, internal.ErrRatesUnavailable)
}
