package internal

import (
	"errors"
	"time"
)

const ReferenceCurrency = "EUR"

var (
	ErrInputUnavailable    = errors.New("unable to open input")
	ErrInvalidTransaction  = errors.New("invalid transaction format")
	ErrRatesUnavailable    = errors.New("failed to fetch currency rates")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

type Transaction struct {
	Bin      string  `json:"bin"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CountryResult is either a resolved country code or the fallback used when
// the BIN lookup failed. Cause is only set for degraded results.
type CountryResult struct {
	Code     string
	Degraded bool
	Cause    error
}

func Resolved(code string) CountryResult {
	return CountryResult{Code: code}
}

func Degraded(code string, cause error) CountryResult {
	return CountryResult{Code: code, Degraded: true, Cause: cause}
}

type Commission struct {
	Transaction
	Country         string  `json:"country"`
	CountryDegraded bool    `json:"countryDegraded"`
	EU              bool    `json:"eu"`
	Rate            float64 `json:"rate"`
	AmountInEUR     float64 `json:"amountInEur"`
	Fee             float64 `json:"fee"`
}

type Run struct {
	ID          string       `json:"id" bson:"_id"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	Commissions []float64    `json:"commissions" bson:"commissions"`
	Details     []Commission `json:"details" bson:"details"`
	TotalFee    float64      `json:"totalFee" bson:"totalFee"`
}

type RunsResponse struct {
	TotalRuns int     `json:"totalRuns"`
	TotalFee  float64 `json:"totalFee"`
	Runs      []Run   `json:"runs"`
}
