package internal

import (
	"fmt"
	"math"
)

const (
	EUCommissionRate    = 0.01
	NonEUCommissionRate = 0.02
)

// ComputeCommission converts amount to EUR (amount / rate) and charges the
// jurisdiction rate, rounding up to the next cent.
func ComputeCommission(amount float64, currency string, rate float64, isEU bool) (float64, error) {
	amountInEUR, err := ToReference(amount, currency, rate)
	if err != nil {
		return 0, err
	}

	return CommissionFromReference(amountInEUR, isEU), nil
}

// CommissionFromReference charges the jurisdiction rate on an amount already
// expressed in EUR.
func CommissionFromReference(amountInEUR float64, isEU bool) float64 {
	commissionRate := NonEUCommissionRate
	if isEU {
		commissionRate = EUCommissionRate
	}

	return CeilCents(amountInEUR * commissionRate)
}

func ToReference(amount float64, currency string, rate float64) (float64, error) {
	if currency == ReferenceCurrency {
		return amount, nil
	}
	if !(rate > 0) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	return amount / rate, nil
}

func CeilCents(v float64) float64 {
	return math.Ceil(v*100) / 100
}

// RoundCents is used for totals of already rounded commissions.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
