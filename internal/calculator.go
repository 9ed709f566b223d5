package internal

import (
	"context"
	"iter"
	"log/slog"
	"strconv"
)

type Calculator struct {
	countries CountryResolver
	rates     RateProvider
}

func NewCalculator(countries CountryResolver, rates RateProvider) *Calculator {
	return &Calculator{
		countries: countries,
		rates:     rates,
	}
}

// Calculate returns one commission per transaction line of the file at path,
// in input order. Any fatal error discards everything computed so far.
func (c *Calculator) Calculate(ctx context.Context, path string) ([]float64, error) {
	details, err := c.CalculateDetailed(ctx, Lines(path))
	if err != nil {
		return nil, err
	}
	return Fees(details), nil
}

func (c *Calculator) CalculateDetailed(ctx context.Context, lines iter.Seq2[string, error]) ([]Commission, error) {
	var out []Commission

	for line, err := range lines {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		commission, err := c.Process(ctx, line)
		if err != nil {
			return nil, err
		}
		out = append(out, commission)
	}

	return out, nil
}

func (c *Calculator) Process(ctx context.Context, line string) (Commission, error) {
	tx, err := ParseTransaction(line)
	if err != nil {
		return Commission{}, err
	}

	country := c.countries.Resolve(ctx, tx.Bin)
	isEU := IsEU(country.Code)

	rate, err := c.rates.Rate(ctx, tx.Currency)
	if err != nil {
		return Commission{}, err
	}

	amountInEUR, err := ToReference(tx.Amount, tx.Currency, rate)
	if err != nil {
		return Commission{}, err
	}

	fee := CommissionFromReference(amountInEUR, isEU)

	commissionsCalculated.WithLabelValues(strconv.FormatBool(isEU)).Inc()
	slog.Debug("commission calculated",
		"bin", tx.Bin,
		"country", country.Code,
		"countryName", CountryName(country.Code),
		"degraded", country.Degraded,
		"currency", tx.Currency,
		"rate", rate,
		"fee", fee,
	)

	return Commission{
		Transaction:     tx,
		Country:         country.Code,
		CountryDegraded: country.Degraded,
		EU:              isEU,
		Rate:            rate,
		AmountInEUR:     amountInEUR,
		Fee:             fee,
	}, nil
}

func Fees(details []Commission) []float64 {
	out := make([]float64, 0, len(details))
	for _, d := range details {
		out = append(out, d.Fee)
	}
	return out
}
