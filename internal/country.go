package internal

import (
	"context"

	"github.com/biter777/countries"
)

// FallbackCountry is used when the BIN provider cannot be reached.
const FallbackCountry = "AT"

type CountryResolver interface {
	Resolve(ctx context.Context, bin string) CountryResult
}

// "PO" is kept as listed upstream; the ISO code for Poland is "PL".
var euCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "CY": {}, "CZ": {}, "DE": {}, "DK": {}, "EE": {}, "ES": {},
	"FI": {}, "FR": {}, "GR": {}, "HR": {}, "HU": {}, "IE": {}, "IT": {}, "LT": {}, "LU": {},
	"LV": {}, "MT": {}, "NL": {}, "PO": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {}, "SK": {},
}

func IsEU(code string) bool {
	_, ok := euCountries[code]
	return ok
}

func EUCountries() []string {
	out := make([]string, 0, len(euCountries))
	for code := range euCountries {
		out = append(out, code)
	}
	return out
}

// UnrecognizedEUCodes lists EU entries that are not ISO 3166-1 alpha-2 codes.
func UnrecognizedEUCodes() []string {
	var out []string
	for code := range euCountries {
		if c := countries.ByName(code); c == countries.Unknown || c.Alpha2() != code {
			out = append(out, code)
		}
	}
	return out
}

func CountryName(code string) string {
	c := countries.ByName(code)
	if c == countries.Unknown || c.Alpha2() != code {
		return ""
	}
	return c.String()
}
