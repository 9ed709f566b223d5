package internal

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// ParseTransaction decodes one input line. A field counts as missing when it is
// absent, null or falsy, so an amount of 0 is rejected like a missing one.
func ParseTransaction(line string) (Transaction, error) {
	invalid := fmt.Errorf("%w: %s", ErrInvalidTransaction, line)

	if !utf8.ValidString(line) {
		return Transaction{}, invalid
	}

	var data map[string]any
	if err := sonic.ConfigStd.UnmarshalFromString(line, &data); err != nil || data == nil {
		return Transaction{}, invalid
	}

	rawBin, rawAmount, rawCurrency := data["bin"], data["amount"], data["currency"]
	if !truthy(rawBin) || !truthy(rawAmount) || !truthy(rawCurrency) {
		return Transaction{}, invalid
	}

	var tx Transaction
	switch v := rawBin.(type) {
	case string:
		tx.Bin = v
	case float64:
		tx.Bin = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return Transaction{}, invalid
	}

	switch v := rawAmount.(type) {
	case float64:
		tx.Amount = v
	case string:
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Transaction{}, invalid
		}
		tx.Amount = amount
	default:
		return Transaction{}, invalid
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return Transaction{}, invalid
	}

	currency, ok := rawCurrency.(string)
	if !ok {
		return Transaction{}, invalid
	}
	tx.Currency = currency

	return tx, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "0"
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
