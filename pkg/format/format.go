package format

import (
	"fmt"
	"strconv"
	"time"
)

func FormatRFC3339(t time.Time) string {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ", year, month, day, hour, min, sec)
}

// FormatCents renders a commission with exactly two decimals.
func FormatCents(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
