package internal_test

import (
	"strings"
	"testing"

	"commission-calculator/internal"

	"github.com/stretchr/testify/assert"
)

func TestIsEU(t *testing.T) {
	t.Parallel()

	codes := internal.EUCountries()
	assert.Len(t, codes, 27)

	for _, code := range codes {
		assert.True(t, internal.IsEU(code), code)
		assert.False(t, internal.IsEU(strings.ToLower(code)), strings.ToLower(code))
	}

	for _, code := range []string{"", "US", "GB", "CH", "NO", "PL", "at", " AT", "AT "} {
		assert.False(t, internal.IsEU(code), code)
	}
	assert.True(t, internal.IsEU("PO"))
}

func TestUnrecognizedEUCodes(t *testing.T) {
	t.Parallel()

	unknown := internal.UnrecognizedEUCodes()
	for _, code := range []string{"AT", "DE", "FR", "NL", "SK"} {
		assert.NotContains(t, unknown, code)
	}
}
