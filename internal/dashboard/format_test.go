package dashboard_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ryanfelix147-netizen/GT/internal/dashboard"
)

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"67100":   "67,100.00",
		"205.42":  "205.42",
		"0":       "0.00",
		"4250":    "4,250.00",
		"1234.5":  "1,234.50",
		"999.999": "1,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, dashboard.FormatAmount(decimal.RequireFromString(in)), in)
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 13,700.00", dashboard.FormatBRL(decimal.NewFromInt(13700)))
}
