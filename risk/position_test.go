package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSharesForRisk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		equity  string
		riskPct string
		entry   string
		stop    string
		want    string
		ok      bool
	}{
		{"long stop below", "10000", "0.01", "100", "99", "100", true},
		{"short stop above", "5000", "0.02", "50", "51", "100", true},
		{"rounds down", "10000", "0.01", "100", "97", "33", true},
		{"penny stock", "2000", "0.005", "0.0450", "0.0430", "5000", true},
		{"stop at entry", "10000", "0.01", "100", "100", "0", false},
		{"no equity", "0", "0.01", "100", "99", "0", false},
		{"no risk", "10000", "0", "100", "99", "0", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := SharesForRisk(d(tt.equity), d(tt.riskPct), d(tt.entry), d(tt.stop))
			assert.Equal(t, tt.ok, ok)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestAmountAtRisk(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10", AmountAtRisk(d("10"), d("100"), d("99")).String())
	assert.Equal(t, "10", AmountAtRisk(d("10"), d("100"), d("101")).String())
	assert.Equal(t, "0", AmountAtRisk(d("0"), d("100"), d("99")).String())
}

func TestRR(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2", RR(d("100"), d("99"), d("102")).String())
	assert.Equal(t, "2", RR(d("100"), d("101"), d("98")).String())
	assert.Equal(t, "0", RR(d("100"), d("100"), d("102")).String())
}

func TestRiskPct(t *testing.T) {
	t.Parallel()

	got, ok := RiskPct(d("100"), d("10000"))
	assert.True(t, ok)
	assert.Equal(t, "0.01", got.String())

	_, ok = RiskPct(d("100"), d("0"))
	assert.False(t, ok)
}
