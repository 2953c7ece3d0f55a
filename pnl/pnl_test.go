package pnl

import (
	"testing"

	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPnLExamples(t *testing.T) {
	t.Parallel()

	composite, err := trade.ParseSizeSpec("10 shares ($1000)")
	require.NoError(t, err)

	got := PnL(d("100"), d("110"), composite, trade.Long)
	require.True(t, got.Valid)
	assert.Equal(t, "100", got.Decimal.String())

	pct := Percent(d("100"), d("110"), trade.Long)
	require.True(t, pct.Valid)
	assert.Equal(t, "10", pct.Decimal.String())

	got = PnL(d("100"), d("110"), trade.Shares(d("10")), trade.Short)
	require.True(t, got.Valid)
	assert.Equal(t, "-100", got.Decimal.String())

	pct = Percent(d("50"), d("45"), trade.Short)
	require.True(t, pct.Valid)
	assert.Equal(t, "10", pct.Decimal.String())
}

func TestPnLNotional(t *testing.T) {
	t.Parallel()

	got := PnL(d("4"), d("5"), trade.Notional(d("1000")), trade.Long)
	require.True(t, got.Valid)
	assert.Equal(t, "250", got.Decimal.String())
}

func TestPnLSignLaw(t *testing.T) {
	t.Parallel()

	size := trade.Shares(d("3"))
	prices := []string{"0.5", "1", "99.99", "100", "100.01", "250"}
	for _, e := range prices {
		for _, x := range prices {
			entry, exit := d(e), d(x)
			long := PnL(entry, exit, size, trade.Long)
			short := PnL(entry, exit, size, trade.Short)
			require.True(t, long.Valid)
			require.True(t, short.Valid)

			assert.True(t, long.Decimal.Neg().Equal(short.Decimal), "%s->%s", e, x)
			assert.Equal(t, exit.Cmp(entry), long.Decimal.Sign(), "%s->%s", e, x)
		}
	}
}

func TestPnLNotComputable(t *testing.T) {
	t.Parallel()

	shares := trade.Shares(d("10"))
	tests := []struct {
		name  string
		entry decimal.Decimal
		exit  decimal.Decimal
		size  trade.SizeSpec
		side  trade.Side
	}{
		{"zero entry", decimal.Zero, d("10"), shares, trade.Long},
		{"negative exit", d("10"), d("-1"), shares, trade.Long},
		{"zero exit", d("10"), decimal.Zero, shares, trade.Short},
		{"bad side", d("10"), d("11"), shares, trade.Side("")},
		{"zero size", d("10"), d("11"), trade.Shares(decimal.Zero), trade.Long},
		{"unset size", d("10"), d("11"), trade.SizeSpec{}, trade.Long},
	}
	for _, tt := range tests {
		assert.False(t, PnL(tt.entry, tt.exit, tt.size, tt.side).Valid, tt.name)
	}

	assert.False(t, Percent(decimal.Zero, d("1"), trade.Long).Valid)
	assert.False(t, Percent(d("1"), d("1"), trade.Side("up")).Valid)
}

func TestPercentOfCost(t *testing.T) {
	t.Parallel()

	got := PercentOfCost(d("-50"), d("100"), d("10"))
	require.True(t, got.Valid)
	assert.Equal(t, "-5", got.Decimal.String())

	assert.False(t, PercentOfCost(d("10"), d("100"), decimal.Zero).Valid)
}

func TestFromText(t *testing.T) {
	t.Parallel()

	p, pct := FromText("100", "110", "10 shares ($1000)", "long")
	require.True(t, p.Valid)
	assert.Equal(t, "100", p.Decimal.String())
	assert.Equal(t, "10", pct.Decimal.String())

	for _, in := range [][4]string{
		{"abc", "110", "10", "long"},
		{"100", "", "10", "long"},
		{"100", "110", "lots", "long"},
		{"100", "110", "10", "sideways"},
		{"0", "110", "10", "long"},
	} {
		p, pct := FromText(in[0], in[1], in[2], in[3])
		assert.False(t, p.Valid, "%v", in)
		assert.False(t, pct.Valid, "%v", in)
	}
}
