package journal

import (
	"testing"

	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveLevelsAndPnL(t *testing.T) {
	t.Parallel()

	tr, err := sampleEntry().Parse()
	require.NoError(t, err)
	got := Derive(tr, DefaultDeriveOptions())

	require.True(t, got.ExpectedStopLoss.Valid)
	require.True(t, got.ExpectedTarget.Valid)
	assert.Equal(t, "99", got.ExpectedStopLoss.Decimal.String())
	assert.Equal(t, "102", got.ExpectedTarget.Decimal.String())
	require.True(t, got.PnL.Valid)
	assert.Equal(t, "100", got.PnL.Decimal.String())
	assert.Equal(t, "10", got.PercentChange.Decimal.String())
}

func TestDeriveIsStableUnderEdits(t *testing.T) {
	t.Parallel()

	tr, err := sampleEntry().Parse()
	require.NoError(t, err)
	first := Derive(tr, DefaultDeriveOptions())

	// Flip the side on the derived trade and derive again: nothing stale survives.
	first.Side = trade.Short
	second := Derive(first, DefaultDeriveOptions())
	assert.Equal(t, "101", second.ExpectedStopLoss.Decimal.String())
	assert.Equal(t, "98", second.ExpectedTarget.Decimal.String())
	assert.Equal(t, "-100", second.PnL.Decimal.String())
	assert.Equal(t, "-10", second.PercentChange.Decimal.String())

	// Dropping the ratio clears both levels together.
	second.Ratio = 0
	third := Derive(second, DefaultDeriveOptions())
	assert.False(t, third.ExpectedStopLoss.Valid)
	assert.False(t, third.ExpectedTarget.Valid)
}

func TestDeriveExitPrecedence(t *testing.T) {
	t.Parallel()

	tr, err := sampleEntry().Parse()
	require.NoError(t, err)
	tr.ActualStopLoss = decimal.NewNullDecimal(d("95"))
	got := Derive(tr, DefaultDeriveOptions())
	assert.Equal(t, "100", got.PnL.Decimal.String(), "target wins over stop-loss")

	tr.ActualTarget = decimal.NullDecimal{}
	got = Derive(tr, DefaultDeriveOptions())
	assert.Equal(t, "-50", got.PnL.Decimal.String())
}

func TestDeriveRecordedPnL(t *testing.T) {
	t.Parallel()

	tr, err := Entry{Ticker: "msft", Side: "long", EntryPrice: "200", Size: "5", PnL: "-20"}.Parse()
	require.NoError(t, err)
	got := Derive(tr, DefaultDeriveOptions())
	require.True(t, got.PnL.Valid)
	assert.Equal(t, "-20", got.PnL.Decimal.String())
	assert.Equal(t, "-2", got.PercentChange.Decimal.String())

	tr.ActualTarget = decimal.NewNullDecimal(d("210"))
	got = Derive(tr, DefaultDeriveOptions())
	assert.Equal(t, "50", got.PnL.Decimal.String(), "a realized exit overrides the recorded P&L")
}

func TestDeriveNotComputable(t *testing.T) {
	t.Parallel()

	tr, err := Entry{Ticker: "x", Side: "long", EntryPrice: "10", ActualTarget: "12"}.Parse()
	require.NoError(t, err)
	got := Derive(tr, DefaultDeriveOptions())
	assert.False(t, got.PnL.Valid, "no size")
	assert.False(t, got.PercentChange.Valid)
	assert.False(t, got.ExpectedStopLoss.Valid, "no ratio")
}

func TestDeriveRiskPctOption(t *testing.T) {
	t.Parallel()

	tr, err := sampleEntry().Parse()
	require.NoError(t, err)
	got := Derive(tr, DeriveOptions{RiskPct: d("0.02")})
	assert.Equal(t, "98", got.ExpectedStopLoss.Decimal.String())
	assert.Equal(t, "104", got.ExpectedTarget.Decimal.String())
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tr, err := sampleEntry().Parse()
	require.NoError(t, err)
	tr.Tags = []trade.Tag{trade.FOMOTrade, trade.PerfectSetup}
	_ = Derive(tr, DefaultDeriveOptions())
	assert.Equal(t, []trade.Tag{trade.FOMOTrade, trade.PerfectSetup}, tr.Tags)
	assert.False(t, tr.PnL.Valid)
}
