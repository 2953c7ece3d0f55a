package journal

import (
	"github.com/rustyeddy/tradebook/pnl"
	"github.com/rustyeddy/tradebook/risk"
	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
)

// DeriveOptions parameterize the derived fields of a trade.
type DeriveOptions struct {
	RiskPct   decimal.Decimal
	Precision int32
}

func DefaultDeriveOptions() DeriveOptions {
	return DeriveOptions{RiskPct: risk.DefaultRiskPct, Precision: risk.DefaultPrecision}
}

func (o DeriveOptions) withDefaults() DeriveOptions {
	if !o.RiskPct.IsPositive() {
		o.RiskPct = risk.DefaultRiskPct
	}
	if o.Precision < risk.DefaultPrecision {
		o.Precision = risk.DefaultPrecision
	}
	return o
}

// Derive recomputes every derived field of t from its inputs in one pass:
// expected levels from entry, ratio and side, then P&L and percent change
// from the realized exit or, failing that, the recorded P&L. Fields that
// cannot be computed come back invalid.
func Derive(t trade.Trade, opts DeriveOptions) trade.Trade {
	opts = opts.withDefaults()
	t = t.Clone()
	t.Ticker = trade.NormalizeTicker(t.Ticker)
	t.Tags = trade.NormalizeTags(t.Tags)
	t.Date = trade.DateOf(t.Date)

	t.ExpectedStopLoss = decimal.NullDecimal{}
	t.ExpectedTarget = decimal.NullDecimal{}
	if levels, ok := risk.DeriveLevelsPrecision(t.EntryPrice, t.Ratio, t.Side, opts.RiskPct, opts.Precision); ok {
		t.ExpectedStopLoss = decimal.NewNullDecimal(levels.StopLoss)
		t.ExpectedTarget = decimal.NewNullDecimal(levels.Target)
	}

	t.PnL = decimal.NullDecimal{}
	t.PercentChange = decimal.NullDecimal{}
	if exit, ok := t.Exit(); ok {
		t.PnL = pnl.PnL(t.EntryPrice, exit, t.Size.Spec(), t.Side)
		if t.PnL.Valid {
			t.PercentChange = pnl.Percent(t.EntryPrice, exit, t.Side)
		}
	} else if t.RecordedPnL.Valid {
		t.PnL = t.RecordedPnL
		t.PercentChange = pnl.PercentOfCost(t.RecordedPnL.Decimal, t.EntryPrice, t.Size.Shares)
	}
	return t
}
