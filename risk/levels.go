// Package risk derives planned stop-loss and target levels and the money at
// risk behind them.
package risk

import (
	"strings"

	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of fractional digits levels are rounded to.
// Four digits keep sub-dollar tickers meaningful.
const DefaultPrecision int32 = 4

// DefaultRiskPct is the share of the entry price risked per trade (1%).
var DefaultRiskPct = decimal.New(1, -2)

// Levels are the planned exits of a trade entered at Entry on Side.
type Levels struct {
	Entry    decimal.Decimal
	Side     trade.Side
	StopLoss decimal.Decimal
	Target   decimal.Decimal
}

// Invalid reports levels that make no economic sense: a stop or target at or
// below zero, or one not strictly on its side of the entry. Such levels are
// returned as computed, not clamped.
func (l Levels) Invalid() bool {
	if !l.StopLoss.IsPositive() || !l.Target.IsPositive() {
		return true
	}
	return !l.ordered()
}

// ordered reports target > entry > stop for a long and the reverse for a
// short.
func (l Levels) ordered() bool {
	switch l.Side {
	case trade.Long:
		return l.Target.GreaterThan(l.Entry) && l.Entry.GreaterThan(l.StopLoss)
	case trade.Short:
		return l.StopLoss.GreaterThan(l.Entry) && l.Entry.GreaterThan(l.Target)
	}
	return false
}

// DeriveLevels computes levels at DefaultPrecision.
func DeriveLevels(entry decimal.Decimal, ratio trade.Ratio, side trade.Side, riskPct decimal.Decimal) (Levels, bool) {
	return DeriveLevelsPrecision(entry, ratio, side, riskPct, DefaultPrecision)
}

// DeriveLevelsPrecision computes the stop-loss one risk unit
// (entry * riskPct) against the trade and the target ratio risk units in
// its favour, rounded to places digits (never fewer than DefaultPrecision).
// Sub-penny entries get as many more digits as it takes for both levels to
// stay strictly apart from the entry.
//
// ok is false when entry is not positive, the ratio is outside the catalog,
// the side is unknown or riskPct is not positive.
func DeriveLevelsPrecision(entry decimal.Decimal, ratio trade.Ratio, side trade.Side, riskPct decimal.Decimal, places int32) (Levels, bool) {
	if !entry.IsPositive() || !ratio.Valid() || !side.Valid() || !riskPct.IsPositive() {
		return Levels{}, false
	}
	if places < DefaultPrecision {
		places = DefaultPrecision
	}

	riskAmount := entry.Mul(riskPct)
	reward := riskAmount.Mul(ratio.Decimal())
	sign := decimal.NewFromInt(side.Sign())

	stop := entry.Sub(riskAmount.Mul(sign))
	target := entry.Add(reward.Mul(sign))

	// The exact levels are ordered, so this stops by their own scale.
	for {
		l := Levels{
			Entry:    entry,
			Side:     side,
			StopLoss: stop.Round(places),
			Target:   target.Round(places),
		}
		if l.ordered() {
			return l, true
		}
		places++
	}
}

// ParseEntry reads a price typed by the trader. ok is false for anything that
// is not a positive number.
func ParseEntry(s string) (decimal.Decimal, bool) {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !p.IsPositive() {
		return decimal.Zero, false
	}
	return p, true
}
