package risk

import "github.com/shopspring/decimal"

// AmountAtRisk is the currency lost if a position of shares entered at entry
// is stopped out at stop.
func AmountAtRisk(shares, entry, stop decimal.Decimal) decimal.Decimal {
	return shares.Abs().Mul(entry.Sub(stop).Abs())
}

// RR is the reward distance over the risk distance of a level triple. It is
// zero when nothing is at risk.
func RR(entry, stop, target decimal.Decimal) decimal.Decimal {
	risk := entry.Sub(stop).Abs()
	if risk.IsZero() {
		return decimal.Zero
	}
	return target.Sub(entry).Abs().DivRound(risk, 8)
}

// RiskPct is the share of equity an amount represents. ok is false when
// equity is not positive.
func RiskPct(amount, equity decimal.Decimal) (decimal.Decimal, bool) {
	if !equity.IsPositive() {
		return decimal.Zero, false
	}
	return amount.DivRound(equity, 8), true
}
