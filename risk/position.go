package risk

import "github.com/shopspring/decimal"

// SharesForRisk sizes a position so that hitting stop costs riskPct of
// equity. The count is rounded down to whole shares.
func SharesForRisk(equity, riskPct, entry, stop decimal.Decimal) (decimal.Decimal, bool) {
	perShare := entry.Sub(stop).Abs()
	if !equity.IsPositive() || !riskPct.IsPositive() || !perShare.IsPositive() {
		return decimal.Zero, false
	}
	budget := equity.Mul(riskPct)
	return budget.Div(perShare).Floor(), true
}
