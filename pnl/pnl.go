// Package pnl computes realized profit and loss of a closed trade.
//
// Every function reports "not computable" as an invalid NullDecimal rather
// than a zero, so callers can tell a flat trade from a missing one.
package pnl

import (
	"strings"

	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentPlaces is the number of fractional digits percent returns keep.
const PercentPlaces int32 = 8

// PnL is the signed currency result of exiting a position of size at exit.
// long: (exit-entry)*shares. short: (entry-exit)*shares.
func PnL(entry, exit decimal.Decimal, size trade.SizeSpec, side trade.Side) decimal.NullDecimal {
	if !entry.IsPositive() || !exit.IsPositive() || !side.Valid() {
		return decimal.NullDecimal{}
	}
	resolved, ok := size.Resolve(entry)
	if !ok {
		return decimal.NullDecimal{}
	}
	move := exit.Sub(entry).Mul(decimal.NewFromInt(side.Sign()))
	return decimal.NewNullDecimal(move.Mul(resolved.Shares))
}

// Percent is the signed return on the entry price, in percent.
func Percent(entry, exit decimal.Decimal, side trade.Side) decimal.NullDecimal {
	if !entry.IsPositive() || !exit.IsPositive() || !side.Valid() {
		return decimal.NullDecimal{}
	}
	move := exit.Sub(entry).Mul(decimal.NewFromInt(side.Sign()))
	return decimal.NewNullDecimal(move.Mul(hundred).DivRound(entry, PercentPlaces))
}

// PercentOfCost is the return a recorded P&L implies on the cost of the
// position (entry * shares).
func PercentOfCost(pnl, entry, shares decimal.Decimal) decimal.NullDecimal {
	cost := entry.Mul(shares).Abs()
	if !cost.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(pnl.Mul(hundred).DivRound(cost, PercentPlaces))
}

// FromText takes the values as a trader types them. Anything unparseable
// makes both results invalid.
func FromText(entry, exit, size, side string) (pnl, percent decimal.NullDecimal) {
	e, err := decimal.NewFromString(strings.TrimSpace(entry))
	if err != nil {
		return
	}
	x, err := decimal.NewFromString(strings.TrimSpace(exit))
	if err != nil {
		return
	}
	spec, err := trade.ParseSizeSpec(size)
	if err != nil {
		return
	}
	s, err := trade.ParseSide(side)
	if err != nil {
		return
	}
	pnl = PnL(e, x, spec, s)
	if !pnl.Valid {
		return decimal.NullDecimal{}, decimal.NullDecimal{}
	}
	return pnl, Percent(e, x, s)
}
