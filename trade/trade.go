// Package trade defines the trade record shared by every part of the journal,
// together with the fixed catalogs its categorical fields draw from.
package trade

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownSide      = errors.New("unknown side")
	ErrUnknownRatio     = errors.New("unknown risk/reward ratio")
	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrUnknownCondition = errors.New("unknown market condition")
	ErrUnknownTag       = errors.New("unknown trade tag")
	ErrInvalidSize      = errors.New("invalid position size")
	ErrInvalidDate      = errors.New("invalid date")
)

// Side is the direction of a trade.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

func (s Side) Valid() bool { return s == Long || s == Short }

// Sign is +1 for long, -1 for short and 0 for anything else.
func (s Side) Sign() int64 {
	switch s {
	case Long:
		return 1
	case Short:
		return -1
	}
	return 0
}

// ParseSide accepts "long" or "short" in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case Long:
		return Long, nil
	case Short:
		return Short, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

// Trade is one logged trade.
//
// ExpectedStopLoss, ExpectedTarget, PnL and PercentChange are derived fields;
// they are only ever written by the journal's derivation step.
type Trade struct {
	ID     string `json:"id"`
	Ticker string `json:"ticker"`
	Side   Side   `json:"side"`

	EntryPrice decimal.Decimal `json:"entryPrice"`
	Size       Size            `json:"positionSize"`
	Ratio      Ratio           `json:"riskRewardRatio,omitempty"`

	ExpectedStopLoss decimal.NullDecimal `json:"expectedStopLoss"`
	ExpectedTarget   decimal.NullDecimal `json:"expectedTarget"`
	ActualStopLoss   decimal.NullDecimal `json:"actualStopLoss"`
	ActualTarget     decimal.NullDecimal `json:"actualTarget"`

	// RecordedPnL is a P&L typed in by hand or restored from a backup. It only
	// counts when no realized exit is known.
	RecordedPnL   decimal.NullDecimal `json:"recordedPnl"`
	PnL           decimal.NullDecimal `json:"pnl"`
	PercentChange decimal.NullDecimal `json:"percentageChange"`

	Strategy        Strategy        `json:"strategy,omitempty"`
	MarketCondition MarketCondition `json:"marketCondition,omitempty"`
	Tags            []Tag           `json:"tags,omitempty"`

	ExpectedHoldTime string `json:"expectedHoldTime,omitempty"`
	HoldTime         string `json:"holdTime,omitempty"`
	Notes            string `json:"notes,omitempty"`

	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Exit returns the realized exit price. When both actual levels are set the
// target wins over the stop-loss.
func (t Trade) Exit() (decimal.Decimal, bool) {
	if t.ActualTarget.Valid {
		return t.ActualTarget.Decimal, true
	}
	if t.ActualStopLoss.Valid {
		return t.ActualStopLoss.Decimal, true
	}
	return decimal.Zero, false
}

// IsWin reports a strictly positive P&L.
func (t Trade) IsWin() bool { return t.PnL.Valid && t.PnL.Decimal.IsPositive() }

// IsLoss reports a strictly negative P&L.
func (t Trade) IsLoss() bool { return t.PnL.Valid && t.PnL.Decimal.IsNegative() }

// Clone returns a copy that shares no slices with t.
func (t Trade) Clone() Trade {
	if t.Tags != nil {
		t.Tags = append([]Tag(nil), t.Tags...)
	}
	return t
}

// NormalizeTicker trims and upper-cases a symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "1/2/2006", time.RFC3339, "2006/01/02"}

// ParseDate reads a calendar date. An empty string is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
