package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradebook/risk"
	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
)

// Entry is a trade as typed by the trader or read from a CSV row: raw text
// for every input field. Derived fields have no place here.
type Entry struct {
	Date             string
	Ticker           string
	Side             string
	EntryPrice       string
	Size             string
	Ratio            string
	ActualStopLoss   string
	ActualTarget     string
	PnL              string
	Strategy         string
	MarketCondition  string
	Tags             string
	ExpectedHoldTime string
	HoldTime         string
	Notes            string
}

// Parse validates the entry and returns the trade it describes. Derived
// fields are left for Derive.
func (e Entry) Parse() (trade.Trade, error) {
	var t trade.Trade
	var err error

	t.Ticker = trade.NormalizeTicker(e.Ticker)
	if t.Ticker == "" {
		return trade.Trade{}, ErrInvalidTicker
	}
	if t.Side, err = trade.ParseSide(e.Side); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %q", ErrInvalidSide, e.Side)
	}
	entry, ok := risk.ParseEntry(e.EntryPrice)
	if !ok {
		return trade.Trade{}, fmt.Errorf("%w: %q", ErrInvalidEntryPrice, e.EntryPrice)
	}
	t.EntryPrice = entry

	spec, err := trade.ParseSizeSpec(e.Size)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %q", ErrInvalidSize, e.Size)
	}
	if spec.Kind != trade.SizeUnset {
		if t.Size, ok = spec.Resolve(entry); !ok {
			return trade.Trade{}, fmt.Errorf("%w: %q", ErrInvalidSize, e.Size)
		}
	}

	if t.Ratio, err = trade.ParseRatio(e.Ratio); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %q", ErrInvalidRatio, e.Ratio)
	}
	if t.ActualStopLoss, err = parsePrice(e.ActualStopLoss); err != nil {
		return trade.Trade{}, fmt.Errorf("stop-loss: %w", err)
	}
	if t.ActualTarget, err = parsePrice(e.ActualTarget); err != nil {
		return trade.Trade{}, fmt.Errorf("target: %w", err)
	}
	if t.RecordedPnL, err = parseMoney(e.PnL); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %q", ErrInvalidPnL, e.PnL)
	}

	if t.Strategy, err = trade.ParseStrategy(e.Strategy); err != nil {
		return trade.Trade{}, err
	}
	if t.MarketCondition, err = trade.ParseMarketCondition(e.MarketCondition); err != nil {
		return trade.Trade{}, err
	}
	if t.Tags, err = trade.ParseTags(e.Tags); err != nil {
		return trade.Trade{}, err
	}
	if t.Date, err = trade.ParseDate(e.Date); err != nil {
		return trade.Trade{}, err
	}

	t.ExpectedHoldTime = strings.TrimSpace(e.ExpectedHoldTime)
	t.HoldTime = strings.TrimSpace(e.HoldTime)
	t.Notes = strings.TrimSpace(e.Notes)
	return t, nil
}

// EntryOf turns a stored trade back into the entry that produces it.
func EntryOf(t trade.Trade) Entry {
	return Entry{
		Date:             trade.FormatDate(t.Date),
		Ticker:           t.Ticker,
		Side:             string(t.Side),
		EntryPrice:       t.EntryPrice.String(),
		Size:             t.Size.Spec().String(),
		Ratio:            t.Ratio.String(),
		ActualStopLoss:   nullString(t.ActualStopLoss),
		ActualTarget:     nullString(t.ActualTarget),
		PnL:              nullString(t.RecordedPnL),
		Strategy:         string(t.Strategy),
		MarketCondition:  string(t.MarketCondition),
		Tags:             trade.JoinTags(t.Tags),
		ExpectedHoldTime: t.ExpectedHoldTime,
		HoldTime:         t.HoldTime,
		Notes:            t.Notes,
	}
}

func parsePrice(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	p, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil || !p.IsPositive() {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return decimal.NewNullDecimal(p), nil
}

// parseMoney reads a signed amount such as "-12.50", "$1,200" or "N/A".
func parseMoney(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "n/a") {
		return decimal.NullDecimal{}, nil
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if neg {
		v = v.Neg()
	}
	return decimal.NewNullDecimal(v), nil
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
