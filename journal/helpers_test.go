package journal

import (
	"testing"
	"time"

	"github.com/rustyeddy/tradebook/pkg/id"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedIDs() *id.Generator {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	return id.NewGenerator(func() time.Time { return at })
}

func newTestBook(t *testing.T) *Book {
	t.Helper()
	return NewBook(DefaultDeriveOptions(), WithIDs(fixedIDs()))
}

func sampleEntry() Entry {
	return Entry{
		Date:            "2024-04-02",
		Ticker:          " aapl ",
		Side:            "long",
		EntryPrice:      "100",
		Size:            "10 shares ($1000)",
		Ratio:           "1:2",
		ActualTarget:    "110",
		Strategy:        "Breakout",
		MarketCondition: "Bullish",
		Tags:            "great_exit; perfect_setup",
		HoldTime:        "2 days",
		Notes:           "clean break of the range",
	}
}
