package journal

import (
	"fmt"

	"github.com/rustyeddy/tradebook/pkg/id"
	"github.com/rustyeddy/tradebook/trade"
)

// Book is an in-memory trade collection in insertion order. Every trade it
// holds is fully derived. A Book never persists itself; see Load and Save.
type Book struct {
	trades []trade.Trade
	opts   DeriveOptions
	ids    *id.Generator
}

type BookOption func(*Book)

// WithIDs sets the generator used for new ids and creation times.
func WithIDs(g *id.Generator) BookOption {
	return func(b *Book) { b.ids = g }
}

func NewBook(opts DeriveOptions, options ...BookOption) *Book {
	b := &Book{opts: opts.withDefaults()}
	for _, o := range options {
		o(b)
	}
	if b.ids == nil {
		b.ids = id.NewGenerator(nil)
	}
	return b
}

// Options returns the derivation options the book applies.
func (b *Book) Options() DeriveOptions { return b.opts }

func (b *Book) Len() int { return len(b.trades) }

// Trades returns a copy of the collection.
func (b *Book) Trades() []trade.Trade {
	out := make([]trade.Trade, len(b.trades))
	for i, t := range b.trades {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the trade with the given id.
func (b *Book) Get(tradeID string) (trade.Trade, error) {
	i := b.index(tradeID)
	if i < 0 {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrTradeNotFound, tradeID)
	}
	return b.trades[i].Clone(), nil
}

// Add parses e, mints an id and creation time and appends the derived trade.
func (b *Book) Add(e Entry) (trade.Trade, error) {
	t, err := e.Parse()
	if err != nil {
		return trade.Trade{}, err
	}
	return b.Append(t)[0], nil
}

// Append adds already parsed trades. Trades without an id get a fresh id and
// creation time; every trade is re-derived with the book's options.
func (b *Book) Append(ts ...trade.Trade) []trade.Trade {
	out := make([]trade.Trade, 0, len(ts))
	for _, t := range ts {
		if t.ID == "" {
			t.ID, t.CreatedAt = b.ids.Mint()
		}
		t = Derive(t, b.opts)
		b.trades = append(b.trades, t)
		out = append(out, t.Clone())
	}
	return out
}

// Update replaces the inputs of the trade with the given id by e and derives
// it again. The id and creation time are kept.
func (b *Book) Update(tradeID string, e Entry) (trade.Trade, error) {
	i := b.index(tradeID)
	if i < 0 {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrTradeNotFound, tradeID)
	}
	t, err := e.Parse()
	if err != nil {
		return trade.Trade{}, err
	}
	t.ID = b.trades[i].ID
	t.CreatedAt = b.trades[i].CreatedAt
	b.trades[i] = Derive(t, b.opts)
	return b.trades[i].Clone(), nil
}

// Delete removes the trade with the given id.
func (b *Book) Delete(tradeID string) error {
	i := b.index(tradeID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTradeNotFound, tradeID)
	}
	b.trades = append(b.trades[:i], b.trades[i+1:]...)
	return nil
}

func (b *Book) index(tradeID string) int {
	for i, t := range b.trades {
		if t.ID == tradeID {
			return i
		}
	}
	return -1
}
