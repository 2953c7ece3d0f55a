package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradebook/trade"
)

// Load reads the trades and journal data from store into a new Book. Missing
// keys yield an empty book and zero JournalData. Stored trades are derived
// again with opts.
func Load(ctx context.Context, store Store, opts DeriveOptions, options ...BookOption) (*Book, JournalData, error) {
	book := NewBook(opts, options...)
	var data JournalData

	raw, err := store.Get(ctx, KeyTrades)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, data, err
	default:
		var trades []trade.Trade
		if err := json.Unmarshal(raw, &trades); err != nil {
			return nil, data, fmt.Errorf("decode %s: %w", KeyTrades, err)
		}
		book.Append(trades...)
	}

	raw, err = store.Get(ctx, KeyJournalData)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, data, err
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, data, fmt.Errorf("decode %s: %w", KeyJournalData, err)
		}
	}
	return book, data, nil
}

// Save writes the whole book and the journal data to store in one PutAll, so
// the two keys never disagree.
func Save(ctx context.Context, store Store, book *Book, data JournalData) error {
	trades, err := json.Marshal(book.Trades())
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyTrades, err)
	}
	journalData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyJournalData, err)
	}
	return store.PutAll(ctx,
		KV{Key: KeyTrades, Value: trades},
		KV{Key: KeyJournalData, Value: journalData},
	)
}
