package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/trade"
)

func (rc *RootConfig) deriveOptions() journal.DeriveOptions {
	return journal.DeriveOptions{
		RiskPct:   rc.cfg.Risk.RiskPctDecimal(),
		Precision: rc.cfg.Risk.Precision,
	}
}

func (rc *RootConfig) openStore() (journal.Store, error) {
	if rc.cfg.Store.Type == "memory" {
		return journal.NewMemoryStore(), nil
	}
	path := rc.cfg.Store.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return journal.NewSQLiteStore(path, rc.log)
}

// session is a loaded journal. Commands that change it call save.
type session struct {
	rc    *RootConfig
	store journal.Store
	book  *journal.Book
	data  journal.JournalData
}

func (rc *RootConfig) open(ctx context.Context) (*session, error) {
	store, err := rc.openStore()
	if err != nil {
		return nil, err
	}
	book, data, err := journal.Load(ctx, store, rc.deriveOptions())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load journal: %w", err)
	}
	rc.log.Debug().Int("trades", book.Len()).Msg("journal loaded")
	return &session{rc: rc, store: store, book: book, data: data}, nil
}

func (s *session) save(ctx context.Context) error {
	if err := journal.Save(ctx, s.store, s.book, s.data); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	s.rc.log.Debug().Int("trades", s.book.Len()).Msg("journal saved")
	return nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// resolveID finds the trade a user refers to by its full id or a unique
// prefix or suffix of it.
func (s *session) resolveID(ref string) (trade.Trade, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if t, err := s.book.Get(ref); err == nil {
		return t, nil
	}
	var matches []trade.Trade
	for _, t := range s.book.Trades() {
		if ref != "" && (strings.HasPrefix(t.ID, ref) || strings.HasSuffix(t.ID, ref)) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return trade.Trade{}, fmt.Errorf("%w: %s", journal.ErrTradeNotFound, ref)
	case 1:
		return matches[0], nil
	}
	return trade.Trade{}, fmt.Errorf("id %s is ambiguous: %d trades match", ref, len(matches))
}
