package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tradebook.db")
	s, err := NewSQLiteStore(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	s, _ := newTestSQLite(t)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": s,
	}
}

func TestStoreGetPut(t *testing.T) {
	t.Parallel()

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "k", []byte(`{"a":1}`)))
			got, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(got))

			require.NoError(t, s.Put(ctx, "k", []byte(`[]`)))
			got, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	v := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", v))
	v[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryStoreHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Put(ctx, "k", nil), context.Canceled)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv", name)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tradebook.db")

	s, err := NewSQLiteStore(path, zerolog.Nop())
	require.NoError(t, err)
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, s.Put(ctx, KeyTrades, []byte(`[]`)))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, KeyTrades)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	at, err := s.UpdatedAt(ctx, KeyTrades)
	require.NoError(t, err)
	assert.True(t, at.After(before), "updated_at %s", at)

	_, err = s.UpdatedAt(ctx, KeyJournalData)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorePutAll(t *testing.T) {
	t.Parallel()

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.PutAll(ctx,
				KV{Key: KeyTrades, Value: []byte(`[]`)},
				KV{Key: KeyJournalData, Value: []byte(`{}`)},
			))
			got, err := s.Get(ctx, KeyTrades)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))
			got, err = s.Get(ctx, KeyJournalData)
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(got))
		})
	}
}

func TestSQLitePutAllRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	require.NoError(t, s.Put(ctx, KeyTrades, []byte(`["old"]`)))

	// A nil value violates the NOT NULL column after the first row is written.
	err := s.PutAll(ctx,
		KV{Key: KeyTrades, Value: []byte(`["new"]`)},
		KV{Key: KeyJournalData, Value: nil},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put journalData")

	got, err := s.Get(ctx, KeyTrades)
	require.NoError(t, err)
	assert.Equal(t, `["old"]`, string(got))
	_, err = s.Get(ctx, KeyJournalData)
	assert.ErrorIs(t, err, ErrNotFound)
}
