package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyStore(t *testing.T) {
	t.Parallel()

	book, data, err := Load(context.Background(), NewMemoryStore(), DefaultDeriveOptions())
	require.NoError(t, err)
	assert.Zero(t, book.Len())
	assert.True(t, data.PostTrade.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			book := newTestBook(t)
			_, err := book.Add(sampleEntry())
			require.NoError(t, err)
			_, err = book.Add(Entry{Ticker: "spy", Side: "short", EntryPrice: "500", Size: "2", PnL: "-3.5"})
			require.NoError(t, err)

			data := JournalData{PostTrade: Reflection{
				FollowedPlan: PlanPartially,
				DidWell:      "waited for the retest",
				Emotion:      Anxious,
				TomorrowPlan: "size down before CPI",
			}}
			require.NoError(t, Save(ctx, s, book, data))

			loaded, gotData, err := Load(ctx, s, DefaultDeriveOptions())
			require.NoError(t, err)
			assert.Equal(t, data, gotData)

			want := book.Trades()
			got := loaded.Trades()
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID)
				assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
				assert.Equal(t, want[i].Ticker, got[i].Ticker)
				assert.Equal(t, want[i].Size.String(), got[i].Size.String())
				assert.True(t, want[i].PnL.Decimal.Equal(got[i].PnL.Decimal))
				assert.Equal(t, want[i].Tags, got[i].Tags)
			}
		})
	}
}

func TestLoadCorruptTrades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, KeyTrades, []byte("{not json")))
	_, _, err := Load(ctx, s, DefaultDeriveOptions())
	assert.ErrorContains(t, err, "decode trades")
}

// batchStore records PutAll calls and refuses single puts.
type batchStore struct {
	*MemoryStore
	batches [][]KV
}

func (b *batchStore) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("single put")
}

func (b *batchStore) PutAll(ctx context.Context, kvs ...KV) error {
	b.batches = append(b.batches, kvs)
	return b.MemoryStore.PutAll(ctx, kvs...)
}

func TestSaveWritesBothKeysTogether(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := &batchStore{MemoryStore: NewMemoryStore()}
	book := newTestBook(t)
	_, err := book.Add(sampleEntry())
	require.NoError(t, err)

	require.NoError(t, Save(ctx, s, book, JournalData{PostTrade: Reflection{Emotion: Happy}}))
	require.Len(t, s.batches, 1)
	require.Len(t, s.batches[0], 2)
	assert.Equal(t, KeyTrades, s.batches[0][0].Key)
	assert.Equal(t, KeyJournalData, s.batches[0][1].Key)

	loaded, data, err := Load(ctx, s, DefaultDeriveOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	assert.Equal(t, Happy, data.PostTrade.Emotion)
}

func TestSaveFailureLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	book := newTestBook(t)
	_, err := book.Add(sampleEntry())
	require.NoError(t, err)

	assert.ErrorIs(t, Save(ctx, s, book, JournalData{}), context.Canceled)
	_, err = s.Get(context.Background(), KeyTrades)
	assert.ErrorIs(t, err, ErrNotFound)
}
