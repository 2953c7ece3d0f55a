package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAddMintsIDs(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	a, err := b.Add(sampleEntry())
	require.NoError(t, err)
	c, err := b.Add(sampleEntry())
	require.NoError(t, err)

	assert.Len(t, a.ID, 26)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Less(t, a.ID, c.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, 2, b.Len())
	assert.True(t, a.PnL.Valid)
}

func TestBookAddRejectsInvalid(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	e := sampleEntry()
	e.EntryPrice = "-1"
	_, err := b.Add(e)
	assert.ErrorIs(t, err, ErrInvalidEntryPrice)
	assert.Zero(t, b.Len())
}

func TestBookUpdateKeepsIdentity(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	orig, err := b.Add(sampleEntry())
	require.NoError(t, err)

	e := EntryOf(orig)
	e.Side = "short"
	e.EntryPrice = "50"
	e.ActualTarget = ""
	e.ActualStopLoss = "51"
	upd, err := b.Update(orig.ID, e)
	require.NoError(t, err)

	assert.Equal(t, orig.ID, upd.ID)
	assert.Equal(t, orig.CreatedAt, upd.CreatedAt)
	assert.Equal(t, "50.5", upd.ExpectedStopLoss.Decimal.String())
	assert.Equal(t, "49", upd.ExpectedTarget.Decimal.String())
	assert.Equal(t, "-10", upd.PnL.Decimal.String())

	got, err := b.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, upd, got)

	_, err = b.Update("missing", e)
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestBookDelete(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	a, _ := b.Add(sampleEntry())
	c, _ := b.Add(sampleEntry())

	require.NoError(t, b.Delete(a.ID))
	assert.ErrorIs(t, b.Delete(a.ID), ErrTradeNotFound)
	trades := b.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, c.ID, trades[0].ID)
}

func TestBookTradesIsACopy(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	_, _ = b.Add(sampleEntry())
	trades := b.Trades()
	trades[0].Ticker = "CHANGED"
	trades[0].Tags[0] = "x"

	again := b.Trades()
	assert.Equal(t, "AAPL", again[0].Ticker)
	assert.NotEqual(t, "x", string(again[0].Tags[0]))
}

func TestBookUpdateReconvertsDollarSize(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	e := sampleEntry()
	e.EntryPrice = "4"
	e.Size = "$1,000"
	e.ActualTarget = "5"
	orig, err := b.Add(e)
	require.NoError(t, err)
	assert.Equal(t, "250 shares ($1000)", orig.Size.String())
	assert.Equal(t, "250", orig.PnL.Decimal.String())

	edit := EntryOf(orig)
	assert.Equal(t, "$1000", edit.Size)
	edit.EntryPrice = "5"
	edit.ActualTarget = "6"
	upd, err := b.Update(orig.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "200 shares ($1000)", upd.Size.String())
	assert.Equal(t, "200", upd.PnL.Decimal.String())
}
