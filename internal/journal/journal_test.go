package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "desk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestRecordAndListOrders(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.RecordOrder(ctx, "bid", 100, 2500, 1))
	require.NoError(t, j.RecordOrder(ctx, "ask", 50, 2600, 2))

	orders, err := j.RecentOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// newest first
	assert.Equal(t, uint64(2), orders[0].OrderID)
	assert.Equal(t, "ask", orders[0].Side)
	assert.Equal(t, uint64(50), orders[0].Amount)
	assert.Equal(t, uint64(2600), orders[0].Price)
	assert.False(t, orders[0].TS.IsZero())
	assert.Equal(t, uint64(1), orders[1].OrderID)
}

func TestRecentOrdersLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, j.RecordOrder(ctx, "bid", i, i, i))
	}

	orders, err := j.RecentOrders(ctx, 3)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, uint64(5), orders[0].OrderID)
}

func TestRecordBalance(t *testing.T) {
	j := openTestJournal(t)
	require.NoError(t, j.RecordBalance(context.Background(), "bitcoin", 9001))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordOrder(ctx, "bid", 1, 1, 7))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	orders, err := j.RecentOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, uint64(7), orders[0].OrderID)
}
