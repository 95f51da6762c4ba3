package scalarstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/market-sync/interfaces"
)

func TestMemoryStore_GetSet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "safe-coin")
	require.NoError(t, err)
	assert.False(t, found)

	record := interfaces.ScalarRecord{
		Value:     decimal.RequireFromString("3.0"),
		ChangePct: decimal.RequireFromString("-1.0"),
		Timestamp: 1000,
	}
	require.NoError(t, store.Set(ctx, "safe-coin", record))

	got, found, err := store.Get(ctx, "safe-coin")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Value.Equal(record.Value))
	assert.True(t, got.ChangePct.Equal(record.ChangePct))
	assert.Equal(t, int64(1000), got.Timestamp)

	// Replacement overwrites the previous record
	record.Timestamp = 2000
	require.NoError(t, store.Set(ctx, "safe-coin", record))
	got, _, err = store.Get(ctx, "safe-coin")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.Timestamp)
}
