package cache

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/market-sync/interfaces"
)

func snapshot(value string, changePct string, timestamp int64) interfaces.PriceSnapshot {
	return interfaces.PriceSnapshot{
		Value:     decimal.RequireFromString(value),
		ChangePct: decimal.RequireFromString(changePct),
		Timestamp: timestamp,
	}
}

func TestPriceCache_PutGet(t *testing.T) {
	c := NewPriceCache()

	c.Put("bitcoin", "USD", snapshot("45000", "1.5", 1000))

	got, found := c.Get("bitcoin", "USD")
	require.True(t, found)
	assert.True(t, got.Equal(snapshot("45000", "1.5", 1000)))

	// Same asset, different currency is a distinct entry
	_, found = c.Get("bitcoin", "EUR")
	assert.False(t, found)

	// Never synced asset
	_, found = c.Get("ethereum", "USD")
	assert.False(t, found)
}

func TestPriceCache_GetMany(t *testing.T) {
	c := NewPriceCache()

	c.Put("bitcoin", "USD", snapshot("45000", "1.5", 1000))
	c.Put("ethereum", "USD", snapshot("3000", "-0.8", 1100))

	result := c.GetMany([]string{"bitcoin", "ethereum", "unknown"}, "USD")
	assert.Len(t, result, 2)
	assert.Contains(t, result, "bitcoin")
	assert.Contains(t, result, "ethereum")
	assert.NotContains(t, result, "unknown")
}

func TestPriceCache_OldestTimestamp(t *testing.T) {
	c := NewPriceCache()

	c.Put("bitcoin", "USD", snapshot("45000", "1.5", 1000))
	c.Put("ethereum", "USD", snapshot("3000", "-0.8", 900))
	c.Put("solana", "USD", snapshot("150", "2.2", 1200))

	// Minimum over exactly the requested set
	oldest, ok := c.OldestTimestamp([]string{"bitcoin", "solana"}, "USD")
	require.True(t, ok)
	assert.Equal(t, int64(1000), oldest)

	oldest, ok = c.OldestTimestamp([]string{"bitcoin", "ethereum", "solana"}, "USD")
	require.True(t, ok)
	assert.Equal(t, int64(900), oldest)

	// Any never-synced id forces a full resync
	_, ok = c.OldestTimestamp([]string{"bitcoin", "never-synced"}, "USD")
	assert.False(t, ok)

	// Cached in another currency does not count
	_, ok = c.OldestTimestamp([]string{"bitcoin"}, "EUR")
	assert.False(t, ok)

	// Empty request has no oldest member
	_, ok = c.OldestTimestamp(nil, "USD")
	assert.False(t, ok)
}

func TestPriceCache_PutManyIfNewer(t *testing.T) {
	c := NewPriceCache()

	// A live write lands first
	c.Put("safe-coin", "USD", snapshot("3.5", "0.2", 2000))

	// A fallback-derived batch with an older timestamp must not clobber
	// it, while assets without entries are still written
	written := c.PutManyIfNewer([]interfaces.PriceEntry{
		{AssetID: "safe-coin", Currency: "USD", Snapshot: snapshot("3.0", "-1.0", 1500)},
		{AssetID: "safe4-coin", Currency: "USD", Snapshot: snapshot("3.0", "-1.0", 1500)},
	})
	assert.Equal(t, 1, written)

	got, found := c.Get("safe-coin", "USD")
	require.True(t, found)
	assert.True(t, got.Equal(snapshot("3.5", "0.2", 2000)), "newer live write was overwritten")

	got, found = c.Get("safe4-coin", "USD")
	require.True(t, found)
	assert.True(t, got.Equal(snapshot("3.0", "-1.0", 1500)))

	// Equal timestamps are replayed in place: idempotent state
	written = c.PutManyIfNewer([]interfaces.PriceEntry{
		{AssetID: "safe4-coin", Currency: "USD", Snapshot: snapshot("3.0", "-1.0", 1500)},
	})
	assert.Equal(t, 1, written)
	got, _ = c.Get("safe4-coin", "USD")
	assert.True(t, got.Equal(snapshot("3.0", "-1.0", 1500)))
}

func TestPriceCache_Delete(t *testing.T) {
	c := NewPriceCache()

	c.Put("bitcoin", "USD", snapshot("45000", "1.5", 1000))
	c.Put("bitcoin", "EUR", snapshot("38000", "1.4", 1000))
	c.Put("ethereum", "USD", snapshot("3000", "-0.8", 1000))

	c.Delete("bitcoin")

	_, found := c.Get("bitcoin", "USD")
	assert.False(t, found)
	_, found = c.Get("bitcoin", "EUR")
	assert.False(t, found)
	_, found = c.Get("ethereum", "USD")
	assert.True(t, found)
}

func TestPriceCache_DeleteContractStyleID(t *testing.T) {
	c := NewPriceCache()

	contractID := "ethereum|eip20:0x96f59c9d155d598d4f895f07dd6991ccb5fa7dc7"
	c.Put(contractID, "USD", snapshot("3.0", "0", 1000))

	c.Delete(contractID)
	_, found := c.Get(contractID, "USD")
	assert.False(t, found)
	assert.Equal(t, 0, c.ItemCount())
}

func TestPriceCache_DeleteLeavesColonSuffixedNeighbors(t *testing.T) {
	c := NewPriceCache()

	// One id is a ":"-suffix of the other; only the exact id may go
	c.Put("eip20:0xabc", "USD", snapshot("1.0", "0", 1000))
	c.Put("0xabc", "USD", snapshot("2.0", "0", 1000))

	c.Delete("0xabc")

	_, found := c.Get("0xabc", "USD")
	assert.False(t, found)
	got, found := c.Get("eip20:0xabc", "USD")
	assert.True(t, found)
	assert.Equal(t, "1", got.Value.String())

	// And the other direction: deleting the longer id spares the short one
	c.Put("0xabc", "USD", snapshot("2.0", "0", 1000))
	c.Delete("eip20:0xabc")

	_, found = c.Get("eip20:0xabc", "USD")
	assert.False(t, found)
	_, found = c.Get("0xabc", "USD")
	assert.True(t, found)
}

func TestPriceCache_BatchVisibility(t *testing.T) {
	c := NewPriceCache()

	group := []string{"safe-coin", "safe4-coin", "Safe4USDT"}
	var wg sync.WaitGroup

	// Writers apply whole-group batches with increasing timestamps while
	// readers check that every observed group state is internally
	// consistent: all members share one timestamp
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ts := int64(1); ts <= 200; ts++ {
			entries := make([]interfaces.PriceEntry, 0, len(group))
			for _, id := range group {
				entries = append(entries, interfaces.PriceEntry{
					AssetID:  id,
					Currency: "USD",
					Snapshot: snapshot("3.0", "0", ts),
				})
			}
			c.PutMany(entries)
		}
	}()

	var inconsistent bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			result := c.GetMany(group, "USD")
			if len(result) == 0 {
				continue
			}
			first := result[group[0]].Timestamp
			for _, snap := range result {
				if snap.Timestamp != first {
					inconsistent = true
				}
			}
		}
	}()

	wg.Wait()
	assert.False(t, inconsistent, "reader observed a half-applied batch")
}
