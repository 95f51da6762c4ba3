package fallback

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/openwallet/market-sync/cache"
	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/interfaces"
	"github.com/openwallet/market-sync/interfaces/mocks"
	"github.com/openwallet/market-sync/scalarstore"
)

var testNow = time.Unix(1700000000, 0)

func newTestPolicy(t *testing.T, store interfaces.PersistentScalarStore) (*Policy, *cache.PriceCache) {
	t.Helper()
	priceCache := cache.NewPriceCache()
	policy := NewPolicy(priceCache, store, config.DefaultFallbackConfig())
	policy.now = func() time.Time { return testNow }
	return policy, priceCache
}

func TestPolicy_CacheTier(t *testing.T) {
	policy, priceCache := newTestPolicy(t, scalarstore.NewMemoryStore())

	cached := interfaces.PriceSnapshot{
		Value:     decimal.RequireFromString("3.5"),
		ChangePct: decimal.RequireFromString("0.2"),
		Timestamp: testNow.Add(-1 * time.Hour).Unix(),
	}
	priceCache.Put("safe-coin", "USD", cached)

	snapshot, tier, ok := policy.Resolve(context.Background(), "safe-coin", "USD")
	require.True(t, ok)
	assert.Equal(t, TierCache, tier)
	assert.True(t, snapshot.Equal(cached))
}

func TestPolicy_CacheBeyondCeilingFallsThrough(t *testing.T) {
	store := scalarstore.NewMemoryStore()
	policy, priceCache := newTestPolicy(t, store)

	// Cached but older than the 24h ceiling
	priceCache.Put("safe-coin", "USD", interfaces.PriceSnapshot{
		Value:     decimal.RequireFromString("9.9"),
		Timestamp: testNow.Add(-25 * time.Hour).Unix(),
	})

	record := interfaces.ScalarRecord{
		Value:     decimal.RequireFromString("3.0"),
		ChangePct: decimal.RequireFromString("-1.0"),
		Timestamp: testNow.Add(-30 * time.Hour).Unix(),
	}
	require.NoError(t, store.Set(context.Background(), "safe-coin", record))

	snapshot, tier, ok := policy.Resolve(context.Background(), "safe-coin", "USD")
	require.True(t, ok)
	assert.Equal(t, TierScalarStore, tier)
	assert.Equal(t, "3", snapshot.Value.String())
	assert.Equal(t, record.Timestamp, snapshot.Timestamp)
}

func TestPolicy_ScalarStoreTier(t *testing.T) {
	store := scalarstore.NewMemoryStore()
	policy, _ := newTestPolicy(t, store)

	record := interfaces.ScalarRecord{
		Value:     decimal.RequireFromString("3.0"),
		ChangePct: decimal.RequireFromString("-1.0"),
		Timestamp: 1000,
	}
	require.NoError(t, store.Set(context.Background(), "safe-coin", record))

	snapshot, tier, ok := policy.Resolve(context.Background(), "safe-coin", "USD")
	require.True(t, ok)
	assert.Equal(t, TierScalarStore, tier)
	assert.Equal(t, "3", snapshot.Value.String())
	assert.Equal(t, "-1", snapshot.ChangePct.String())
	assert.Equal(t, int64(1000), snapshot.Timestamp)
}

func TestPolicy_FloorDefaultTier(t *testing.T) {
	policy, _ := newTestPolicy(t, scalarstore.NewMemoryStore())

	snapshot, tier, ok := policy.Resolve(context.Background(), "safe-coin", "USD")
	require.True(t, ok)
	assert.Equal(t, TierFloorDefault, tier)
	assert.Equal(t, "3.28741459", snapshot.Value.String())
	assert.Equal(t, "-6.423453", snapshot.ChangePct.String())
	assert.Equal(t, testNow.Add(-24*time.Hour).Unix(), snapshot.Timestamp)
}

func TestPolicy_NoTierAvailable(t *testing.T) {
	policy, _ := newTestPolicy(t, scalarstore.NewMemoryStore())

	// No cache entry, no record, no floor default for this asset
	_, tier, ok := policy.Resolve(context.Background(), "bitcoin", "USD")
	assert.False(t, ok)
	assert.Equal(t, TierNone, tier)
}

func TestPolicy_ScalarStoreErrorFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockPersistentScalarStore(ctrl)
	store.EXPECT().Get(gomock.Any(), "safe-coin").
		Return(interfaces.ScalarRecord{}, false, assert.AnError)

	policy, _ := newTestPolicy(t, store)

	// A failing store degrades to the floor default, not to an error
	_, tier, ok := policy.Resolve(context.Background(), "safe-coin", "USD")
	require.True(t, ok)
	assert.Equal(t, TierFloorDefault, tier)
}

func TestPolicy_Persist(t *testing.T) {
	store := scalarstore.NewMemoryStore()
	policy, _ := newTestPolicy(t, store)

	live := interfaces.PriceSnapshot{
		Value:     decimal.RequireFromString("3.7"),
		ChangePct: decimal.RequireFromString("1.1"),
		Timestamp: testNow.Unix(),
	}
	policy.Persist(context.Background(), "safe-coin", live)

	record, found, err := store.Get(context.Background(), "safe-coin")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, record.Value.Equal(live.Value))
	assert.Equal(t, live.Timestamp, record.Timestamp)
}
