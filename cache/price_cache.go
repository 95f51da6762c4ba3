package cache

import (
	"context"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/openwallet/market-sync/interfaces"
)

// PriceCache implements Cache on top of go-cache. Entries never expire on
// their own: staleness is timestamp-driven and stale data is served until
// replaced, so the underlying cache runs with NoExpiration and no janitor.
//
// go-cache serializes individual operations, but batch atomicity for
// PutMany/GetMany needs the outer RWMutex: a reader between two writes of
// a batch would otherwise see alias group members disagree.
type PriceCache struct {
	mu    sync.RWMutex
	store *gocache.Cache
}

// NewPriceCache creates an empty price cache
func NewPriceCache() *PriceCache {
	return &PriceCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// Start implements core.Interface
func (c *PriceCache) Start(ctx context.Context) error {
	return nil
}

// Stop implements core.Interface
func (c *PriceCache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Flush()
}

// entryKey builds the storage key. Currency codes contain no colon, so the
// asset id (which may, for contract-style ids) goes last.
func entryKey(assetID, currency string) string {
	return currency + ":" + assetID
}

// Get returns the snapshot for one asset, false if never synced
func (c *PriceCache) Get(assetID, currency string) (interfaces.PriceSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, found := c.store.Get(entryKey(assetID, currency))
	if !found {
		return interfaces.PriceSnapshot{}, false
	}
	snapshot, ok := value.(interfaces.PriceSnapshot)
	return snapshot, ok
}

// GetMany returns snapshots for the assets that have entries
func (c *PriceCache) GetMany(assetIDs []string, currency string) map[string]interfaces.PriceSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]interfaces.PriceSnapshot, len(assetIDs))
	for _, assetID := range assetIDs {
		if value, found := c.store.Get(entryKey(assetID, currency)); found {
			if snapshot, ok := value.(interfaces.PriceSnapshot); ok {
				result[assetID] = snapshot
			}
		}
	}
	return result
}

// Put stores one snapshot
func (c *PriceCache) Put(assetID, currency string, snapshot interfaces.PriceSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Set(entryKey(assetID, currency), snapshot, gocache.NoExpiration)
}

// PutMany stores a batch atomically with respect to concurrent readers
func (c *PriceCache) PutMany(entries []interfaces.PriceEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range entries {
		c.store.Set(entryKey(entry.AssetID, entry.Currency), entry.Snapshot, gocache.NoExpiration)
	}
}

// PutManyIfNewer stores a batch, skipping entries whose stored snapshot
// has a strictly newer timestamp. Returns the number of entries written.
func (c *PriceCache) PutManyIfNewer(entries []interfaces.PriceEntry) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	written := 0
	for _, entry := range entries {
		key := entryKey(entry.AssetID, entry.Currency)
		if value, found := c.store.Get(key); found {
			if stored, ok := value.(interfaces.PriceSnapshot); ok && stored.Timestamp > entry.Snapshot.Timestamp {
				continue
			}
		}
		c.store.Set(key, entry.Snapshot, gocache.NoExpiration)
		written++
	}
	return written
}

// Delete removes the asset's entries for every currency. Asset ids are
// opaque and may contain colons themselves, so keys are split at the
// first colon (the currency separator) and the remainder compared whole.
func (c *PriceCache) Delete(assetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.store.Items() {
		if _, id, found := strings.Cut(key, ":"); found && id == assetID {
			c.store.Delete(key)
		}
	}
}

// OldestTimestamp returns the minimum timestamp over exactly the requested
// ids, or false when any of them has no entry
func (c *PriceCache) OldestTimestamp(assetIDs []string, currency string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var oldest int64
	for i, assetID := range assetIDs {
		value, found := c.store.Get(entryKey(assetID, currency))
		if !found {
			return 0, false
		}
		snapshot, ok := value.(interfaces.PriceSnapshot)
		if !ok {
			return 0, false
		}
		if i == 0 || snapshot.Timestamp < oldest {
			oldest = snapshot.Timestamp
		}
	}
	if len(assetIDs) == 0 {
		return 0, false
	}
	return oldest, true
}

// ItemCount returns the number of stored entries
func (c *PriceCache) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.ItemCount()
}
