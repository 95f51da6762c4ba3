package cache

import "github.com/openwallet/market-sync/interfaces"

//go:generate mockgen -destination=mocks/cache.go -package=mocks . Cache

// Cache is the snapshot store keyed by (assetID, currency). It is the only
// mutable shared resource of the sync engine; all mutation goes through
// this interface.
type Cache interface {
	// Get returns the snapshot for one asset, false if never synced
	Get(assetID, currency string) (interfaces.PriceSnapshot, bool)

	// GetMany returns snapshots for the assets that have entries;
	// missing ids are simply absent from the result
	GetMany(assetIDs []string, currency string) map[string]interfaces.PriceSnapshot

	// Put stores one snapshot
	Put(assetID, currency string, snapshot interfaces.PriceSnapshot)

	// PutMany stores a batch atomically with respect to concurrent
	// readers: no reader observes a partially applied batch
	PutMany(entries []interfaces.PriceEntry)

	// PutManyIfNewer stores a batch like PutMany but skips entries whose
	// stored snapshot carries a strictly newer timestamp. Returns the
	// number of entries written. Used for fallback-derived writes so
	// they never clobber a concurrent live fetch.
	PutManyIfNewer(entries []interfaces.PriceEntry) int

	// Delete removes the asset's entries for every currency
	Delete(assetID string)

	// OldestTimestamp returns the minimum timestamp over exactly the
	// requested ids, or false when any of them has no entry — which
	// forces a full resync of the set
	OldestTimestamp(assetIDs []string, currency string) (int64, bool)

	// ItemCount returns the number of stored entries
	ItemCount() int
}
