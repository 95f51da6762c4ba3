// Package manager exposes the application-facing pricing facade. It
// composes the cache, the syncer, and the subscription fan-out behind a
// small surface, so embedding code never talks to the refresh machinery
// directly.
package manager

import (
	"context"
	"log"
	"time"

	"github.com/openwallet/market-sync/cache"
	"github.com/openwallet/market-sync/events"
	"github.com/openwallet/market-sync/interfaces"
	"github.com/openwallet/market-sync/syncer"
)

// Manager is the facade over the pricing core
type Manager struct {
	cache   cache.Cache
	syncer  *syncer.Syncer
	subs    *events.SubscriptionManager
	catalog interfaces.CatalogLookup
}

// New creates a manager over the given collaborators. catalog may be nil
// when the embedding application resolves display metadata elsewhere.
func New(priceCache cache.Cache, s *syncer.Syncer, catalog interfaces.CatalogLookup) *Manager {
	return &Manager{
		cache:   priceCache,
		syncer:  s,
		subs:    events.NewSubscriptionManager(),
		catalog: catalog,
	}
}

// Start implements core.Interface
func (m *Manager) Start(ctx context.Context) error { return nil }

// Stop implements core.Interface
func (m *Manager) Stop() {}

// Prices returns the cached snapshots for the requested assets. Pure
// cache read, never touches the network: freshness is the periodic
// loop's job. Never-synced assets are simply absent from the result.
func (m *Manager) Prices(assetIDs []string, currency string) map[string]interfaces.PriceSnapshot {
	return m.cache.GetMany(assetIDs, currency)
}

// Price returns the cached snapshot for a single asset, false if never
// synced
func (m *Manager) Price(assetID, currency string) (interfaces.PriceSnapshot, bool) {
	return m.cache.Get(assetID, currency)
}

// RefreshedPrices returns snapshots for the requested assets, running a
// sync first when the target is due. May block on the network; callers
// that cannot wait use Prices.
func (m *Manager) RefreshedPrices(ctx context.Context, assetIDs []string, currency string) (map[string]interfaces.PriceSnapshot, error) {
	prices, _, err := m.syncer.SyncIfDue(ctx, assetIDs, currency)
	return prices, err
}

// LastSyncTimestamp returns the oldest sync timestamp over the requested
// assets, false when any of them has never been synced
func (m *Manager) LastSyncTimestamp(assetIDs []string, currency string) (int64, bool) {
	return m.syncer.LastSyncTimestamp(assetIDs, currency)
}

// ExpirationInterval returns the staleness window of the refresh engine
func (m *Manager) ExpirationInterval() time.Duration {
	return m.syncer.ExpirationInterval()
}

// ApplyRefresh writes a reconciled batch and notifies subscribers of what
// the cache now holds. The write and the notification see the same batch,
// so subscribers never observe a half-applied group.
func (m *Manager) ApplyRefresh(ctx context.Context, entries []interfaces.PriceEntry, currency string, live bool) {
	if len(entries) == 0 {
		return
	}
	if live {
		m.cache.PutMany(entries)
	} else if m.cache.PutManyIfNewer(entries) == 0 {
		return
	}

	assetIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		assetIDs = append(assetIDs, entry.AssetID)
	}
	m.notify(ctx, currency, m.cache.GetMany(assetIDs, currency), live)
}

// HandleUpdated receives reconciled batches from the refresh engine,
// which has already written the cache, and fans them out to subscribers
func (m *Manager) HandleUpdated(ctx context.Context, currency string, prices map[string]interfaces.PriceSnapshot, live bool) {
	m.notify(ctx, currency, prices, live)
}

// NotifyStale re-broadcasts currently cached values without touching the
// network. Used on currency or network switches in the embedding
// application.
func (m *Manager) NotifyStale(ctx context.Context, assetIDs []string, currency string) {
	m.syncer.NotifyExpired(ctx, assetIDs, currency)
}

// DeletePrice drops an asset from the cache across all currencies,
// typically when the user removes a custom token
func (m *Manager) DeletePrice(assetID string) {
	m.cache.Delete(assetID)
	log.Printf("Manager: Deleted cached prices for %s", assetID)
}

// Subscribe registers a consumer of price updates
func (m *Manager) Subscribe() events.ISubscription {
	return m.subs.Subscribe()
}

// SubscriberCount returns the number of active subscribers
func (m *Manager) SubscriberCount() int {
	return m.subs.Count()
}

// DisplayMetadata resolves catalog display information for an asset.
// Returns false when no catalog is attached or the asset is unknown.
func (m *Manager) DisplayMetadata(assetID string) (interfaces.CoinMetadata, bool) {
	if m.catalog == nil {
		return interfaces.CoinMetadata{}, false
	}
	return m.catalog.ResolveDisplayMetadata(assetID)
}

func (m *Manager) notify(ctx context.Context, currency string, prices map[string]interfaces.PriceSnapshot, live bool) {
	if len(prices) == 0 {
		return
	}
	m.subs.Emit(ctx, interfaces.PriceUpdate{
		Currency: currency,
		Prices:   prices,
		Live:     live,
	})
}
