// Package syncer implements the price refresh engine: it decides when a
// sync target is due, deduplicates concurrent fetches per canonical key,
// expands canonical quotes into whole alias groups, and escalates to the
// fallback policy when a feed fails.
package syncer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/openwallet/market-sync/alias"
	"github.com/openwallet/market-sync/cache"
	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/fallback"
	"github.com/openwallet/market-sync/interfaces"
	"github.com/openwallet/market-sync/metrics"
)

// AssetIDSource supplies the asset ids tracked for a currency, used by the
// periodic refresh loop
type AssetIDSource interface {
	AssetIDs(currency string) []string
}

// UpdateFunc receives reconciled prices after each cache write. The live
// flag is false for fallback-derived and re-broadcast batches.
type UpdateFunc func(ctx context.Context, currency string, prices map[string]interfaces.PriceSnapshot, live bool)

// flightResult is what all waiters of one canonical fetch share
type flightResult struct {
	prices map[string]interfaces.PriceSnapshot
}

// Syncer owns the staleness clock and the refresh state machine
type Syncer struct {
	cache         cache.Cache
	table         *alias.Table
	source        interfaces.UpstreamSource
	policy        *fallback.Policy
	cfg           config.PriceSyncConfig
	metricsWriter *metrics.MetricsWriter

	// testNetworkMode zeroes flagged alias members during fan-out
	testNetworkMode bool

	// flights deduplicates concurrent fetches per canonical key and
	// currency: every waiter gets the same reconciliation outcome
	flights singleflight.Group

	// firstLoad tracks per-target state previously hidden in a
	// process-wide flag: secondary-sourced targets are seeded from the
	// fallback tiers on their first cold sync instead of blocking on
	// the slow secondary feed
	mu        sync.Mutex
	firstLoad map[string]bool

	onUpdated UpdateFunc
	idSource  AssetIDSource

	// now is replaceable in tests
	now func() time.Time
}

// New creates a syncer over the given collaborators
func New(priceCache cache.Cache, table *alias.Table, source interfaces.UpstreamSource, policy *fallback.Policy, cfg config.PriceSyncConfig, testNetworkMode bool) *Syncer {
	return &Syncer{
		cache:           priceCache,
		table:           table,
		source:          source,
		policy:          policy,
		cfg:             cfg,
		testNetworkMode: testNetworkMode,
		metricsWriter:   metrics.NewMetricsWriter(metrics.ComponentSyncer),
		firstLoad:       make(map[string]bool),
		now:             time.Now,
	}
}

// SetOnUpdatedCallback sets the function receiving reconciled prices.
// Must be called before the first Sync.
func (s *Syncer) SetOnUpdatedCallback(cb UpdateFunc) {
	s.onUpdated = cb
}

// SetAssetIDSource sets the source of tracked asset ids for SyncTracked
func (s *Syncer) SetAssetIDSource(src AssetIDSource) {
	s.idSource = src
}

// Start implements core.Interface
func (s *Syncer) Start(ctx context.Context) error {
	if s.cache == nil || s.table == nil || s.source == nil || s.policy == nil {
		return fmt.Errorf("syncer dependencies not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Syncer) Stop() {}

// ExpirationInterval returns the staleness window
func (s *Syncer) ExpirationInterval() time.Duration {
	return s.cfg.ExpirationInterval
}

// LastSyncTimestamp returns the oldest timestamp over the requested ids,
// false when any of them has never been synced
func (s *Syncer) LastSyncTimestamp(assetIDs []string, currency string) (int64, bool) {
	return s.cache.OldestTimestamp(assetIDs, currency)
}

// IsDue reports whether the target needs a refresh: some member never
// synced, or the stalest member is older than the expiration interval
func (s *Syncer) IsDue(assetIDs []string, currency string) bool {
	oldest, ok := s.cache.OldestTimestamp(assetIDs, currency)
	if !ok {
		return true
	}
	return s.now().Unix()-oldest >= int64(s.cfg.ExpirationInterval.Seconds())
}

// SyncIfDue refreshes the target when due, otherwise serves the cache.
// The bool reports whether a refresh ran.
func (s *Syncer) SyncIfDue(ctx context.Context, assetIDs []string, currency string) (map[string]interfaces.PriceSnapshot, bool, error) {
	if !s.IsDue(assetIDs, currency) {
		return s.cache.GetMany(assetIDs, currency), false, nil
	}
	prices, err := s.Sync(ctx, assetIDs, currency)
	return prices, err == nil, err
}

// Sync refreshes the target unconditionally. Upstream failures degrade to
// the fallback policy and never surface as errors; the returned map is
// simply missing assets nothing could price. The only hard error is a
// misuse of the contract: an empty target.
func (s *Syncer) Sync(ctx context.Context, assetIDs []string, currency string) (map[string]interfaces.PriceSnapshot, error) {
	if len(assetIDs) == 0 || currency == "" {
		return nil, interfaces.ErrEmptySyncTarget
	}

	start := s.now()
	defer func() {
		s.metricsWriter.RecordSyncCycle(time.Since(start))
		s.metricsWriter.RecordCacheSize(s.cache.ItemCount())
	}()

	// Resolve the request into distinct canonical keys. Derived members
	// never produce their own fetch.
	canonicals := make([]string, 0, len(assetIDs))
	seen := make(map[string]bool, len(assetIDs))
	for _, assetID := range assetIDs {
		canonical := s.table.CanonicalKeyFor(assetID)
		if !seen[canonical] {
			seen[canonical] = true
			canonicals = append(canonicals, canonical)
		}
	}

	// Every waiter of a flight receives the same reconciliation outcome;
	// the response is assembled from those outcomes, filtered back down
	// to the ids actually requested
	reconciled := make(map[string]interfaces.PriceSnapshot)
	for _, canonical := range canonicals {
		for assetID, snapshot := range s.syncCanonical(ctx, canonical, currency).prices {
			reconciled[assetID] = snapshot
		}
	}

	prices := make(map[string]interfaces.PriceSnapshot, len(assetIDs))
	for _, assetID := range assetIDs {
		if snapshot, ok := reconciled[assetID]; ok {
			prices[assetID] = snapshot
		}
	}
	return prices, nil
}

// SyncTracked refreshes every tracked asset for the currency when due.
// Used as the periodic scheduler task.
func (s *Syncer) SyncTracked(ctx context.Context, currency string) {
	if s.idSource == nil {
		return
	}
	assetIDs := s.idSource.AssetIDs(currency)
	if len(assetIDs) == 0 {
		return
	}
	if _, synced, err := s.SyncIfDue(ctx, assetIDs, currency); err != nil {
		log.Printf("Syncer: Tracked sync for %s failed: %v", currency, err)
	} else if synced {
		log.Printf("Syncer: Tracked sync refreshed %d assets in %s", len(assetIDs), currency)
	}
}

// NotifyExpired re-broadcasts currently cached, possibly stale, values to
// subscribers without touching the network or the cache. Supports
// refresh-on-currency-change in the embedding application.
func (s *Syncer) NotifyExpired(ctx context.Context, assetIDs []string, currency string) {
	if s.onUpdated == nil {
		return
	}
	prices := s.cache.GetMany(assetIDs, currency)
	if len(prices) == 0 {
		return
	}
	s.onUpdated(ctx, currency, prices, false)
}

// syncCanonical runs (or joins) the single flight for one canonical key
// and returns the outcome shared by every waiter
func (s *Syncer) syncCanonical(ctx context.Context, canonical, currency string) *flightResult {
	flightKey := currency + ":" + canonical

	result, _, shared := s.flights.Do(flightKey, func() (interface{}, error) {
		return s.fetchAndReconcile(ctx, canonical, currency), nil
	})
	if shared {
		log.Printf("Syncer: Joined in-flight fetch for %s", flightKey)
	}
	return result.(*flightResult)
}

// fetchAndReconcile is the body of one flight: fetch the canonical quote,
// fan it out across the alias group, write the cache, notify.
func (s *Syncer) fetchAndReconcile(ctx context.Context, canonical, currency string) *flightResult {
	if s.takeFirstLoad(canonical, currency) {
		if result := s.seedFromFallback(ctx, canonical, currency); result != nil {
			return result
		}
	}

	snapshot, err := s.fetchCanonical(ctx, canonical, currency)
	if err != nil {
		log.Printf("Syncer: Fetch for %s in %s failed: %v", canonical, currency, err)
		return s.degrade(ctx, canonical, currency)
	}

	s.policy.Persist(ctx, canonical, snapshot)

	entries := s.fanOut(canonical, currency, snapshot)
	s.cache.PutMany(entries)

	prices := s.pricesOf(entries)
	if s.onUpdated != nil {
		s.onUpdated(ctx, currency, prices, true)
	}
	return &flightResult{prices: prices}
}

// fetchCanonical queries the feed the canonical key is priced by
func (s *Syncer) fetchCanonical(ctx context.Context, canonical, currency string) (interfaces.PriceSnapshot, error) {
	upstreamKey := s.table.UpstreamKeyFor(canonical)

	if s.table.IsSecondarySourced(canonical) {
		return s.source.FetchSecondarySourcePrice(ctx, upstreamKey, currency)
	}

	quotes, err := s.source.FetchPrices(ctx, []string{upstreamKey}, currency)
	if err != nil {
		return interfaces.PriceSnapshot{}, err
	}
	snapshot, ok := quotes[upstreamKey]
	if !ok {
		return interfaces.PriceSnapshot{}, fmt.Errorf("%w: key %s absent from response", interfaces.ErrNoUpstreamData, upstreamKey)
	}
	return snapshot, nil
}

// degrade resolves a fallback value and applies it with the guarded write
// so it can never clobber a newer live quote that raced it. When no tier
// has a value the cache is left exactly as it was.
func (s *Syncer) degrade(ctx context.Context, canonical, currency string) *flightResult {
	snapshot, tier, ok := s.policy.Resolve(ctx, canonical, currency)
	if !ok {
		log.Printf("Syncer: No fallback value for %s in %s, serving cache as-is", canonical, currency)
		return &flightResult{prices: s.cache.GetMany(s.table.GroupMembers(canonical), currency)}
	}

	log.Printf("Syncer: Degraded %s in %s to %s tier", canonical, currency, tier)

	entries := s.fanOut(canonical, currency, snapshot)
	s.cache.PutManyIfNewer(entries)

	// Read back rather than trust the batch: a racing live write wins
	prices := s.cache.GetMany(s.table.GroupMembers(canonical), currency)
	if s.onUpdated != nil {
		s.onUpdated(ctx, currency, prices, false)
	}
	return &flightResult{prices: prices}
}

// seedFromFallback serves a secondary-sourced target's first cold sync
// from the fallback tiers. Returns nil when seeding does not apply and a
// live fetch should proceed.
func (s *Syncer) seedFromFallback(ctx context.Context, canonical, currency string) *flightResult {
	if !s.table.IsSecondarySourced(canonical) {
		return nil
	}
	if _, cached := s.cache.Get(canonical, currency); cached {
		return nil
	}
	log.Printf("Syncer: Seeding %s in %s from fallback tiers on first load", canonical, currency)
	return s.degrade(ctx, canonical, currency)
}

// takeFirstLoad consumes the per-target first-load marker
func (s *Syncer) takeFirstLoad(canonical, currency string) bool {
	key := currency + ":" + canonical

	s.mu.Lock()
	defer s.mu.Unlock()
	if done := s.firstLoad[key]; done {
		return false
	}
	s.firstLoad[key] = true
	return true
}

// fanOut expands one canonical quote into entries for every alias group
// member. All members carry the identical triple, except members zeroed
// by test network mode, which keep the timestamp but lose value and
// change.
func (s *Syncer) fanOut(canonical, currency string, snapshot interfaces.PriceSnapshot) []interfaces.PriceEntry {
	members := s.table.GroupMembers(canonical)
	entries := make([]interfaces.PriceEntry, 0, len(members))

	for _, member := range members {
		memberSnapshot := snapshot
		if s.testNetworkMode && s.table.IsZeroedOnTestNetwork(member) {
			memberSnapshot = interfaces.PriceSnapshot{
				Value:     decimal.Zero,
				ChangePct: decimal.Zero,
				Timestamp: snapshot.Timestamp,
			}
		}
		entries = append(entries, interfaces.PriceEntry{
			AssetID:  member,
			Currency: currency,
			Snapshot: memberSnapshot,
		})
	}
	return entries
}

// pricesOf turns a written batch into the notification payload
func (s *Syncer) pricesOf(entries []interfaces.PriceEntry) map[string]interfaces.PriceSnapshot {
	prices := make(map[string]interfaces.PriceSnapshot, len(entries))
	for _, entry := range entries {
		prices[entry.AssetID] = entry.Snapshot
	}
	return prices
}
