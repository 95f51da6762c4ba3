// Package fallback produces best-effort quotes when a live fetch fails,
// consulting progressively staler sources: the cache, the durable scalar
// store, and finally the floor defaults shipped with the deployment.
package fallback

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openwallet/market-sync/cache"
	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/interfaces"
	"github.com/openwallet/market-sync/metrics"
)

// Tier identifies which degraded-data source supplied a value
type Tier string

const (
	// TierCache is the last cached snapshot within the fallback ceiling
	TierCache Tier = "cache"

	// TierScalarStore is the durable last-known-good record
	TierScalarStore Tier = "scalar_store"

	// TierFloorDefault is the hardcoded deployment default
	TierFloorDefault Tier = "floor_default"

	// TierNone means no tier could supply a value
	TierNone Tier = "none"
)

// Policy resolves degraded quotes for canonical assets
type Policy struct {
	cache         cache.Cache
	store         interfaces.PersistentScalarStore
	cfg           config.FallbackConfig
	metricsWriter *metrics.MetricsWriter

	// now is replaceable in tests
	now func() time.Time
}

// NewPolicy creates a fallback policy over the given cache and scalar store
func NewPolicy(priceCache cache.Cache, store interfaces.PersistentScalarStore, cfg config.FallbackConfig) *Policy {
	return &Policy{
		cache:         priceCache,
		store:         store,
		cfg:           cfg,
		metricsWriter: metrics.NewMetricsWriter(metrics.ComponentFallback),
		now:           time.Now,
	}
}

// Resolve produces a degraded quote for the canonical asset, trying the
// tiers in order. Returns the chosen tier, or TierNone with ok=false when
// nothing can supply a value — in which case the cache must be left alone.
func (p *Policy) Resolve(ctx context.Context, canonical, currency string) (interfaces.PriceSnapshot, Tier, bool) {
	now := p.now()

	if snapshot, found := p.cache.Get(canonical, currency); found {
		if now.Unix()-snapshot.Timestamp < int64(p.cfg.CacheCeiling.Seconds()) {
			p.metricsWriter.RecordFallbackTier(string(TierCache))
			return snapshot, TierCache, true
		}
		log.Printf("Fallback: Cached %s quote for %s is beyond the ceiling, trying scalar store", currency, canonical)
	}

	if p.store != nil {
		record, found, err := p.store.Get(ctx, canonical)
		if err != nil {
			log.Printf("Fallback: Scalar store read for %s failed: %v", canonical, err)
		} else if found {
			p.metricsWriter.RecordFallbackTier(string(TierScalarStore))
			return interfaces.PriceSnapshot{
				Value:     record.Value,
				ChangePct: record.ChangePct,
				Timestamp: record.Timestamp,
			}, TierScalarStore, true
		}
	}

	if floor, ok := p.cfg.FloorDefaults[canonical]; ok {
		value, err := decimal.NewFromString(floor.Value)
		if err != nil {
			log.Printf("Fallback: Bad floor value for %s: %v", canonical, err)
			return interfaces.PriceSnapshot{}, TierNone, false
		}
		changePct, err := decimal.NewFromString(floor.ChangePct)
		if err != nil {
			log.Printf("Fallback: Bad floor change for %s: %v", canonical, err)
			return interfaces.PriceSnapshot{}, TierNone, false
		}

		p.metricsWriter.RecordFallbackTier(string(TierFloorDefault))
		return interfaces.PriceSnapshot{
			Value:     value,
			ChangePct: changePct,
			// A floor default is a day-old guess by definition
			Timestamp: now.Add(-24 * time.Hour).Unix(),
		}, TierFloorDefault, true
	}

	p.metricsWriter.RecordFallbackTier(string(TierNone))
	return interfaces.PriceSnapshot{}, TierNone, false
}

// Persist records a live quote as the new last-known-good value for the
// canonical asset. Called after successful live fetches so the scalar
// store tier keeps pace with the market across restarts.
func (p *Policy) Persist(ctx context.Context, canonical string, snapshot interfaces.PriceSnapshot) {
	if p.store == nil {
		return
	}

	err := p.store.Set(ctx, canonical, interfaces.ScalarRecord{
		Value:     snapshot.Value,
		ChangePct: snapshot.ChangePct,
		Timestamp: snapshot.Timestamp,
	})
	if err != nil {
		log.Printf("Fallback: Persisting last-known-good for %s failed: %v", canonical, err)
	}
}
