// Package history serves point-in-time quotes. Historical values never
// change once quoted, so results are cached without expiration and a hit
// short-circuits the feed entirely.
package history

import (
	"context"
	"fmt"
	"log"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/openwallet/market-sync/alias"
	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/interfaces"
	"github.com/openwallet/market-sync/metrics"
)

// Manager resolves historical prices through the alias table and the
// upstream boundary, with per-point caching and timestamp validation
type Manager struct {
	table         *alias.Table
	source        interfaces.UpstreamSource
	cfg           config.HistoryConfig
	metricsWriter *metrics.MetricsWriter

	// testNetworkMode zeroes values for flagged assets without touching
	// the network
	testNetworkMode bool

	store *gocache.Cache
}

// New creates a historical price manager
func New(table *alias.Table, source interfaces.UpstreamSource, cfg config.HistoryConfig, testNetworkMode bool) *Manager {
	return &Manager{
		table:           table,
		source:          source,
		cfg:             cfg,
		testNetworkMode: testNetworkMode,
		metricsWriter:   metrics.NewMetricsWriter(metrics.ComponentHistory),
		store:           gocache.New(gocache.NoExpiration, 0),
	}
}

// Start implements core.Interface
func (m *Manager) Start(ctx context.Context) error {
	if m.table == nil || m.source == nil {
		return fmt.Errorf("history dependencies not provided")
	}
	return nil
}

// Stop implements core.Interface
func (m *Manager) Stop() {}

// Price returns the quote closest to the given unix timestamp. Responses
// whose quote time deviates from the request by more than the configured
// tolerance are rejected with ErrTimestampOutOfTolerance and not cached;
// the caller decides whether a different timestamp is acceptable.
func (m *Manager) Price(ctx context.Context, assetID, currency string, timestamp int64) (interfaces.HistoricalPoint, error) {
	key := pointKey(assetID, currency, timestamp)
	if cached, found := m.store.Get(key); found {
		return cached.(interfaces.HistoricalPoint), nil
	}

	if m.testNetworkMode && m.table.IsZeroedOnTestNetwork(assetID) {
		return interfaces.HistoricalPoint{Value: decimal.Zero, Timestamp: timestamp}, nil
	}

	point, err := m.fetch(ctx, assetID, currency, timestamp)
	if err != nil {
		return interfaces.HistoricalPoint{}, err
	}

	if deviation(point.Timestamp, timestamp) > int64(m.cfg.TimestampTolerance.Seconds()) {
		log.Printf("History: Quote for %s at %d came back dated %d, outside tolerance", assetID, timestamp, point.Timestamp)
		return interfaces.HistoricalPoint{}, fmt.Errorf("%w: requested %d, got %d", interfaces.ErrTimestampOutOfTolerance, timestamp, point.Timestamp)
	}

	m.store.Set(key, point, gocache.NoExpiration)
	return point, nil
}

// ItemCount returns the number of cached historical points
func (m *Manager) ItemCount() int {
	return m.store.ItemCount()
}

// fetch routes the request to the feed that held the asset's history at
// that time. The pinned asset family moved to the secondary feed at the
// configured cutover; earlier points stay with the default feed under
// the canonical id.
func (m *Manager) fetch(ctx context.Context, assetID, currency string, timestamp int64) (interfaces.HistoricalPoint, error) {
	canonical := m.table.CanonicalKeyFor(assetID)

	if m.table.IsSecondarySourced(canonical) {
		if timestamp >= m.cfg.SecondaryCutover {
			return m.source.FetchSecondaryHistoricalPrice(ctx, m.table.UpstreamKeyFor(canonical), currency, timestamp)
		}
		return m.source.FetchHistoricalPrice(ctx, canonical, currency, timestamp)
	}

	return m.source.FetchHistoricalPrice(ctx, m.table.UpstreamKeyFor(canonical), currency, timestamp)
}

func pointKey(assetID, currency string, timestamp int64) string {
	return fmt.Sprintf("%s:%s:%d", currency, assetID, timestamp)
}

func deviation(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
