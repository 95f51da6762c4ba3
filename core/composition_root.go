package core

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/openwallet/market-sync/alias"
	"github.com/openwallet/market-sync/api"
	"github.com/openwallet/market-sync/cache"
	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/fallback"
	"github.com/openwallet/market-sync/history"
	"github.com/openwallet/market-sync/interfaces"
	"github.com/openwallet/market-sync/manager"
	"github.com/openwallet/market-sync/metrics"
	"github.com/openwallet/market-sync/scalarstore"
	"github.com/openwallet/market-sync/scheduler"
	"github.com/openwallet/market-sync/syncer"
	"github.com/openwallet/market-sync/upstream"
)

// App is the assembled pricing engine. Registry drives lifecycle; the
// exported services are the embedding application's entry points.
type App struct {
	Registry *Registry
	Manager  *manager.Manager
	History  *history.Manager
	Tracked  *TrackedAssets
}

// Setup wires all services together. catalog may be nil when display
// metadata is resolved outside this library.
func Setup(ctx context.Context, cfg *config.Config, catalog interfaces.CatalogLookup) (*App, error) {
	registry := NewRegistry()

	table := alias.New(cfg.Alias)

	priceCache := cache.NewPriceCache()
	registry.Register("cache", priceCache)

	var store interfaces.PersistentScalarStore
	if cfg.ScalarStore.Enabled {
		redisStore, err := scalarstore.NewRedisStore(cfg.ScalarStore)
		if err != nil {
			return nil, fmt.Errorf("connecting scalar store: %w", err)
		}
		store = redisStore
	} else {
		log.Printf("Core: Scalar store disabled, last-known values kept in memory only")
		store = scalarstore.NewMemoryStore()
	}

	policy := fallback.NewPolicy(priceCache, store, cfg.Fallback)
	source := upstream.NewClient(cfg.Upstream, metrics.NewMetricsWriter(metrics.ComponentUpstream))

	syncService := syncer.New(priceCache, table, source, policy, cfg.PriceSync, cfg.TestNetworkMode)
	registry.Register("syncer", syncService)

	mgr := manager.New(priceCache, syncService, catalog)
	registry.Register("manager", mgr)
	syncService.SetOnUpdatedCallback(mgr.HandleUpdated)

	tracked := NewTrackedAssets()
	syncService.SetAssetIDSource(tracked)

	historyService := history.New(table, source, cfg.History, cfg.TestNetworkMode)
	registry.Register("history", historyService)

	loop := scheduler.NewSyncLoop(syncService, cfg.PriceSync)
	registry.Register("sync_loop", loop)

	if port := opsPort(cfg); port != "" {
		registry.Register("ops_server", api.New(port, source, mgr, historyService, loop))
	}

	return &App{
		Registry: registry,
		Manager:  mgr,
		History:  historyService,
		Tracked:  tracked,
	}, nil
}

// opsPort resolves the ops server port, preferring config over the
// environment. Empty means the ops server stays off.
func opsPort(cfg *config.Config) string {
	if cfg.OpsPort != "" {
		return cfg.OpsPort
	}
	return os.Getenv("PORT")
}
