// Package scheduler drives the periodic refresh cadence. The loop ticks
// well inside the staleness window and delegates the due decision to the
// refresh engine, so a tick on a fresh cache costs nothing.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/openwallet/market-sync/config"
)

// TrackedSyncer is the slice of the refresh engine the cadence loop needs
type TrackedSyncer interface {
	SyncTracked(ctx context.Context, currency string)
}

// SyncLoop periodically offers every configured currency to the refresh
// engine. It implements core.Interface.
type SyncLoop struct {
	syncer     TrackedSyncer
	currencies []string
	interval   time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSyncLoop creates a cadence loop over the refresh engine. The check
// interval comes from configuration and is expected to be a fraction of
// the staleness window.
func NewSyncLoop(syncer TrackedSyncer, cfg config.PriceSyncConfig) *SyncLoop {
	return &SyncLoop{
		syncer:     syncer,
		currencies: cfg.Currencies,
		interval:   cfg.SyncCheckInterval,
	}
}

// Start launches the loop with an immediate first pass
func (l *SyncLoop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil
	}

	ctx, l.cancel = context.WithCancel(ctx)
	l.running = true

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		l.pass(ctx)

		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.pass(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("Scheduler: Sync loop started, checking every %s across %d currencies", l.interval, len(l.currencies))
	return nil
}

// Stop terminates the loop and waits for an in-progress pass to finish
func (l *SyncLoop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
	l.running = false
}

// IsRunning reports whether the loop is active
func (l *SyncLoop) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// pass offers each currency to the refresh engine once
func (l *SyncLoop) pass(ctx context.Context) {
	for _, currency := range l.currencies {
		select {
		case <-ctx.Done():
			return
		default:
		}
		l.syncer.SyncTracked(ctx, currency)
	}
}
