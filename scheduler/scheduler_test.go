package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/market-sync/config"
)

type recordingSyncer struct {
	mu         sync.Mutex
	currencies []string
}

func (r *recordingSyncer) SyncTracked(_ context.Context, currency string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies = append(r.currencies, currency)
}

func (r *recordingSyncer) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.currencies))
	copy(out, r.currencies)
	return out
}

func TestSyncLoop_ImmediateFirstPassCoversAllCurrencies(t *testing.T) {
	rec := &recordingSyncer{}
	cfg := config.PriceSyncConfig{
		Currencies:        []string{"USD", "EUR"},
		SyncCheckInterval: time.Hour,
	}

	loop := NewSyncLoop(rec, cfg)
	require.NoError(t, loop.Start(context.Background()))
	defer loop.Stop()

	assert.Eventually(t, func() bool {
		calls := rec.calls()
		return len(calls) == 2 && calls[0] == "USD" && calls[1] == "EUR"
	}, time.Second, 10*time.Millisecond)
}

func TestSyncLoop_TicksRepeat(t *testing.T) {
	rec := &recordingSyncer{}
	cfg := config.PriceSyncConfig{
		Currencies:        []string{"USD"},
		SyncCheckInterval: 20 * time.Millisecond,
	}

	loop := NewSyncLoop(rec, cfg)
	require.NoError(t, loop.Start(context.Background()))
	defer loop.Stop()

	assert.Eventually(t, func() bool {
		return len(rec.calls()) >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestSyncLoop_StopIsIdempotentAndHalts(t *testing.T) {
	rec := &recordingSyncer{}
	cfg := config.PriceSyncConfig{
		Currencies:        []string{"USD"},
		SyncCheckInterval: 10 * time.Millisecond,
	}

	loop := NewSyncLoop(rec, cfg)
	require.NoError(t, loop.Start(context.Background()))
	assert.True(t, loop.IsRunning())

	loop.Stop()
	loop.Stop()
	assert.False(t, loop.IsRunning())

	settled := len(rec.calls())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, len(rec.calls()), "no passes after Stop")
}

func TestSyncLoop_StartTwiceIsANoop(t *testing.T) {
	rec := &recordingSyncer{}
	cfg := config.PriceSyncConfig{
		Currencies:        []string{"USD"},
		SyncCheckInterval: time.Hour,
	}

	loop := NewSyncLoop(rec, cfg)
	require.NoError(t, loop.Start(context.Background()))
	defer loop.Stop()
	require.NoError(t, loop.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return len(rec.calls()) == 1
	}, time.Second, 10*time.Millisecond)
}
