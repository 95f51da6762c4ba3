package core

import (
	"sort"
	"sync"
)

// TrackedAssets is the mutable set of asset ids the periodic sync loop
// keeps fresh. The embedding application updates it as the user enables
// and disables coins; the same set is synced in every currency.
type TrackedAssets struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewTrackedAssets creates an empty tracked set
func NewTrackedAssets() *TrackedAssets {
	return &TrackedAssets{ids: make(map[string]struct{})}
}

// Track adds asset ids to the set
func (t *TrackedAssets) Track(assetIDs ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range assetIDs {
		t.ids[id] = struct{}{}
	}
}

// Untrack removes an asset id from the set
func (t *TrackedAssets) Untrack(assetID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ids, assetID)
}

// AssetIDs returns the tracked set in stable order
func (t *TrackedAssets) AssetIDs(currency string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
