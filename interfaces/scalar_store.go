package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/scalar_store.go -package=mocks . PersistentScalarStore

// ScalarRecord is one durable last-known-good price record
type ScalarRecord struct {
	Value     decimal.Decimal `json:"value"`
	ChangePct decimal.Decimal `json:"change_pct"`
	Timestamp int64           `json:"timestamp"`
}

// PersistentScalarStore keeps small per-asset scalar records that survive
// process restarts, independent of the main cache's expiration window.
// The fallback policy reads it when a live fetch fails and the cache has
// nothing usable.
type PersistentScalarStore interface {
	// Get returns the record for the key, or false if none is stored
	Get(ctx context.Context, key string) (ScalarRecord, bool, error)

	// Set stores the record for the key, replacing any previous one
	Set(ctx context.Context, key string, record ScalarRecord) error
}
