package interfaces

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSnapshot holds one quote for an asset in a single currency.
// The three fields are always written together, never partially updated.
type PriceSnapshot struct {
	// Value is the price in the requested currency
	Value decimal.Decimal `json:"value"`

	// ChangePct is the 24h price change in percent
	ChangePct decimal.Decimal `json:"change_pct"`

	// Timestamp is the quote time in unix seconds
	Timestamp int64 `json:"timestamp"`
}

// IsFresh reports whether the snapshot is younger than the expiration interval
func (s PriceSnapshot) IsFresh(now time.Time, expiration time.Duration) bool {
	return now.Unix()-s.Timestamp < int64(expiration.Seconds())
}

// Equal reports whether two snapshots carry the same value, change and timestamp
func (s PriceSnapshot) Equal(other PriceSnapshot) bool {
	return s.Timestamp == other.Timestamp &&
		s.Value.Equal(other.Value) &&
		s.ChangePct.Equal(other.ChangePct)
}

// PriceEntry is one cache row: a snapshot bound to its asset and currency
type PriceEntry struct {
	AssetID  string        `json:"asset_id"`
	Currency string        `json:"currency"`
	Snapshot PriceSnapshot `json:"snapshot"`
}

// PriceUpdate is the payload delivered to price subscribers
type PriceUpdate struct {
	// Currency the update applies to
	Currency string

	// Prices maps asset id to its current snapshot, read back from the
	// cache after the batch write so subscribers never observe a
	// half-applied batch
	Prices map[string]PriceSnapshot

	// Live is false when the batch was produced by the fallback policy
	// rather than a live upstream fetch
	Live bool
}

// HistoricalPoint is one historical quote returned by the upstream source
type HistoricalPoint struct {
	Value decimal.Decimal `json:"price"`

	// Timestamp is the actual quote time reported by the upstream,
	// which may deviate from the requested one
	Timestamp int64 `json:"timestamp"`
}
