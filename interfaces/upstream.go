package interfaces

import "context"

//go:generate mockgen -destination=mocks/upstream.go -package=mocks . UpstreamSource

// UpstreamSource is the boundary to the remote price feeds. Implementations
// own transport, authentication and deserialization; callers only see
// snapshots or an error.
type UpstreamSource interface {
	// FetchPrices fetches current quotes for the given upstream keys.
	// The returned map may omit keys the upstream has no data for.
	FetchPrices(ctx context.Context, upstreamKeys []string, currency string) (map[string]PriceSnapshot, error)

	// FetchSecondarySourcePrice fetches one quote from the independently
	// configured secondary feed, used for the pinned asset family whose
	// canonical pricing source differs from the default feed
	FetchSecondarySourcePrice(ctx context.Context, specialKey string, currency string) (PriceSnapshot, error)

	// FetchHistoricalPrice fetches the quote closest to the given unix
	// timestamp. The returned point carries the upstream's actual quote
	// time, which callers must validate against their tolerance.
	FetchHistoricalPrice(ctx context.Context, upstreamKey string, currency string, timestamp int64) (HistoricalPoint, error)

	// FetchSecondaryHistoricalPrice fetches a dated quote from the
	// secondary feed for the pinned asset family
	FetchSecondaryHistoricalPrice(ctx context.Context, specialKey string, currency string, timestamp int64) (HistoricalPoint, error)
}
