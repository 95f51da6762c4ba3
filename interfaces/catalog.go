package interfaces

// CoinMetadata is display-facing coin information resolved from the
// catalog. The pricing core never consumes it; it is passed through to
// presentation layers only.
type CoinMetadata struct {
	AssetID  string `json:"asset_id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	IconURL  string `json:"icon_url"`
	Decimals int    `json:"decimals"`
}

// CatalogLookup resolves display metadata for an asset from the coin
// catalog, which is synced outside this library.
type CatalogLookup interface {
	ResolveDisplayMetadata(assetID string) (CoinMetadata, bool)
}
