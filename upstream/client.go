// Package upstream implements the HTTP clients for the remote price feeds
// behind the interfaces.UpstreamSource boundary: the default multi-asset
// feed, the secondary feed for the pinned asset family, and historical
// quote lookups.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/interfaces"
	"github.com/openwallet/market-sync/metrics"
)

const (
	// Default feed endpoint for current quotes
	pricesAPIPath = "/simple/price"

	// Secondary feed endpoint for the pinned asset family
	secondaryPriceAPIPath = "/simple/price"

	// Default feed endpoint for historical quotes
	historyAPIPathFormat = "/coins/%s/price_history"
)

// Client implements interfaces.UpstreamSource over HTTP
type Client struct {
	cfg             config.UpstreamConfig
	httpClient      *HTTPClientWithRetries
	secondaryClient *HTTPClientWithRetries
	successfulFetch atomic.Bool
}

// NewClient creates the upstream client pair from configuration
func NewClient(cfg config.UpstreamConfig, metricsWriter *metrics.MetricsWriter) *Client {
	return &Client{
		cfg:             cfg,
		httpClient:      NewHTTPClientWithRetries(cfg, metricsWriter, "Upstream"),
		secondaryClient: NewHTTPClientWithRetries(cfg, metricsWriter, "UpstreamSecondary"),
	}
}

// Healthy reports whether at least one fetch has succeeded
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchPrices fetches current quotes for the given upstream keys from the
// default feed. Keys the feed has no data for are absent from the result.
func (c *Client) FetchPrices(ctx context.Context, upstreamKeys []string, currency string) (map[string]interfaces.PriceSnapshot, error) {
	req, err := NewRequestBuilder(c.cfg.BaseURL, pricesAPIPath).
		WithKeys(upstreamKeys).
		WithCurrency(currency).
		With24hChange().
		WithLastUpdatedAt().
		Build()
	if err != nil {
		return nil, err
	}

	body, err := c.httpClient.ExecuteRequest(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrUpstreamUnavailable, err)
	}

	var raw map[string]map[string]json.Number
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Printf("Upstream: Error parsing prices response: %v", err)
		return nil, fmt.Errorf("%w: malformed prices response", interfaces.ErrNoUpstreamData)
	}

	currencyKey := strings.ToLower(currency)
	result := make(map[string]interfaces.PriceSnapshot, len(raw))
	for key, columns := range raw {
		snapshot, err := snapshotFromColumns(columns, currencyKey)
		if err != nil {
			// The feed answered but omitted the requested currency for
			// this key; drop the key rather than the whole response
			log.Printf("Upstream: No %s data for %s: %v", currencyKey, key, err)
			continue
		}
		result[key] = snapshot
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no quotes for currency %s", interfaces.ErrNoUpstreamData, currency)
	}

	log.Printf("Upstream: Fetched quotes for %d of %d keys in %s", len(result), len(upstreamKeys), currency)
	c.successfulFetch.Store(true)
	return result, nil
}

// FetchSecondarySourcePrice fetches one quote from the secondary feed.
// The secondary feed reports millisecond timestamps and decimal strings.
func (c *Client) FetchSecondarySourcePrice(ctx context.Context, specialKey string, currency string) (interfaces.PriceSnapshot, error) {
	req, err := NewRequestBuilder(c.cfg.SecondaryBaseURL, secondaryPriceAPIPath).
		With("ids", specialKey).
		With("currency", strings.ToLower(currency)).
		Build()
	if err != nil {
		return interfaces.PriceSnapshot{}, err
	}

	body, err := c.secondaryClient.ExecuteRequest(req.WithContext(ctx))
	if err != nil {
		return interfaces.PriceSnapshot{}, fmt.Errorf("%w: %v", interfaces.ErrUpstreamUnavailable, err)
	}

	var raw struct {
		Value     string `json:"value"`
		Diff      string `json:"diff"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return interfaces.PriceSnapshot{}, fmt.Errorf("%w: malformed secondary response", interfaces.ErrNoUpstreamData)
	}

	value, err := decimal.NewFromString(raw.Value)
	if err != nil {
		return interfaces.PriceSnapshot{}, fmt.Errorf("%w: bad value %q", interfaces.ErrNoUpstreamData, raw.Value)
	}
	changePct, err := decimal.NewFromString(raw.Diff)
	if err != nil {
		return interfaces.PriceSnapshot{}, fmt.Errorf("%w: bad diff %q", interfaces.ErrNoUpstreamData, raw.Diff)
	}

	c.successfulFetch.Store(true)
	return interfaces.PriceSnapshot{
		Value:     value,
		ChangePct: changePct,
		Timestamp: raw.Timestamp / 1000,
	}, nil
}

// FetchHistoricalPrice fetches the quote closest to the given unix
// timestamp from the default feed
func (c *Client) FetchHistoricalPrice(ctx context.Context, upstreamKey string, currency string, timestamp int64) (interfaces.HistoricalPoint, error) {
	req, err := NewRequestBuilder(c.cfg.BaseURL, fmt.Sprintf(historyAPIPathFormat, upstreamKey)).
		With("currency", strings.ToLower(currency)).
		With("timestamp", fmt.Sprintf("%d", timestamp)).
		Build()
	if err != nil {
		return interfaces.HistoricalPoint{}, err
	}

	body, err := c.httpClient.ExecuteRequest(req.WithContext(ctx))
	if err != nil {
		return interfaces.HistoricalPoint{}, fmt.Errorf("%w: %v", interfaces.ErrUpstreamUnavailable, err)
	}

	var raw struct {
		Price     json.Number `json:"price"`
		Timestamp int64       `json:"timestamp"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return interfaces.HistoricalPoint{}, fmt.Errorf("%w: malformed history response", interfaces.ErrNoUpstreamData)
	}

	value, err := decimal.NewFromString(raw.Price.String())
	if err != nil {
		return interfaces.HistoricalPoint{}, fmt.Errorf("%w: bad price %q", interfaces.ErrNoUpstreamData, raw.Price.String())
	}

	c.successfulFetch.Store(true)
	return interfaces.HistoricalPoint{
		Value:     value,
		Timestamp: raw.Timestamp,
	}, nil
}

// FetchSecondaryHistoricalPrice fetches a dated quote from the secondary
// feed. The feed returns the value it held at the requested time along
// with its own millisecond timestamp.
func (c *Client) FetchSecondaryHistoricalPrice(ctx context.Context, specialKey string, currency string, timestamp int64) (interfaces.HistoricalPoint, error) {
	req, err := NewRequestBuilder(c.cfg.SecondaryBaseURL, secondaryPriceAPIPath).
		With("ids", specialKey).
		With("currency", strings.ToLower(currency)).
		With("timestamp", fmt.Sprintf("%d", timestamp)).
		Build()
	if err != nil {
		return interfaces.HistoricalPoint{}, err
	}

	body, err := c.secondaryClient.ExecuteRequest(req.WithContext(ctx))
	if err != nil {
		return interfaces.HistoricalPoint{}, fmt.Errorf("%w: %v", interfaces.ErrUpstreamUnavailable, err)
	}

	var raw struct {
		Value     string `json:"value"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return interfaces.HistoricalPoint{}, fmt.Errorf("%w: malformed secondary response", interfaces.ErrNoUpstreamData)
	}

	value, err := decimal.NewFromString(raw.Value)
	if err != nil {
		return interfaces.HistoricalPoint{}, fmt.Errorf("%w: bad value %q", interfaces.ErrNoUpstreamData, raw.Value)
	}

	c.successfulFetch.Store(true)
	return interfaces.HistoricalPoint{
		Value:     value,
		Timestamp: raw.Timestamp / 1000,
	}, nil
}

// snapshotFromColumns maps one feed row to a snapshot. The feed publishes
// per-currency columns: "<cur>", "<cur>_24h_change" and "last_updated_at".
func snapshotFromColumns(columns map[string]json.Number, currencyKey string) (interfaces.PriceSnapshot, error) {
	priceRaw, ok := columns[currencyKey]
	if !ok {
		return interfaces.PriceSnapshot{}, fmt.Errorf("missing currency column %q", currencyKey)
	}
	value, err := decimal.NewFromString(priceRaw.String())
	if err != nil {
		return interfaces.PriceSnapshot{}, fmt.Errorf("bad price %q: %w", priceRaw.String(), err)
	}

	changePct := decimal.Zero
	if changeRaw, ok := columns[currencyKey+"_24h_change"]; ok {
		changePct, err = decimal.NewFromString(changeRaw.String())
		if err != nil {
			return interfaces.PriceSnapshot{}, fmt.Errorf("bad change %q: %w", changeRaw.String(), err)
		}
	}

	var timestamp int64
	if tsRaw, ok := columns["last_updated_at"]; ok {
		timestamp, err = tsRaw.Int64()
		if err != nil {
			return interfaces.PriceSnapshot{}, fmt.Errorf("bad timestamp %q: %w", tsRaw.String(), err)
		}
	}

	return interfaces.PriceSnapshot{
		Value:     value,
		ChangePct: changePct,
		Timestamp: timestamp,
	}, nil
}
