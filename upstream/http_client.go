package upstream

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/openwallet/market-sync/config"
)

// StatusHandler receives request outcomes, used to feed metrics
type StatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// HTTPClientWithRetries wraps an HTTP client with retry and rate limiting
type HTTPClientWithRetries struct {
	client        *http.Client
	cfg           config.UpstreamConfig
	limiter       *rate.Limiter
	statusHandler StatusHandler
	logPrefix     string
}

// NewHTTPClientWithRetries creates a client from upstream configuration.
// A nil limiter (RateLimitPerMinute == 0) disables rate limiting.
func NewHTTPClientWithRetries(cfg config.UpstreamConfig, handler StatusHandler, logPrefix string) *HTTPClientWithRetries {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: cfg.ConnectionTimeout,
			}).DialContext,
		},
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.RateLimitPerMinute/10 + 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60.0), burst)
	}

	return &HTTPClientWithRetries{
		client:        client,
		cfg:           cfg,
		limiter:       limiter,
		statusHandler: handler,
		logPrefix:     logPrefix,
	}
}

// ExecuteRequest executes an HTTP request with rate limiting and retries
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) ([]byte, error) {
	var lastErr error

	attempts := c.cfg.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.logPrefix, attempt, attempts-1, lastErr)
			if c.statusHandler != nil {
				c.statusHandler.OnRetry()
			}
			time.Sleep(calculateBackoffWithJitter(c.cfg.BaseBackoff, attempt))
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(req.Context()); err != nil {
				if c.statusHandler != nil {
					c.statusHandler.OnRequest("error")
				}
				return nil, fmt.Errorf("rate limiter wait failed: %w", err)
			}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if c.statusHandler != nil {
				c.statusHandler.OnRequest("error")
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response body: %w", err)
			if c.statusHandler != nil {
				c.statusHandler.OnRequest("error")
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			if c.statusHandler != nil {
				c.statusHandler.OnRequest("success")
			}
			return body, nil
		}

		lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			if c.statusHandler != nil {
				c.statusHandler.OnRequest("rate_limited")
			}
			continue
		}

		if c.statusHandler != nil {
			c.statusHandler.OnRequest("error")
		}
		return nil, lastErr
	}

	return nil, fmt.Errorf("all %d attempts failed, last error: %w", attempts, lastErr)
}

// isRetryableStatus reports whether the status code is worth another attempt
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// calculateBackoffWithJitter calculates backoff duration with jitter for retries
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseBackoff <= 0 {
		return baseBackoff
	}

	multiplier := uint(1) << uint(attempt-1)
	backoff := time.Duration(float64(baseBackoff) * float64(multiplier))
	jitter := time.Duration(rand.Int63n(int64(backoff/2) + 1))
	return backoff + jitter
}
