package upstream

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RequestBuilder builds GET requests against a price feed endpoint
type RequestBuilder struct {
	baseURL string
	path    string
	params  url.Values
}

// NewRequestBuilder creates a request builder for the given endpoint path
func NewRequestBuilder(baseURL, path string) *RequestBuilder {
	return &RequestBuilder{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
		params:  url.Values{},
	}
}

// With adds a query parameter
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	rb.params.Set(key, value)
	return rb
}

// WithKeys adds a comma-joined ids parameter
func (rb *RequestBuilder) WithKeys(ids []string) *RequestBuilder {
	rb.With("ids", strings.Join(ids, ","))
	return rb
}

// WithCurrency adds the vs_currencies parameter
func (rb *RequestBuilder) WithCurrency(currency string) *RequestBuilder {
	rb.With("vs_currencies", strings.ToLower(currency))
	return rb
}

// With24hChange asks the feed to include the 24h change column
func (rb *RequestBuilder) With24hChange() *RequestBuilder {
	rb.With("include_24hr_change", "true")
	return rb
}

// WithLastUpdatedAt asks the feed to include quote timestamps
func (rb *RequestBuilder) WithLastUpdatedAt() *RequestBuilder {
	rb.With("include_last_updated_at", "true")
	return rb
}

// Build constructs the HTTP request
func (rb *RequestBuilder) Build() (*http.Request, error) {
	fullURL := rb.baseURL + rb.path
	if encoded := rb.params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequest(http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rb.path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
