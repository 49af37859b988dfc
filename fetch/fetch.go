// Package fetch retrieves documents over HTTP with failure classification.
package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aluiziolira/go-bookdata/config"
	"github.com/gocolly/colly/v2"
)

// Fetcher retrieves one document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

const captureKey = "capture"

// capture carries the response of one request out of the collector
// callbacks.
type capture struct {
	body   []byte
	status int
}

// Client fetches documents with a colly collector, one blocking request per
// call. It issues no internal retries; retry policy belongs to callers.
type Client struct {
	collector *colly.Collector
}

// NewClient builds a client restricted to the host of cfg.BaseURL.
func NewClient(cfg *config.Config) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)

	collector.SetRequestTimeout(cfg.Timeout)
	collector.IgnoreRobotsTxt = !cfg.RespectRobotsTxt
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	collector.OnResponse(func(r *colly.Response) {
		if captured, ok := r.Ctx.GetAny(captureKey).(*capture); ok {
			captured.status = r.StatusCode
			captured.body = append([]byte(nil), r.Body...)
		}
	})
	collector.OnError(func(r *colly.Response, _ error) {
		if r == nil {
			return
		}
		if captured, ok := r.Ctx.GetAny(captureKey).(*capture); ok {
			captured.status = r.StatusCode
		}
	})

	return &Client{collector: collector}, nil
}

// WithTransport swaps the HTTP transport. Tests use this to install mocks.
func (c *Client) WithTransport(transport http.RoundTripper) {
	c.collector.WithTransport(transport)
}

// Fetch issues a single GET for pageURL and returns the response body. Any
// failure, including a non-2xx status, comes back as a *FetchError with a
// classified cause. Cancellation is honored before the request goes out; an
// in-flight request is bounded by the configured timeout.
func (c *Client) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: pageURL, Cause: err}
	}

	captured := &capture{}
	reqCtx := colly.NewContext()
	reqCtx.Put(captureKey, captured)

	if err := c.collector.Request(http.MethodGet, pageURL, nil, reqCtx, nil); err != nil {
		return nil, &FetchError{URL: pageURL, Status: captured.status, Cause: Classify(err, captured.status)}
	}

	return captured.body, nil
}
