package fetch

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes successful fetches for the lifetime of a run, keyed by
// URL. Failures are never cached, so a flaky URL can still succeed on a
// later attempt.
type Cache struct {
	next Fetcher
	lru  *lru.Cache[string, []byte]
}

// NewCache wraps next with a bounded LRU of size entries.
func NewCache(next Fetcher, size int) (*Cache, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create fetch cache: %w", err)
	}
	return &Cache{next: next, lru: cache}, nil
}

// Fetch returns the cached body for url, or delegates and remembers the
// result on success.
func (c *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.lru.Get(url); ok {
		return body, nil
	}

	body, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	c.lru.Add(url, body)
	return body, nil
}
