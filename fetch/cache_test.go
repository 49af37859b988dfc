package fetch

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

type countingFetcher struct {
	calls  map[string]int
	bodies map[string]string
	errs   map[string]error
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{
		calls:  make(map[string]int),
		bodies: make(map[string]string),
		errs:   make(map[string]error),
	}
}

func (f *countingFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return []byte(f.bodies[url]), nil
}

func TestCacheServesRepeatFetch(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.bodies["http://example.test/catalogue/page-1.html"] = "doc"

	cache, err := NewCache(fetcher, 4)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	first, err := cache.Fetch(context.Background(), "http://example.test/catalogue/page-1.html")
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := cache.Fetch(context.Background(), "http://example.test/catalogue/page-1.html")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("cached body differs: %q vs %q", first, second)
	}
	if got := fetcher.calls["http://example.test/catalogue/page-1.html"]; got != 1 {
		t.Fatalf("underlying calls=%d, want 1", got)
	}
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	fetcher := newCountingFetcher()
	failing := "http://example.test/catalogue/page-9.html"
	fetcher.errs[failing] = &FetchError{URL: failing, Status: 404, Cause: ErrNotFound{Err: errors.New("not found")}}

	cache, err := NewCache(fetcher, 4)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := cache.Fetch(context.Background(), failing); err == nil {
			t.Fatalf("fetch %d should fail", i+1)
		}
	}
	if got := fetcher.calls[failing]; got != 2 {
		t.Fatalf("underlying calls=%d, want 2 (failures must not be cached)", got)
	}
}

func TestCacheEvictsOldEntries(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.bodies["http://example.test/a"] = "a"
	fetcher.bodies["http://example.test/b"] = "b"

	cache, err := NewCache(fetcher, 1)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	for _, url := range []string{"http://example.test/a", "http://example.test/b", "http://example.test/a"} {
		if _, err := cache.Fetch(context.Background(), url); err != nil {
			t.Fatalf("fetch %s: %v", url, err)
		}
	}

	if got := fetcher.calls["http://example.test/a"]; got != 2 {
		t.Fatalf("calls for evicted entry=%d, want 2", got)
	}
	if got := fetcher.calls["http://example.test/b"]; got != 1 {
		t.Fatalf("calls for b=%d, want 1", got)
	}
}

func TestNewCacheRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewCache(newCountingFetcher(), 0); err == nil {
		t.Fatalf("expected error for size 0")
	}
}
