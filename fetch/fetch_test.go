package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/aluiziolira/go-bookdata/config"
	"github.com/jarcoal/httpmock"
)

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.BaseURL = "http://example.test"

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	transport := httpmock.NewMockTransport()
	client.WithTransport(transport)
	return client, transport
}

func TestClientFetchReturnsBody(t *testing.T) {
	client, transport := newTestClient(t)
	pageURL := "http://example.test/catalogue/page-1.html"
	transport.RegisterResponder("GET", pageURL, httpmock.NewStringResponder(200, "<html>catalog</html>"))

	body, err := client.Fetch(context.Background(), pageURL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(body, []byte("<html>catalog</html>")) {
		t.Fatalf("body=%q", body)
	}
}

func TestClientFetchRepeatsURL(t *testing.T) {
	client, transport := newTestClient(t)
	pageURL := "http://example.test/catalogue/page-1.html"
	transport.RegisterResponder("GET", pageURL, httpmock.NewStringResponder(200, "doc"))

	for i := 0; i < 2; i++ {
		if _, err := client.Fetch(context.Background(), pageURL); err != nil {
			t.Fatalf("fetch %d: %v", i+1, err)
		}
	}
	if got := transport.GetTotalCallCount(); got != 2 {
		t.Fatalf("transport calls=%d, want 2", got)
	}
}

func TestClientFetchStatusClassification(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{status: http.StatusForbidden, expected: "forbidden"},
		{status: http.StatusNotFound, expected: "not_found"},
		{status: http.StatusTooManyRequests, expected: "rate_limited"},
		{status: http.StatusInternalServerError, expected: "other"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			client, transport := newTestClient(t)
			pageURL := fmt.Sprintf("http://example.test/catalogue/page-%d.html", tt.status)
			transport.RegisterResponder("GET", pageURL, httpmock.NewStringResponder(tt.status, ""))

			_, err := client.Fetch(context.Background(), pageURL)
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error is %T, want *FetchError", err)
			}
			if fetchErr.Status != tt.status {
				t.Fatalf("status=%d, want %d", fetchErr.Status, tt.status)
			}
			if got := ErrorLabel(err); got != tt.expected {
				t.Fatalf("label=%q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClientFetchContextCanceled(t *testing.T) {
	client, transport := newTestClient(t)
	pageURL := "http://example.test/catalogue/page-1.html"
	transport.RegisterResponder("GET", pageURL, httpmock.NewStringResponder(200, "doc"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, pageURL)
	if err == nil {
		t.Fatalf("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error %v should wrap context.Canceled", err)
	}
	if got := transport.GetTotalCallCount(); got != 0 {
		t.Fatalf("transport calls=%d, want 0", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		expected   string
	}{
		{name: "nil", err: nil, statusCode: 0, expected: "unknown"},
		{name: "context timeout", err: context.DeadlineExceeded, statusCode: 0, expected: "timeout"},
		{name: "net timeout", err: &net.DNSError{IsTimeout: true}, statusCode: 0, expected: "timeout"},
		{name: "connection", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, statusCode: 0, expected: "connection"},
		{name: "forbidden", err: nil, statusCode: http.StatusForbidden, expected: "forbidden"},
		{name: "not found", err: nil, statusCode: http.StatusNotFound, expected: "not_found"},
		{name: "rate limited", err: nil, statusCode: http.StatusTooManyRequests, expected: "rate_limited"},
		{name: "other", err: errors.New("some other error"), statusCode: 0, expected: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorLabel(Classify(tt.err, tt.statusCode)); got != tt.expected {
				t.Fatalf("Classify(%v, %d) = %q, want %q", tt.err, tt.statusCode, got, tt.expected)
			}
		})
	}
}
