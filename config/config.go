package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the extraction run configuration.
type Config struct {
	BaseURL          string
	PagePattern      string
	MaxPages         int
	DetailLimit      int
	Delay            time.Duration
	Timeout          time.Duration
	CacheSize        int
	OutputFile       string
	DetailOutputFile string
	OutputFormat     string // csv, json, or dual
	UserAgent        string
	MetricsAddr      string
	Verbose          bool
	RespectRobotsTxt bool
}

// DefaultConfig returns the demo-target defaults: five catalog pages, ten
// enriched records, half a second between requests.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          "http://books.toscrape.com",
		PagePattern:      "catalogue/page-%d.html",
		MaxPages:         5,
		DetailLimit:      10,
		Delay:            500 * time.Millisecond,
		Timeout:          10 * time.Second,
		CacheSize:        256,
		OutputFile:       "books_data.csv",
		DetailOutputFile: "books_detailed.csv",
		OutputFormat:     "csv",
		UserAgent:        "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		MetricsAddr:      "",
		Verbose:          false,
		RespectRobotsTxt: false,
	}
}

// PageTemplate returns the printf template used to build catalog page URLs.
func (c *Config) PageTemplate() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + c.PagePattern
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if !strings.Contains(c.PagePattern, "%d") {
		return fmt.Errorf("page pattern must contain a %%d placeholder")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.DetailLimit < 0 {
		return fmt.Errorf("detail limit cannot be negative")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.DetailOutputFile == "" {
		return fmt.Errorf("detail output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}
