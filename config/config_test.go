package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty base url",
			mutate: func(cfg *Config) {
				cfg.BaseURL = ""
			},
			wantErr: "base URL",
		},
		{
			name: "invalid url format",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "http://"
			},
			wantErr: "base URL",
		},
		{
			name: "page pattern without placeholder",
			mutate: func(cfg *Config) {
				cfg.PagePattern = "catalogue/page.html"
			},
			wantErr: "page pattern",
		},
		{
			name: "zero max pages",
			mutate: func(cfg *Config) {
				cfg.MaxPages = 0
			},
			wantErr: "max pages",
		},
		{
			name: "negative detail limit",
			mutate: func(cfg *Config) {
				cfg.DetailLimit = -1
			},
			wantErr: "detail limit",
		},
		{
			name: "negative delay",
			mutate: func(cfg *Config) {
				cfg.Delay = -time.Second
			},
			wantErr: "delay",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "negative cache size",
			mutate: func(cfg *Config) {
				cfg.CacheSize = -1
			},
			wantErr: "cache size",
		},
		{
			name: "empty output file",
			mutate: func(cfg *Config) {
				cfg.OutputFile = ""
			},
			wantErr: "output file",
		},
		{
			name: "empty detail output file",
			mutate: func(cfg *Config) {
				cfg.DetailOutputFile = ""
			},
			wantErr: "detail output file",
		},
		{
			name: "unknown output format",
			mutate: func(cfg *Config) {
				cfg.OutputFormat = "xml"
			},
			wantErr: "output format",
		},
		{
			name: "empty user agent",
			mutate: func(cfg *Config) {
				cfg.UserAgent = ""
			},
			wantErr: "user agent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestPageTemplate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		pattern string
		want    string
	}{
		{
			name:    "default site",
			baseURL: "http://books.toscrape.com",
			pattern: "catalogue/page-%d.html",
			want:    "http://books.toscrape.com/catalogue/page-%d.html",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://example.test/",
			pattern: "catalogue/page-%d.html",
			want:    "http://example.test/catalogue/page-%d.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BaseURL = tt.baseURL
			cfg.PagePattern = tt.pattern
			if got := cfg.PageTemplate(); got != tt.want {
				t.Fatalf("PageTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}
