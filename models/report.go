package models

import "time"

// WalkReport accounts for one catalog walk.
type WalkReport struct {
	StartTime      time.Time
	EndTime        time.Time
	PagesRequested int
	PagesFetched   int
	PagesFailed    int
	ItemsParsed    int
	ItemsSkipped   int
	FailedURLs     []string
	ErrorsByType   map[string]int
}

// EnrichReport accounts for one detail enrichment pass.
type EnrichReport struct {
	StartTime    time.Time
	EndTime      time.Time
	Attempted    int
	Enriched     int
	Skipped      int
	FailedURLs   []string
	ErrorsByType map[string]int
}
