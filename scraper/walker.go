// Package scraper walks the catalog page by page and enriches extracted
// records with product page details.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aluiziolira/go-bookdata/fetch"
	"github.com/aluiziolira/go-bookdata/models"
	"github.com/aluiziolira/go-bookdata/parser"
)

// ErrEmptyCatalog reports a walk that produced no records at all. Callers
// surface it distinctly from partial failures, which are only counted.
var ErrEmptyCatalog = errors.New("scraper: no records extracted")

// errorLabelParse buckets document-structure failures in reports and
// metrics, alongside the fetch labels.
const errorLabelParse = "parse"

// CatalogParser turns one catalog document into records.
type CatalogParser interface {
	CatalogPage(doc []byte) (*parser.CatalogPage, error)
}

// Walker fetches catalog pages in order and accumulates records.
type Walker struct {
	fetcher fetch.Fetcher
	parser  CatalogParser
	limiter Limiter
	metrics *Metrics
}

// NewWalker wires the walker's collaborators. A nil limiter disables pacing
// and a nil metrics bundle disables instrumentation.
func NewWalker(fetcher fetch.Fetcher, catalogParser CatalogParser, limiter Limiter, metrics *Metrics) *Walker {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &Walker{
		fetcher: fetcher,
		parser:  catalogParser,
		limiter: limiter,
		metrics: metrics,
	}
}

// Walk requests pages 1..pages built from pageTemplate and returns every
// record extracted, in page-then-item order. A page that fails to fetch or
// parse is logged, counted, and skipped; the walk still issues exactly one
// attempt per page. The returned error is ErrEmptyCatalog when nothing was
// extracted, or the context error when the walk was cut short. The partial
// catalog and report are valid either way.
func (w *Walker) Walk(ctx context.Context, pageTemplate string, pages int) (*models.Catalog, *models.WalkReport, error) {
	catalog := models.NewCatalog()
	report := &models.WalkReport{
		StartTime:    time.Now(),
		ErrorsByType: make(map[string]int),
	}

	for page := 1; page <= pages; page++ {
		if err := w.limiter.Wait(ctx); err != nil {
			report.EndTime = time.Now()
			return catalog, report, err
		}

		pageURL := fmt.Sprintf(pageTemplate, page)
		report.PagesRequested++
		w.metrics.IncRequest("catalog")

		start := time.Now()
		doc, err := w.fetcher.Fetch(ctx, pageURL)
		w.metrics.ObserveDuration(time.Since(start))
		if err != nil {
			w.pageFailed(report, pageURL, err, fetch.ErrorLabel(err))
			continue
		}

		parsed, err := w.parser.CatalogPage(doc)
		if err != nil {
			w.pageFailed(report, pageURL, err, errorLabelParse)
			continue
		}

		for _, record := range parsed.Records {
			catalog.Append(record)
		}
		for _, skipped := range parsed.Skipped {
			w.metrics.IncSkipped(skipped.Field)
			slog.Debug("catalog item skipped",
				slog.String("url", pageURL),
				slog.Int("index", skipped.Index),
				slog.String("field", skipped.Field),
				slog.Any("error", skipped.Err),
			)
		}

		report.PagesFetched++
		report.ItemsParsed += len(parsed.Records)
		report.ItemsSkipped += len(parsed.Skipped)
		w.metrics.IncPage("fetched")
		w.metrics.AddItems(len(parsed.Records))

		slog.Info("catalog page walked",
			slog.Int("page", page),
			slog.Int("items", len(parsed.Records)),
			slog.Int("skipped", len(parsed.Skipped)),
		)
	}

	report.EndTime = time.Now()
	if catalog.Len() == 0 {
		return catalog, report, ErrEmptyCatalog
	}
	return catalog, report, nil
}

func (w *Walker) pageFailed(report *models.WalkReport, pageURL string, err error, label string) {
	report.PagesFailed++
	report.FailedURLs = append(report.FailedURLs, pageURL)
	report.ErrorsByType[label]++
	w.metrics.IncPage("failed")
	w.metrics.IncError(label)
	slog.Warn("catalog page skipped",
		slog.String("url", pageURL),
		slog.String("category", label),
		slog.Any("error", err),
	)
}
