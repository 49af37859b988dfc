package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/aluiziolira/go-bookdata/fetch"
	"github.com/aluiziolira/go-bookdata/models"
)

// DetailParser turns one product document into detail fields.
type DetailParser interface {
	DetailPage(doc []byte) (*models.BookDetail, error)
}

// Enricher fetches product pages for already-extracted records. It shares
// its collaborators' contract with the Walker, so the same limiter can pace
// the whole run.
type Enricher struct {
	fetcher fetch.Fetcher
	parser  DetailParser
	limiter Limiter
	metrics *Metrics
}

// NewEnricher wires the enricher's collaborators. A nil limiter disables
// pacing and a nil metrics bundle disables instrumentation.
func NewEnricher(fetcher fetch.Fetcher, detailParser DetailParser, limiter Limiter, metrics *Metrics) *Enricher {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &Enricher{
		fetcher: fetcher,
		parser:  detailParser,
		limiter: limiter,
		metrics: metrics,
	}
}

// Enrich visits the product page of the first limit records and merges the
// detail fields in. A record whose page cannot be fetched or parsed is
// dropped from the output entirely; the report accounts for every drop.
// Input order is preserved for the records that survive. The returned error
// is only ever the context error; partial results remain valid.
func (e *Enricher) Enrich(ctx context.Context, records []models.BookRecord, limit int) ([]models.EnrichedBookRecord, *models.EnrichReport, error) {
	report := &models.EnrichReport{
		StartTime:    time.Now(),
		ErrorsByType: make(map[string]int),
	}

	if limit < 0 {
		limit = 0
	}
	if limit > len(records) {
		limit = len(records)
	}

	enriched := make([]models.EnrichedBookRecord, 0, limit)
	for i := 0; i < limit; i++ {
		record := records[i]
		if err := e.limiter.Wait(ctx); err != nil {
			report.EndTime = time.Now()
			return enriched, report, err
		}

		report.Attempted++
		e.metrics.IncRequest("detail")

		start := time.Now()
		doc, err := e.fetcher.Fetch(ctx, record.DetailURL)
		e.metrics.ObserveDuration(time.Since(start))
		if err != nil {
			e.recordDropped(report, record.DetailURL, err, fetch.ErrorLabel(err))
			continue
		}

		detail, err := e.parser.DetailPage(doc)
		if err != nil {
			e.recordDropped(report, record.DetailURL, err, errorLabelParse)
			continue
		}

		enriched = append(enriched, models.EnrichedBookRecord{
			BookRecord: record,
			BookDetail: *detail,
		})
		report.Enriched++
		e.metrics.IncDetail("enriched")
		slog.Debug("record enriched",
			slog.String("url", record.DetailURL),
			slog.String("title", record.Title),
		)
	}

	report.EndTime = time.Now()
	return enriched, report, nil
}

func (e *Enricher) recordDropped(report *models.EnrichReport, detailURL string, err error, label string) {
	report.Skipped++
	report.FailedURLs = append(report.FailedURLs, detailURL)
	report.ErrorsByType[label]++
	e.metrics.IncDetail("skipped")
	e.metrics.IncError(label)
	slog.Warn("record dropped from enrichment",
		slog.String("url", detailURL),
		slog.String("category", label),
		slog.Any("error", err),
	)
}
