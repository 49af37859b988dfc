package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aluiziolira/go-bookdata/config"
	"github.com/aluiziolira/go-bookdata/fetch"
	"github.com/aluiziolira/go-bookdata/models"
	"github.com/aluiziolira/go-bookdata/parser"
	"github.com/aluiziolira/go-bookdata/pipeline"
	"github.com/aluiziolira/go-bookdata/scraper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	defaultCfg := config.DefaultConfig()
	pagesDefault := defaultCfg.MaxPages
	if value, ok, err := config.EnvInt("BOOKDATA_PAGES"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid BOOKDATA_PAGES: %v\n", err)
		os.Exit(1)
	} else if ok {
		pagesDefault = value
	}
	detailsDefault := defaultCfg.DetailLimit
	if value, ok, err := config.EnvInt("BOOKDATA_DETAILS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid BOOKDATA_DETAILS: %v\n", err)
		os.Exit(1)
	} else if ok {
		detailsDefault = value
	}
	delayDefault := int(defaultCfg.Delay / time.Millisecond)
	if value, ok, err := config.EnvInt("BOOKDATA_DELAY_MS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid BOOKDATA_DELAY_MS: %v\n", err)
		os.Exit(1)
	} else if ok {
		delayDefault = value
	}
	outputDefault := defaultCfg.OutputFile
	if value, ok := config.EnvString("BOOKDATA_OUTPUT"); ok {
		outputDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("BOOKDATA_METRICS_ADDR"); ok {
		metricsDefault = value
	}

	maxPages := flag.Int("pages", pagesDefault, "Maximum catalog pages to walk")
	detailLimit := flag.Int("details", detailsDefault, "Number of records to enrich with product page details")
	delayMs := flag.Int("delay", delayDefault, "Delay between requests (milliseconds)")
	cacheSize := flag.Int("cache-size", defaultCfg.CacheSize, "Fetched document cache size, 0 disables caching")
	respectRobots := flag.Bool("respect-robots", false, "Respect robots.txt directives")
	outputFile := flag.String("output", outputDefault, "Catalog output file path")
	detailOutputFile := flag.String("detail-output", defaultCfg.DetailOutputFile, "Detail output file path")
	outputFormat := flag.String("format", "csv", "Output format: csv, json, or dual")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	baseURL := flag.String("base-url", defaultCfg.BaseURL, "Base URL of the catalog")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := buildConfigFromFlags(*baseURL, *maxPages, *detailLimit, *delayMs, *cacheSize, *respectRobots, *outputFile, *detailOutputFile, *outputFormat, *verbose, *metricsAddr)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting extraction",
		slog.String("base_url", cfg.BaseURL),
		slog.Int("pages", cfg.MaxPages),
		slog.Int("details", cfg.DetailLimit),
	)

	client, err := fetch.NewClient(cfg)
	if err != nil {
		slog.Error("initialising fetcher", slog.Any("error", err))
		os.Exit(1)
	}
	var fetcher fetch.Fetcher = client
	if cfg.CacheSize > 0 {
		cached, err := fetch.NewCache(client, cfg.CacheSize)
		if err != nil {
			slog.Error("initialising fetch cache", slog.Any("error", err))
			os.Exit(1)
		}
		fetcher = cached
	}

	htmlParser := parser.New(cfg.BaseURL)
	metrics := scraper.NewMetrics()
	limiter := scraper.NewIntervalLimiter(cfg.Delay)
	walker := scraper.NewWalker(fetcher, htmlParser, limiter, metrics)
	enricher := scraper.NewEnricher(fetcher, htmlParser, limiter, metrics)

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, waiting for in-flight work to finish")
	}()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	startTime := time.Now()
	catalog, walkReport, err := walker.Walk(ctx, cfg.PageTemplate(), cfg.MaxPages)
	if err != nil {
		if errors.Is(err, scraper.ErrEmptyCatalog) {
			slog.Error("no records extracted; check connectivity or raise -pages",
				slog.Int("pages_failed", walkReport.PagesFailed),
				slog.Any("errors_by_type", walkReport.ErrorsByType),
			)
		} else {
			slog.Error("catalog walk interrupted", slog.Any("error", err))
		}
		if catalog.Len() == 0 {
			shutdownMetrics(metricsServer)
			os.Exit(1)
		}
		slog.Warn("continuing with partial catalog", slog.Int("records", catalog.Len()))
	}

	records := catalog.Records()
	if err := writer.Write(records); err != nil {
		slog.Error("writing catalog", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writer.Validate(); err != nil {
		slog.Error("output validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	stats := pipeline.Summarize(records)

	var enrichReport *models.EnrichReport
	detailWritten := false
	if cfg.DetailLimit > 0 {
		enriched, report, err := enricher.Enrich(ctx, records, cfg.DetailLimit)
		enrichReport = report
		if err != nil {
			slog.Warn("enrichment cut short", slog.Any("error", err))
		}
		if len(enriched) > 0 {
			detailWriter, err := pipeline.NewDetailCSVWriter(cfg.DetailOutputFile)
			if err != nil {
				slog.Error("creating detail writer", slog.Any("error", err))
			} else {
				if err := detailWriter.Write(enriched); err != nil {
					slog.Error("writing details", slog.Any("error", err))
				} else {
					detailWritten = true
				}
				if err := detailWriter.Close(); err != nil {
					slog.Error("close detail writer", slog.Any("error", err))
				}
			}
		} else {
			slog.Warn("no records enriched; detail output skipped")
		}
	}

	shutdownMetrics(metricsServer)

	printSummary(stats, walkReport, enrichReport, time.Since(startTime), cfg, detailWritten)
}

func buildConfigFromFlags(baseURL string, maxPages, detailLimit, delayMs, cacheSize int, respectRobots bool, outputFile, detailOutputFile, outputFormat string, verbose bool, metricsAddr string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.MaxPages = maxPages
	cfg.DetailLimit = detailLimit
	cfg.Delay = time.Duration(delayMs) * time.Millisecond
	cfg.CacheSize = cacheSize
	cfg.RespectRobotsTxt = respectRobots
	cfg.OutputFile = outputFile
	cfg.DetailOutputFile = detailOutputFile
	cfg.OutputFormat = strings.ToLower(outputFormat)
	cfg.Verbose = verbose
	cfg.MetricsAddr = metricsAddr
	return cfg
}

func createWriter(format, filename string) (pipeline.OutputWriter, error) {
	switch format {
	case "json":
		return pipeline.NewJSONWriter(filename)
	case "csv":
		return pipeline.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return pipeline.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func shutdownMetrics(server *http.Server) {
	if server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics server shutdown failed", slog.Any("error", err))
	}
}

func printSummary(stats models.SummaryStats, walk *models.WalkReport, enrich *models.EnrichReport, duration time.Duration, cfg *config.Config, detailWritten bool) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Extraction complete")

	fmt.Printf("  Records:       %d\n", stats.TotalCount)
	fmt.Printf("  Pages:         %d fetched, %d failed\n", walk.PagesFetched, walk.PagesFailed)
	if walk.ItemsSkipped > 0 {
		fmt.Printf("  Items skipped: %d\n", walk.ItemsSkipped)
	}
	if len(walk.ErrorsByType) > 0 {
		fmt.Printf("  Error types:   %v\n", walk.ErrorsByType)
	}
	if stats.TotalCount > 0 {
		fmt.Printf("  Avg price:     £%.2f\n", stats.AvgPrice)
		fmt.Printf("  Price range:   £%.2f - £%.2f\n", stats.MinPrice, stats.MaxPrice)
		fmt.Printf("  Avg rating:    %.2f\n", stats.AvgRating)
	}
	if enrich != nil {
		fmt.Printf("  Enriched:      %d of %d attempted\n", enrich.Enriched, enrich.Attempted)
		if len(enrich.ErrorsByType) > 0 {
			fmt.Printf("  Enrich errors: %v\n", enrich.ErrorsByType)
		}
	}
	fmt.Printf("  Duration:      %v\n", duration)
	itemsPerSec := 0.0
	if duration.Seconds() > 0 {
		itemsPerSec = float64(stats.TotalCount) / duration.Seconds()
	}
	fmt.Printf("  Items/sec:     %.2f\n", itemsPerSec)
	fmt.Printf("  Catalog file:  %s\n", cfg.OutputFile)
	if detailWritten {
		fmt.Printf("  Detail file:   %s\n", cfg.DetailOutputFile)
	}
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
