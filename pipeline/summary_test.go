package pipeline

import (
	"math"
	"testing"

	"github.com/aluiziolira/go-bookdata/models"
)

func TestSummarize(t *testing.T) {
	records := []models.BookRecord{
		{Title: "A", Price: 10, Rating: 1},
		{Title: "B", Price: 20, Rating: 3},
		{Title: "C", Price: 30, Rating: 5},
	}

	stats := Summarize(records)

	if stats.TotalCount != 3 {
		t.Fatalf("total=%d, want 3", stats.TotalCount)
	}
	if stats.AvgPrice != 20 {
		t.Fatalf("avg price=%v, want 20", stats.AvgPrice)
	}
	if stats.MinPrice != 10 || stats.MaxPrice != 30 {
		t.Fatalf("price range=[%v, %v], want [10, 30]", stats.MinPrice, stats.MaxPrice)
	}
	if stats.AvgRating != 3 {
		t.Fatalf("avg rating=%v, want 3", stats.AvgRating)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)

	if stats != (models.SummaryStats{}) {
		t.Fatalf("stats=%+v, want zero value", stats)
	}
}

func TestSummarizeSingleRecord(t *testing.T) {
	stats := Summarize([]models.BookRecord{{Title: "Only", Price: 12.34, Rating: 4}})

	if stats.TotalCount != 1 {
		t.Fatalf("total=%d, want 1", stats.TotalCount)
	}
	if stats.MinPrice != 12.34 || stats.MaxPrice != 12.34 || stats.AvgPrice != 12.34 {
		t.Fatalf("prices=%+v, want all 12.34", stats)
	}
	if stats.AvgRating != 4 {
		t.Fatalf("avg rating=%v, want 4", stats.AvgRating)
	}
}

func TestSummarizeFractionalAverages(t *testing.T) {
	records := []models.BookRecord{
		{Price: 10.10, Rating: 2},
		{Price: 10.20, Rating: 3},
	}

	stats := Summarize(records)

	if math.Abs(stats.AvgPrice-10.15) > 1e-9 {
		t.Fatalf("avg price=%v, want 10.15", stats.AvgPrice)
	}
	if math.Abs(stats.AvgRating-2.5) > 1e-9 {
		t.Fatalf("avg rating=%v, want 2.5", stats.AvgRating)
	}
}
