package pipeline

import "github.com/aluiziolira/go-bookdata/models"

// Summarize computes aggregate price and rating figures over the extracted
// records. An empty slice yields the zero-value stats.
func Summarize(records []models.BookRecord) models.SummaryStats {
	if len(records) == 0 {
		return models.SummaryStats{}
	}

	stats := models.SummaryStats{
		TotalCount: len(records),
		MinPrice:   records[0].Price,
		MaxPrice:   records[0].Price,
	}

	var priceSum, ratingSum float64
	for _, record := range records {
		priceSum += record.Price
		ratingSum += float64(record.Rating)
		if record.Price < stats.MinPrice {
			stats.MinPrice = record.Price
		}
		if record.Price > stats.MaxPrice {
			stats.MaxPrice = record.Price
		}
	}

	stats.AvgPrice = priceSum / float64(len(records))
	stats.AvgRating = ratingSum / float64(len(records))
	return stats
}
