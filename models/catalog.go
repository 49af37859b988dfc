package models

// Catalog accumulates records in extraction order. A single walker owns it
// while a run is in progress; duplicate records are kept as-is.
type Catalog struct {
	records []BookRecord
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Append adds a record at the end.
func (c *Catalog) Append(record BookRecord) {
	c.records = append(c.records, record)
}

// Len reports how many records have been accumulated.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns a copy of the accumulated records, so the snapshot stays
// stable even if the catalog keeps growing.
func (c *Catalog) Records() []BookRecord {
	out := make([]BookRecord, len(c.records))
	copy(out, c.records)
	return out
}

// SummaryStats aggregates price and rating figures over a dataset. The zero
// value describes an empty catalog.
type SummaryStats struct {
	TotalCount int
	AvgPrice   float64
	MinPrice   float64
	MaxPrice   float64
	AvgRating  float64
}
