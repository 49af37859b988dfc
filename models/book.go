// Package models defines the data structures shared across the pipeline.
package models

// BookRecord is one extracted catalog entry. The struct tags carry the
// persisted column names, which downstream consumers depend on.
type BookRecord struct {
	Title        string  `csv:"titulo" json:"titulo"`
	Price        float64 `csv:"precio" json:"precio"`
	Rating       int     `csv:"rating" json:"rating"`
	Availability string  `csv:"disponibilidad" json:"disponibilidad"`
	ImageURL     string  `csv:"imagen_url" json:"imagen_url"`
	DetailURL    string  `csv:"libro_url" json:"libro_url"`
}

// BookDetail holds the fields that only exist on a product page.
type BookDetail struct {
	Category    string `csv:"categoria" json:"categoria"`
	Description string `csv:"descripcion" json:"descripcion"`
	UPC         string `csv:"upc" json:"upc"`
	Tax         string `csv:"impuestos" json:"impuestos"`
	StockText   string `csv:"stock" json:"stock"`
}

// EnrichedBookRecord is a catalog record merged with its product page
// fields. Enrichment only adds fields; the base record is never mutated.
type EnrichedBookRecord struct {
	BookRecord
	BookDetail
}
