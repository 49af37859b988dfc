// Package parser turns fetched catalog and product documents into records.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/go-bookdata/models"
)

var (
	errMissingTitle  = errors.New("missing title attribute")
	errMissingHref   = errors.New("missing href attribute")
	errNegativePrice = errors.New("negative price")
)

// Parser extracts records from books.toscrape.com style markup. It holds no
// mutable state, so one instance can parse any number of documents.
type Parser struct {
	baseURL string
}

// New builds a parser that absolutizes links against baseURL.
func New(baseURL string) *Parser {
	return &Parser{baseURL: strings.TrimRight(baseURL, "/")}
}

// CatalogPage is the outcome of parsing one catalog document.
type CatalogPage struct {
	Records []models.BookRecord
	Skipped []SkippedItem
}

// SkippedItem records why one catalog entry was left out.
type SkippedItem struct {
	Index int
	Field string
	Err   error
}

// CatalogPage extracts every product entry from a catalog document, in
// document order. An entry missing a required field is skipped with a
// reason, never fatal; only an unreadable document produces an error.
func (p *Parser) CatalogPage(doc []byte) (*CatalogPage, error) {
	root, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, ParseError{Cause: fmt.Errorf("read catalog document: %w", err)}
	}

	page := &CatalogPage{}
	root.Find("article.product_pod").Each(func(i int, sel *goquery.Selection) {
		record, err := p.extractRecord(sel)
		if err != nil {
			field := ""
			var fieldErr FieldError
			if errors.As(err, &fieldErr) {
				field = fieldErr.Field
			}
			page.Skipped = append(page.Skipped, SkippedItem{Index: i, Field: field, Err: err})
			return
		}
		page.Records = append(page.Records, record)
	})

	return page, nil
}

func (p *Parser) extractRecord(sel *goquery.Selection) (models.BookRecord, error) {
	anchor := sel.Find("h3 a").First()
	title := strings.TrimSpace(anchor.AttrOr("title", ""))
	if title == "" {
		return models.BookRecord{}, FieldError{Field: "title", Cause: errMissingTitle}
	}
	href := anchor.AttrOr("href", "")
	if href == "" {
		return models.BookRecord{}, FieldError{Field: "detail_url", Value: title, Cause: errMissingHref}
	}

	price, err := parsePrice(sel.Find("p.price_color").First().Text())
	if err != nil {
		return models.BookRecord{}, err
	}

	availability := strings.TrimSpace(sel.Find("p.instock.availability").First().Text())
	if availability == "" {
		availability = strings.TrimSpace(sel.Find("p.availability").First().Text())
	}

	return models.BookRecord{
		Title:        title,
		Price:        price,
		Rating:       ratingFromClass(sel.Find("p.star-rating").First().AttrOr("class", "")),
		Availability: availability,
		ImageURL:     p.absoluteURL(sel.Find("img").First().AttrOr("src", "")),
		DetailURL:    p.detailURL(href),
	}, nil
}

// parsePrice strips currency glyphs, including the mojibake form the site
// serves, and parses the remainder as a non-negative decimal.
func parsePrice(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "Â£", "")
	cleaned = strings.ReplaceAll(cleaned, "£", "")
	cleaned = strings.TrimSpace(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, FieldError{Field: "price", Value: text, Cause: err}
	}
	if value < 0 {
		return 0, FieldError{Field: "price", Value: text, Cause: errNegativePrice}
	}
	return value, nil
}

// ratingFromClass maps the second class token of the star-rating element to
// a numeric scale. Anything unrecognized, including a missing element, is 0.
func ratingFromClass(class string) int {
	parts := strings.Fields(class)
	if len(parts) < 2 {
		return 0
	}
	switch parts[1] {
	case "One":
		return 1
	case "Two":
		return 2
	case "Three":
		return 3
	case "Four":
		return 4
	case "Five":
		return 5
	default:
		return 0
	}
}

func (p *Parser) absoluteURL(rel string) string {
	if rel == "" {
		return ""
	}
	return p.baseURL + "/" + strings.ReplaceAll(rel, "../", "")
}

// detailURL rewrites a catalog-relative product link into an absolute URL
// under the catalogue section.
func (p *Parser) detailURL(href string) string {
	return p.baseURL + "/catalogue/" + strings.ReplaceAll(href, "../", "")
}
