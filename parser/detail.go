package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/go-bookdata/models"
)

// missingDescription is the fallback for product pages without a
// description paragraph.
const missingDescription = "no description"

// DetailPage extracts the product page fields: the category from the
// breadcrumb, the description paragraph, and the product information table.
// A breadcrumb too short to carry a category makes the whole document
// unusable; everything else degrades to a documented default.
func (p *Parser) DetailPage(doc []byte) (*models.BookDetail, error) {
	root, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, ParseError{Cause: fmt.Errorf("read product document: %w", err)}
	}

	crumbs := root.Find("ul.breadcrumb a")
	if crumbs.Length() < 3 {
		return nil, ParseError{Cause: fmt.Errorf("breadcrumb has %d links, want at least 3", crumbs.Length())}
	}
	category := strings.TrimSpace(crumbs.Eq(2).Text())

	description := missingDescription
	if node := root.Find("article.product_page > p").First(); node.Length() > 0 {
		description = strings.TrimSpace(node.Text())
	}

	rows := make(map[string]string)
	root.Find("table.table-striped tr").Each(func(_ int, sel *goquery.Selection) {
		key := strings.TrimSpace(sel.Find("th").First().Text())
		if key == "" {
			return
		}
		rows[key] = strings.TrimSpace(sel.Find("td").First().Text())
	})

	return &models.BookDetail{
		Category:    category,
		Description: description,
		UPC:         rows["UPC"],
		Tax:         rows["Tax"],
		StockText:   rows["Availability"],
	}, nil
}
