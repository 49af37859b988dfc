package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/aluiziolira/go-bookdata/models"
)

// detailHeader extends the catalog columns with the product page fields.
var detailHeader = []string{"titulo", "precio", "rating", "categoria", "descripcion", "upc", "impuestos", "stock"}

// DetailCSVWriter writes enriched records to CSV.
type DetailCSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewDetailCSVWriter initialises the detail CSV writer and writes the
// header row.
func NewDetailCSVWriter(filename string) (*DetailCSVWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create detail csv file: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(detailHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write detail csv header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush detail csv header: %w", err)
	}

	return &DetailCSVWriter{
		file:   f,
		writer: writer,
	}, nil
}

// Write appends enriched records to the CSV output.
func (dw *DetailCSVWriter) Write(records []models.EnrichedBookRecord) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	for _, record := range records {
		row := []string{
			record.Title,
			strconv.FormatFloat(record.Price, 'f', 2, 64),
			strconv.Itoa(record.Rating),
			record.Category,
			record.Description,
			record.UPC,
			record.Tax,
			record.StockText,
		}
		if err := dw.writer.Write(row); err != nil {
			return fmt.Errorf("write detail csv record: %w", err)
		}
	}
	dw.writer.Flush()
	if err := dw.writer.Error(); err != nil {
		return fmt.Errorf("flush detail csv records: %w", err)
	}
	return nil
}

// Close flushes and closes the file handle.
func (dw *DetailCSVWriter) Close() error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	dw.writer.Flush()
	if err := dw.writer.Error(); err != nil {
		return fmt.Errorf("flush detail csv writer: %w", err)
	}
	return dw.file.Close()
}

// Validate ensures the file has content besides the header.
func (dw *DetailCSVWriter) Validate() error {
	info, err := dw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat detail csv file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("detail csv file is empty")
	}
	return nil
}
