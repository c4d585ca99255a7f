package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"emrdash/internal/dataprocessing"
	"emrdash/pkg/contracts/domain"
)

const (
	// ExportFilename is the suggested name of the downloaded export.
	ExportFilename = "filtered_data.csv"
	// ContentType is the media type of the export.
	ContentType = "text/csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes exports below a base directory
type CSVWriter struct {
	baseDir string
}

// NewCSVWriter creates a writer rooted at baseDir. An empty baseDir means the
// working directory.
func NewCSVWriter(baseDir string) *CSVWriter {
	return &CSVWriter{baseDir: baseDir}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Encode writes the header line and records to w.
func Encode(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// EncodeCSV renders records with the given columns as CSV bytes.
func EncodeCSV(columns []string, records []domain.FacilityRecord) ([]byte, error) {
	var buf bytes.Buffer
	err := Encode(&buf, WriteOptions{
		Headers: columns,
		Records: Rows(columns, records),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Rows returns the cells of each record, padded or cut to len(columns).
// Indicator cells are written as plain numbers, so "1,250" becomes "1250";
// cells that do not parse keep their text. Records without raw cells fall
// back to their named fields.
func Rows(columns []string, records []domain.FacilityRecord) [][]string {
	countCols := make([]bool, len(columns))
	for j, col := range columns {
		countCols[j] = domain.IsCountColumn(col)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		cells := r.Cells
		if cells == nil {
			cells = namedCells(columns, r)
		}
		row := make([]string, len(columns))
		copy(row, cells)
		for j, isCount := range countCols {
			if isCount {
				row[j] = numericCell(row[j])
			}
		}
		rows[i] = row
	}
	return rows
}

func numericCell(raw string) string {
	f, ok := dataprocessing.ParseNumber(raw)
	if !ok {
		return raw
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func namedCells(columns []string, r domain.FacilityRecord) []string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = r.Value(col)
	}
	return cells
}

// WriteCSV writes data to a CSV file below the writer's base directory
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}

	if err := Encode(file, options); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return fullPath, nil
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}
