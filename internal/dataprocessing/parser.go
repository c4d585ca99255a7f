package dataprocessing

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"emrdash/pkg/contracts/domain"
)

// ParseWorkbook reads the named sheet of an EMR concordance workbook and
// builds the dataset. Rows without a facility name are dropped.
func ParseWorkbook(filePath, sheet string) (*domain.Dataset, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to stat source file: %w", err)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	slog.Debug("Read facility sheet",
		slog.String("file_path", filePath),
		slog.String("sheet_name", sheet),
		slog.Int("total_rows", len(rows)))

	ds, err := ParseRows(sheet, rows)
	if err != nil {
		return nil, err
	}
	ds.Source = filePath
	return ds, nil
}

// ParseRows builds a dataset from raw sheet rows. The first row with any
// non-blank cell is the header.
func ParseRows(sheet string, rows [][]string) (*domain.Dataset, error) {
	headerRow := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerRow = i
			break
		}
	}
	if headerRow == -1 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
	}

	// Data rows wider than the header widen the table with unnamed columns
	// so no cell is dropped.
	width := len(rows[headerRow])
	for _, row := range rows[headerRow+1:] {
		width = max(width, filledWidth(row))
	}

	columns := make([]string, width)
	columnMap := make(map[string]int, len(columns))
	for j := range columns {
		var name string
		if j < len(rows[headerRow]) {
			name = strings.TrimSpace(rows[headerRow][j])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", j)
		}
		columns[j] = name
		if _, exists := columnMap[name]; !exists {
			columnMap[name] = j
		}
	}

	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, exists := columnMap[col]; !exists {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Sheet: sheet, Columns: missing}
	}

	ds := &domain.Dataset{
		Sheet:   sheet,
		Columns: columns,
	}

	dropped := 0
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		cells := make([]string, len(columns))
		copy(cells, row)

		getString := func(col string) string {
			return strings.TrimSpace(cells[columnMap[col]])
		}
		count := func(col string) int64 {
			return parseCount(cells[columnMap[col]], i+1, col)
		}

		facility := getString(domain.ColumnFacilityName)
		if facility == "" {
			dropped++
			continue
		}

		ds.Records = append(ds.Records, domain.FacilityRecord{
			State:              getString(domain.ColumnState),
			LGA:                getString(domain.ColumnLGA),
			FacilityName:       facility,
			TxCurr:             count(domain.ColumnTxCurr),
			TxNew:              count(domain.ColumnTxNew),
			VlEligible:         count(domain.ColumnVlEligible),
			TxPvlsD:            count(domain.ColumnTxPvlsD),
			TxPvlsN:            count(domain.ColumnTxPvlsN),
			Pbs:                count(domain.ColumnPbs),
			PbsRecaptured:      count(domain.ColumnPbsRecaptured),
			IitCases:           count(domain.ColumnIitCases),
			PbsNdrFingerprints: count(domain.ColumnPbsNdrFingerprints),
			Cells:              cells,
		})
	}

	slog.Info("Parsed facility sheet",
		slog.String("sheet_name", sheet),
		slog.Int("header_row", headerRow+1),
		slog.Int("records", len(ds.Records)),
		slog.Int("dropped_without_facility", dropped))

	return ds, nil
}

// filledWidth is the row length without trailing blank cells.
func filledWidth(row []string) int {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return n
}

// ParseNumber reads a numeric cell as displayed by the workbook, with
// thousands separators allowed. Blank, non-numeric, NaN and infinite cells
// report false.
func ParseNumber(raw string) (float64, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseCount converts a count cell to an integer. Blank and unparsable cells
// count as 0 so they do not contribute to sums.
func parseCount(raw string, rowNumber int, column string) int64 {
	f, ok := ParseNumber(raw)
	if !ok {
		if strings.TrimSpace(raw) != "" {
			slog.Debug("Unparsable count cell treated as 0",
				slog.Int("row_number", rowNumber),
				slog.String("column", column),
				slog.String("value", raw))
		}
		return 0
	}
	return int64(math.Round(f))
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
