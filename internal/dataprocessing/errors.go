package dataprocessing

import (
	"errors"
	"fmt"
	"strings"
)

// Load errors
var (
	ErrSourceNotFound = errors.New("source file not found")
	ErrSheetNotFound  = errors.New("sheet not found")
	ErrMissingColumn  = errors.New("missing required column")
	ErrEmptySheet     = errors.New("sheet has no header row")
)

// MissingColumnError reports every required header absent from the sheet.
type MissingColumnError struct {
	Sheet   string
	Columns []string
}

// Error implements the error interface
func (e *MissingColumnError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("%s in sheet %q: %s", ErrMissingColumn, e.Sheet, strings.Join(quoted, ", "))
}

// Unwrap allows errors.Is(err, ErrMissingColumn)
func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// IsSchemaError reports whether err means the workbook does not have the
// expected shape.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrMissingColumn) || errors.Is(err, ErrSheetNotFound) || errors.Is(err, ErrEmptySheet)
}
