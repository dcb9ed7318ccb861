package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownWorkbook is returned when neither the filename nor the sheet
// contents match any known workbook domain.
var ErrUnknownWorkbook = errors.New("workbook type could not be determined")

// ErrFuelRequestForm marks a workbook recognized as a fuel request form,
// which this pipeline does not import.
var ErrFuelRequestForm = errors.New("fuel request form workbooks are not imported by this pipeline")

// HeaderNotFoundError means no sheet of the workbook contained the expected
// header row for its domain.
type HeaderNotFoundError struct {
	Domain WorkbookType
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("no %s header row found in workbook", e.Domain)
}

// MissingColumnsError names the required semantic columns a located header
// row failed to provide.
type MissingColumnsError struct {
	Sheet   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("sheet %q: missing required columns: %s", e.Sheet, strings.Join(e.Columns, ", "))
}
