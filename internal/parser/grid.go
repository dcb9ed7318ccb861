package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is the raw rectangular cell content of one sheet, row-major and
// 0-indexed. Cells are nil, float64 or string; no formatting is applied.
type Grid [][]any

// Sheet is one named tab of a workbook.
type Sheet struct {
	Name string
	Rows Grid
}

// Workbook is the in-memory form of one uploaded spreadsheet. It exists
// only for the duration of a single import request.
type Workbook struct {
	Sheets []Sheet
}

// Cell returns the raw value at (row, col), or nil when outside the grid.
func (g Grid) Cell(row, col int) any {
	if row < 0 || row >= len(g) {
		return nil
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// LoadWorkbook reads every sheet of an xlsx stream into raw grids. Raw cell
// values are requested so date cells arrive as numeric serials or plain
// strings, never as formatted locale text; the normalizer decides per column
// how to interpret them.
func LoadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		grid := make(Grid, len(rows))
		for i, row := range rows {
			cells := make([]any, len(row))
			for j, raw := range row {
				cells[j] = typeCell(raw)
			}
			grid[i] = cells
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: grid})
	}
	return wb, nil
}

// typeCell turns a raw cell string into nil, float64 or string. Numeric
// detection here is strict (no locale separators); locale-formatted text
// stays a string for the normalizer to handle.
func typeCell(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
