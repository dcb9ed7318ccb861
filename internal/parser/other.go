package parser

import (
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
)

// Header search bound per sheet of an "autres carburants" workbook.
const otherHeaderScanRows = 25

// OtherParser reads miscellaneous fuel purchase workbooks. Every sheet is
// searched independently; sheets without a recognizable header are
// auxiliary material and skipped without error.
type OtherParser struct {
	opts Options
}

// NewOtherParser creates a misc purchase parser with the given heuristics.
func NewOtherParser(opts Options) *OtherParser {
	return &OtherParser{opts: opts.normalized()}
}

// Parse collects normalized rows from every sheet carrying a date/litres/
// montant header. An empty result is valid: OTHER workbooks may consist
// entirely of unrelated sheets.
func (p *OtherParser) Parse(wb *Workbook, sourceFile string) ([]model.OtherEntry, error) {
	var entries []model.OtherEntry
	for _, sheet := range wb.Sheets {
		headerRow := locateOtherHeader(sheet.Rows)
		if headerRow < 0 {
			continue
		}
		cols := resolveTableColumns(sheet.Rows[headerRow])

		blankStreak := 0
		for r := headerRow + 1; r < len(sheet.Rows); r++ {
			row := sheet.Rows[r]
			if isBlankRow(row) {
				blankStreak++
				if blankStreak >= p.opts.OtherBlankRowLimit {
					break
				}
				continue
			}
			blankStreak = 0

			entry := extractTableEntry(row, cols)
			if entry == nil {
				continue
			}
			entry.Ref = model.RowRef{SourceFile: sourceFile, Sheet: sheet.Name, Row: r + 1}
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func locateOtherHeader(grid Grid) int {
	limit := otherHeaderScanRows
	if len(grid) < limit {
		limit = len(grid)
	}
	for r := 0; r < limit; r++ {
		if isTableHeader(grid[r]) {
			return r
		}
	}
	return -1
}
