package parser

import (
	"strings"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
)

// Title search bound for generator sheets.
const generatorTitleScanRows = 15

// GeneratorParser reads "groupe électrogène" workbooks: a single sheet with
// one table, no mission rows, no compound header.
type GeneratorParser struct {
	opts Options
}

// NewGeneratorParser creates a generator parser with the given heuristics.
func NewGeneratorParser(opts Options) *GeneratorParser {
	return &GeneratorParser{opts: opts.normalized()}
}

// Parse locates the title row, takes the row below it as the header, then
// streams data rows. When the title is absent it falls back to locating a
// classic date/litres/montant header directly.
func (p *GeneratorParser) Parse(wb *Workbook, sourceFile string) ([]model.GeneratorEntry, error) {
	if len(wb.Sheets) == 0 {
		return nil, &HeaderNotFoundError{Domain: TypeGenerator}
	}
	sheet := wb.Sheets[0]

	headerRow := locateGeneratorHeader(sheet.Rows)
	if headerRow < 0 {
		return nil, &HeaderNotFoundError{Domain: TypeGenerator}
	}

	cols := resolveTableColumns(sheet.Rows[headerRow])
	if missing := cols.missingRequired(); len(missing) > 0 {
		return nil, &MissingColumnsError{Sheet: sheet.Name, Columns: missing}
	}

	var entries []model.GeneratorEntry
	blankStreak := 0
	for r := headerRow + 1; r < len(sheet.Rows); r++ {
		row := sheet.Rows[r]
		if isBlankRow(row) {
			blankStreak++
			if blankStreak >= p.opts.GeneratorBlankRowLimit {
				break
			}
			continue
		}
		blankStreak = 0

		entry := extractTableEntry(row, cols)
		if entry == nil {
			continue
		}
		entries = append(entries, model.GeneratorEntry{
			LogDate:   entry.LogDate,
			Liters:    entry.Liters,
			MontantAr: entry.MontantAr,
			Link:      entry.Link,
			Ref:       model.RowRef{SourceFile: sourceFile, Sheet: sheet.Name, Row: r + 1},
		})
	}
	return entries, nil
}

// locateGeneratorHeader returns the header row index: one row below the
// "groupe électrogène" title, or, failing that, a row that itself looks
// like a date/litres/montant header (the title then sits above it).
func locateGeneratorHeader(grid Grid) int {
	limit := generatorTitleScanRows
	if len(grid) < limit {
		limit = len(grid)
	}
	for r := 0; r < limit; r++ {
		for _, cell := range grid[r] {
			text := NormalizeText(cell)
			if strings.Contains(text, "groupe") && strings.Contains(text, "electrogene") {
				if r+1 < len(grid) {
					return r + 1
				}
				return -1
			}
		}
	}
	for r := 0; r < limit; r++ {
		if isTableHeader(grid[r]) {
			return r
		}
	}
	return -1
}

// extractTableEntry normalizes a date/litres/montant/link row. Rows whose
// date cannot be resolved are dropped; a link alone never keeps a row.
func extractTableEntry(row []any, cols tableColumns) *model.OtherEntry {
	cell := func(idx int) any {
		if idx < 0 || idx >= len(row) {
			return nil
		}
		return row[idx]
	}

	date := ParseDate(cell(cols.date))
	if date == nil {
		return nil
	}

	entry := &model.OtherEntry{
		LogDate:   *date,
		Liters:    ToFloat(cell(cols.liters)),
		MontantAr: ToInt(cell(cols.montant)),
	}
	if s, ok := cell(cols.link).(string); ok {
		entry.Link = strings.TrimSpace(s)
	}
	return entry
}
