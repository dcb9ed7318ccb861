package parser

import (
	"regexp"
	"strings"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
)

// Header search bounds for vehicle sheets. Operators prepend a variable
// number of title/logo rows, never more than this.
const vehicleHeaderScanRows = 60

// Plate numbers appear as 4-5 digits followed by a 2-3 letter series,
// optionally separated ("2845 TBH", "12846-TAA").
var plateRe = regexp.MustCompile(`(?i)\b(\d{4,5})\s*-?\s*([a-z]{2,3})\b`)

// plateScan bounds the fallback plate search in the first sheet.
const plateScanRows = 12
const plateScanCols = 12

// VehicleResult is the parsed content of one vehicle workbook.
type VehicleResult struct {
	Plate string // empty when no plate could be found
	Rows  []model.VehicleRow
}

// VehicleParser reads "suivi carburant" workbooks: one vehicle per file,
// one reporting period per sheet.
type VehicleParser struct {
	opts Options
}

// NewVehicleParser creates a vehicle parser with the given heuristics.
func NewVehicleParser(opts Options) *VehicleParser {
	return &VehicleParser{opts: opts.normalized()}
}

// Parse locates the header of each sheet, resolves columns, then streams
// data rows into normalized records. A workbook where no sheet carries a
// vehicle header fails with HeaderNotFoundError; a located header missing a
// required column fails with MissingColumnsError.
func (p *VehicleParser) Parse(wb *Workbook, sourceFile string) (*VehicleResult, error) {
	result := &VehicleResult{
		Plate: extractPlate(sourceFile, wb),
	}

	headerFound := false
	for _, sheet := range wb.Sheets {
		headerRow := locateVehicleHeader(sheet.Rows)
		if headerRow < 0 {
			// Sheets without the header are decorative once at least one
			// real period sheet exists.
			continue
		}
		headerFound = true

		cols := resolveVehicleColumns(sheet.Rows, headerRow)
		if missing := cols.missingRequired(); len(missing) > 0 {
			return nil, &MissingColumnsError{Sheet: sheet.Name, Columns: missing}
		}

		rows := p.parseSheetRows(sheet, cols, headerRow, sourceFile)
		result.Rows = append(result.Rows, rows...)
	}

	if !headerFound {
		return nil, &HeaderNotFoundError{Domain: TypeVehicle}
	}
	return result, nil
}

// locateVehicleHeader scans the top of a sheet for a row holding, at once,
// a cell equal to "date", a cell containing "kilometrage" and a km/day
// marker cell.
func locateVehicleHeader(grid Grid) int {
	limit := vehicleHeaderScanRows
	if len(grid) < limit {
		limit = len(grid)
	}
	for r := 0; r < limit; r++ {
		row := grid[r]
		if findColumn(row, matchDate) < 0 {
			continue
		}
		if findColumn(row, matchKilometrage) < 0 {
			continue
		}
		if findColumn(row, matchKmJour) < 0 {
			continue
		}
		return r
	}
	return -1
}

func (p *VehicleParser) parseSheetRows(sheet Sheet, cols vehicleColumns, headerRow int, sourceFile string) []model.VehicleRow {
	var rows []model.VehicleRow
	blankStreak := 0

	for r := cols.dataStart(headerRow); r < len(sheet.Rows); r++ {
		row := sheet.Rows[r]
		if isBlankRow(row) {
			blankStreak++
			if blankStreak >= p.opts.VehicleBlankRowLimit {
				break
			}
			continue
		}
		blankStreak = 0

		ref := model.RowRef{SourceFile: sourceFile, Sheet: sheet.Name, Row: r + 1}

		if label, ok := missionLabel(row); ok {
			rows = append(rows, model.VehicleRow{Mission: &model.MissionEntry{Label: label, Ref: ref}})
			continue
		}

		entry := p.extractEntry(row, cols, ref)
		if entry == nil {
			continue
		}
		rows = append(rows, model.VehicleRow{Entry: entry})
	}

	return rows
}

// missionLabel detects a mission marker row: any cell normalizing to
// exactly "mission". The label is the row's other textual cells joined.
func missionLabel(row []any) (string, bool) {
	marker := -1
	for i, cell := range row {
		if NormalizeText(cell) == "mission" {
			marker = i
			break
		}
	}
	if marker < 0 {
		return "", false
	}
	var parts []string
	for i, cell := range row {
		if i == marker {
			continue
		}
		s, ok := cell.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), true
}

// extractEntry normalizes one data row. Rows where every numeric and date
// field comes back nil are decorative and dropped.
func (p *VehicleParser) extractEntry(row []any, cols vehicleColumns, ref model.RowRef) *model.VehicleEntry {
	cell := func(idx int) any {
		if idx < 0 || idx >= len(row) {
			return nil
		}
		return row[idx]
	}

	date := ParseDate(cell(cols.date))
	entry := &model.VehicleEntry{
		DayNumber:       ToInt(cell(cols.dayNumber)),
		KmDepart:        ToInt(cell(cols.kmDepart)),
		KmArrivee:       ToInt(cell(cols.kmArrivee)),
		KmJour:          ToFloat(cell(cols.kmJour)),
		KmBetweenRefill: ToFloat(cell(cols.kmBetween)),
		Compteur:        ToInt(cell(cols.compteur)),
		Liters:          ToFloat(cell(cols.liters)),
		MontantAr:       ToInt(cell(cols.montant)),
		Consumption:     ToFloat(cell(cols.consumption)),
		IntervalDays:    ToInt(cell(cols.interval)),
		Ref:             ref,
	}

	// A row without a resolvable date is decorative, whatever else it
	// holds; partial ingestion beats rejecting the file for one bad row.
	if date == nil {
		return nil
	}
	entry.LogDate = *date
	if s, ok := cell(cols.day).(string); ok {
		entry.Day = strings.TrimSpace(s)
	}
	if s, ok := cell(cols.chauffeur).(string); ok {
		entry.Chauffeur = strings.TrimSpace(s)
	}
	if s, ok := cell(cols.frns).(string); ok {
		entry.Frns = strings.TrimSpace(s)
	}
	if s, ok := cell(cols.link).(string); ok {
		entry.Link = strings.TrimSpace(s)
	}

	entry.IsRefill = entry.MontantAr != nil && *entry.MontantAr >= p.opts.RefillThresholdAr
	return entry
}

// extractPlate finds the vehicle's plate number: the filename wins, then
// the title area of the first sheet.
func extractPlate(sourceFile string, wb *Workbook) string {
	if m := plateRe.FindStringSubmatch(sourceFile); m != nil {
		return formatPlate(m[1], m[2])
	}
	if wb == nil || len(wb.Sheets) == 0 {
		return ""
	}
	grid := wb.Sheets[0].Rows
	for r := 0; r < plateScanRows && r < len(grid); r++ {
		row := grid[r]
		for c := 0; c < plateScanCols && c < len(row); c++ {
			s, ok := row[c].(string)
			if !ok {
				continue
			}
			if m := plateRe.FindStringSubmatch(s); m != nil {
				return formatPlate(m[1], m[2])
			}
		}
	}
	return ""
}

func formatPlate(digits, letters string) string {
	return digits + " " + strings.ToUpper(letters)
}
