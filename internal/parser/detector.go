package parser

import "strings"

// Content scan bounds: marker phrases sit in the title area of a sheet,
// never deeper than this.
const (
	detectScanRows = 25
	detectScanCols = 20
)

// DetectType classifies a workbook, filename heuristic first, then a
// content scan of each sheet's title area. The filename wins when both
// match.
func DetectType(filename string, wb *Workbook) WorkbookType {
	if t := detectFromFilename(filename); t != TypeUnknown {
		return t
	}
	return detectFromContent(wb)
}

func detectFromFilename(filename string) WorkbookType {
	name := NormalizeText(filename)
	switch {
	case strings.Contains(name, "groupe") && strings.Contains(name, "elect"):
		return TypeGenerator
	case strings.Contains(name, "autres") && strings.Contains(name, "carburant"):
		return TypeOther
	case strings.Contains(name, "suivi") && strings.Contains(name, "carburant"):
		return TypeVehicle
	default:
		return TypeUnknown
	}
}

func detectFromContent(wb *Workbook) WorkbookType {
	if wb == nil {
		return TypeUnknown
	}
	for _, sheet := range wb.Sheets {
		for r := 0; r < detectScanRows && r < len(sheet.Rows); r++ {
			row := sheet.Rows[r]
			for c := 0; c < detectScanCols && c < len(row); c++ {
				text := NormalizeText(row[c])
				if text == "" {
					continue
				}
				switch {
				case strings.Contains(text, "suivi") && strings.Contains(text, "carburant"):
					return TypeVehicle
				case strings.Contains(text, "groupe") && strings.Contains(text, "electrogene"):
					return TypeGenerator
				case strings.Contains(text, "autres") && strings.Contains(text, "carburants"):
					return TypeOther
				case strings.Contains(text, "demande de carburant"):
					return TypeFuelRequestForm
				}
			}
		}
	}
	return TypeUnknown
}
