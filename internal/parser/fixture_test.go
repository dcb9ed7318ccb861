package parser

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// sheetFixture is one sheet of an in-memory test workbook. Row indexes are
// 1-based; unlisted rows stay blank.
type sheetFixture struct {
	name string
	rows map[int][]any
}

// buildWorkbook writes the fixture with excelize and reads it back through
// the real grid reader, so tests exercise the raw-value path end to end.
func buildWorkbook(t *testing.T, sheets []sheetFixture) *Workbook {
	t.Helper()

	data := buildWorkbookBytes(t, sheets)
	wb, err := LoadWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadWorkbook failed: %v", err)
	}
	return wb
}

func buildWorkbookBytes(t *testing.T, sheets []sheetFixture) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				t.Fatalf("NewSheet failed: %v", err)
			}
		}
		for rowNum, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				t.Fatalf("CoordinatesToCellName failed: %v", err)
			}
			rowCopy := row
			if err := f.SetSheetRow(sheet.name, cell, &rowCopy); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}
