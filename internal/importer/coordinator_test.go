package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/parser"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// buildXLSX writes an in-memory workbook: sheet name to 1-based row map.
func buildXLSX(t *testing.T, sheets map[string]map[int][]any, order []string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for rowNum, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			require.NoError(t, err)
			rowCopy := row
			require.NoError(t, f.SetSheetRow(name, cell, &rowCopy))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func vehicleXLSX(t *testing.T, dates ...string) []byte {
	t.Helper()
	rows := map[int][]any{
		1: {"SUIVI CARBURANT VEHICULE 2845 TBH"},
		3: {"Date", "Jour", "Kilométrage départ", "Kilométrage arrivée", "Km/jour", "Compteur", "Litres", "Montant"},
	}
	for i, d := range dates {
		rows[4+i] = []any{d, "Lundi", 100 + i, 200 + i, 100, 200 + i, 30, 150000}
	}
	return buildXLSX(t, map[string]map[int][]any{"Janvier": rows}, []string{"Janvier"})
}

func generatorXLSX(t *testing.T) []byte {
	t.Helper()
	return buildXLSX(t, map[string]map[int][]any{"Feuil1": {
		1: {"GROUPE ELECTROGENE"},
		2: {"Date", "Litres", "Montant"},
		3: {"05/03/2024", 40, 200000},
	}}, []string{"Feuil1"})
}

func TestProcessUpload_PartialBatchSurvivesBadFile(t *testing.T) {
	s := newTestStore(t)
	c := NewCoordinator(s, parser.DefaultOptions())

	// The middle file classifies as vehicle but has no data header.
	broken := buildXLSX(t, map[string]map[int][]any{"Feuil1": {
		1: {"SUIVI CARBURANT"},
	}}, []string{"Feuil1"})

	files := []UploadedFile{
		{Name: "Suivi carburant 2845 TBH.xlsx", Data: vehicleXLSX(t, "05/03/2024", "06/03/2024")},
		{Name: "Suivi carburant 12846 TAA.xlsx", Data: broken},
		{Name: "Groupe electrogene.xlsx", Data: generatorXLSX(t)},
	}

	result, err := c.ProcessUpload("", "tester", files)
	require.NoError(t, err)
	require.NotEmpty(t, result.BatchID)
	require.Len(t, result.Results, 3)

	require.Empty(t, result.Results[0].Error)
	require.Equal(t, "vehicle", result.Results[0].Type)
	require.Equal(t, 2, result.Results[0].Inserted)

	require.NotEmpty(t, result.Results[1].Error)
	require.Zero(t, result.Results[1].Inserted)

	require.Empty(t, result.Results[2].Error)
	require.Equal(t, "generator", result.Results[2].Type)
	require.Equal(t, 1, result.Results[2].Inserted)

	// The failure is recorded, the siblings' rows landed.
	recorded, err := s.ListBatchFiles(result.BatchID)
	require.NoError(t, err)
	require.Len(t, recorded, 3)
	statuses := map[model.FileStatus]int{}
	for _, f := range recorded {
		statuses[f.Status]++
	}
	require.Equal(t, 2, statuses[model.FileStatusDone])
	require.Equal(t, 1, statuses[model.FileStatusError])

	n, err := s.CountLogsBySourceFile("vehicle", "Suivi carburant 2845 TBH.xlsx")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	n, err = s.CountLogsBySourceFile("generator", "Groupe electrogene.xlsx")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestProcessUpload_ReimportReplacesRows(t *testing.T) {
	s := newTestStore(t)
	c := NewCoordinator(s, parser.DefaultOptions())

	name := "Suivi carburant 2845 TBH.xlsx"

	first, err := c.ProcessUpload("batch-1", "tester", []UploadedFile{
		{Name: name, Data: vehicleXLSX(t, "05/03/2024", "06/03/2024", "07/03/2024")},
	})
	require.NoError(t, err)
	require.Equal(t, 3, first.Results[0].Inserted)

	n, err := s.CountLogsBySourceFile("vehicle", name)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// Re-uploading the corrected file replaces the old generation wholesale.
	second, err := c.ProcessUpload("batch-2", "tester", []UploadedFile{
		{Name: name, Data: vehicleXLSX(t, "05/03/2024", "06/03/2024")},
	})
	require.NoError(t, err)
	require.Equal(t, 2, second.Results[0].Inserted)

	n, err = s.CountLogsBySourceFile("vehicle", name)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestProcessUpload_UnknownWorkbookIsPerFileError(t *testing.T) {
	s := newTestStore(t)
	c := NewCoordinator(s, parser.DefaultOptions())

	unknown := buildXLSX(t, map[string]map[int][]any{"Feuil1": {
		1: {"budget previsionnel"},
	}}, []string{"Feuil1"})

	result, err := c.ProcessUpload("", "tester", []UploadedFile{
		{Name: "classeur.xlsx", Data: unknown},
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	require.NotEmpty(t, result.Results[0].Error)

	files, err := s.ListBatchFiles(result.BatchID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, model.FileStatusError, files[0].Status)
	require.NotEmpty(t, files[0].FileHash)
}

func TestProcessUpload_VehicleRowsLinkToRegistry(t *testing.T) {
	s := newTestStore(t)
	c := NewCoordinator(s, parser.DefaultOptions())

	_, err := c.ProcessUpload("", "tester", []UploadedFile{
		{Name: "Suivi carburant 2845 TBH.xlsx", Data: vehicleXLSX(t, "05/03/2024")},
	})
	require.NoError(t, err)

	vehicles, err := s.ListVehicles()
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	require.Equal(t, "2845 TBH", vehicles[0].Plate)

	logs, err := s.ListVehicleLogs(store.VehicleLogQueryOptions{VehicleID: &vehicles[0].ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestProcessUpload_CorruptFileIsPerFileError(t *testing.T) {
	s := newTestStore(t)
	c := NewCoordinator(s, parser.DefaultOptions())

	result, err := c.ProcessUpload("", "tester", []UploadedFile{
		{Name: "Suivi carburant 2845 TBH.xlsx", Data: []byte("not a zip archive")},
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	require.NotEmpty(t, result.Results[0].Error)
}
