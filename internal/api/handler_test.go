package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/config"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/importer"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/parser"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	coordinator := importer.NewCoordinator(s, parser.DefaultOptions())
	handler := NewHandler(s, coordinator, config.Upload{MaxFiles: 10, MaxFileSizeMB: 25})

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router, s
}

func vehicleWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Janvier"))

	rows := [][]any{
		{"SUIVI CARBURANT VEHICULE 2845 TBH"},
		{},
		{"Date", "Jour", "Kilométrage départ", "Kilométrage arrivée", "Km/jour", "Compteur", "Litres", "Montant"},
		{"05/03/2024", "Mardi", 12000, 12150, 150, 12150, 35.5, 180000},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Janvier", cell, &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, data := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestImportEndpoint(t *testing.T) {
	router, s := newTestRouter(t)

	body, contentType := multipartUpload(t,
		map[string]string{"creator": "tester"},
		map[string][]byte{"Suivi carburant 2845 TBH.xlsx": vehicleWorkbook(t)})

	req := httptest.NewRequest(http.MethodPost, "/api/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result model.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.BatchID)
	require.Len(t, result.Results, 1)
	require.Empty(t, result.Results[0].Error)
	require.Equal(t, "vehicle", result.Results[0].Type)
	require.Equal(t, 1, result.Results[0].Inserted)

	n, err := s.CountLogsBySourceFile("vehicle", "Suivi carburant 2845 TBH.xlsx")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// The batch and its file are queryable afterwards.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports/batches/"+result.BatchID+"/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var filesResp struct {
		Files []*model.ImportFile `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filesResp))
	require.Len(t, filesResp.Files, 1)
	require.Equal(t, model.FileStatusDone, filesResp.Files[0].Status)
}

func TestImportEndpointRejectsEmptyUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, map[string]string{"creator": "tester"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportEndpointRejectsTooManyFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	coordinator := importer.NewCoordinator(s, parser.DefaultOptions())
	handler := NewHandler(s, coordinator, config.Upload{MaxFiles: 1, MaxFileSizeMB: 25})
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))

	body, contentType := multipartUpload(t, nil, map[string][]byte{
		"a.xlsx": []byte("x"),
		"b.xlsx": []byte("y"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVehicleLogQueryEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, nil,
		map[string][]byte{"Suivi carburant 2845 TBH.xlsx": vehicleWorkbook(t)})

	req := httptest.NewRequest(http.MethodPost, "/api/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fuel/vehicle?refills=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Logs []*store.VehicleLogRow `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Logs, 1)
	require.True(t, resp.Logs[0].IsRefill)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var vehiclesResp struct {
		Vehicles []*model.Vehicle `json:"vehicles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vehiclesResp))
	require.Len(t, vehiclesResp.Vehicles, 1)
	require.Equal(t, "2845 TBH", vehiclesResp.Vehicles[0].Plate)
}
