package importer

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/parser"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/store"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/pkg/checksum"
)

// UploadedFile is one workbook of an upload request, read fully into
// memory by the HTTP layer before parsing begins.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Coordinator runs the ingestion pipeline: type detection, domain parsing
// and per-file transactional persistence. Files are processed sequentially;
// one malformed workbook never aborts its siblings.
type Coordinator struct {
	store *store.Store
	opts  parser.Options
}

// NewCoordinator creates the orchestrator over a request-scoped store
// handle.
func NewCoordinator(st *store.Store, opts parser.Options) *Coordinator {
	return &Coordinator{store: st, opts: opts}
}

// ProcessUpload ingests one upload request. The batch id is client
// supplied; an empty id gets a fresh one. Each file yields exactly one
// result entry, success or failure.
func (c *Coordinator) ProcessUpload(batchID, creator string, files []UploadedFile) (*model.BatchResult, error) {
	if batchID == "" {
		batchID = uuid.New().String()
	}
	if err := c.store.EnsureBatch(batchID, creator); err != nil {
		return nil, err
	}

	result := &model.BatchResult{BatchID: batchID}
	start := time.Now()

	for _, file := range files {
		result.Results = append(result.Results, c.processFile(batchID, file))
	}

	done, failed := 0, 0
	for _, r := range result.Results {
		if r.Error != "" {
			failed++
		} else {
			done++
		}
	}
	slog.Info("import batch processed",
		"batch_id", batchID,
		"files", len(files),
		"done", done,
		"failed", failed,
		"duration", time.Since(start))

	return result, nil
}

// processFile runs one workbook through the pipeline and records its
// terminal status. Every failure path surfaces as a {file, error} entry.
func (c *Coordinator) processFile(batchID string, file UploadedFile) model.FileResult {
	fileRow := &model.ImportFile{
		ID:           uuid.New().String(),
		BatchID:      batchID,
		OriginalName: file.Name,
		MimeType:     file.MimeType,
		Size:         int64(len(file.Data)),
		FileHash:     checksum.Sum(file.Data),
		Status:       model.FileStatusProcessing,
	}
	if err := c.store.CreateImportFile(fileRow); err != nil {
		slog.Error("failed to record import file", "file", file.Name, "error", err)
		return model.FileResult{File: file.Name, Error: err.Error()}
	}

	detectedType, inserted, err := c.ingestFile(batchID, fileRow.ID, file)
	if err != nil {
		if markErr := c.store.MarkImportFileError(fileRow.ID, string(detectedType), err.Error()); markErr != nil {
			slog.Error("failed to mark import file error", "file", file.Name, "error", markErr)
		}
		slog.Warn("file import failed",
			"file", file.Name, "type", detectedType, "error", err)
		return model.FileResult{File: file.Name, Error: err.Error()}
	}

	if err := c.store.MarkImportFileDone(fileRow.ID, string(detectedType), inserted); err != nil {
		slog.Error("failed to mark import file done", "file", file.Name, "error", err)
		return model.FileResult{File: file.Name, Error: err.Error()}
	}

	slog.Info("file imported",
		"file", file.Name, "type", detectedType, "inserted", inserted)
	return model.FileResult{File: file.Name, Type: string(detectedType), Inserted: inserted}
}

// ingestFile classifies, parses and persists one workbook. The delete of
// the previous generation and the insert of the new one share a single
// transaction.
func (c *Coordinator) ingestFile(batchID, fileID string, file UploadedFile) (parser.WorkbookType, int, error) {
	wb, err := parser.LoadWorkbook(bytes.NewReader(file.Data))
	if err != nil {
		return parser.TypeUnknown, 0, err
	}

	detected := parser.DetectType(file.Name, wb)
	switch detected {
	case parser.TypeUnknown:
		return detected, 0, parser.ErrUnknownWorkbook
	case parser.TypeFuelRequestForm:
		return detected, 0, parser.ErrFuelRequestForm
	}

	meta := store.InsertMeta{BatchID: batchID, FileID: fileID}

	switch detected {
	case parser.TypeVehicle:
		result, err := parser.NewVehicleParser(c.opts).Parse(wb, file.Name)
		if err != nil {
			return detected, 0, err
		}
		if result.Plate != "" {
			vehicleID, err := c.store.EnsureVehicle(result.Plate)
			if err != nil {
				return detected, 0, err
			}
			meta.VehicleID = &vehicleID
		}
		inserted, err := c.replaceGeneration(file.Name,
			c.store.DeleteVehicleLogsBySourceFile,
			func(tx txHandle) (int, error) {
				return c.store.InsertVehicleRows(tx, result.Rows, meta)
			})
		return detected, inserted, err

	case parser.TypeGenerator:
		entries, err := parser.NewGeneratorParser(c.opts).Parse(wb, file.Name)
		if err != nil {
			return detected, 0, err
		}
		inserted, err := c.replaceGeneration(file.Name,
			c.store.DeleteGeneratorLogsBySourceFile,
			func(tx txHandle) (int, error) {
				return c.store.InsertGeneratorEntries(tx, entries, meta)
			})
		return detected, inserted, err

	case parser.TypeOther:
		entries, err := parser.NewOtherParser(c.opts).Parse(wb, file.Name)
		if err != nil {
			return detected, 0, err
		}
		inserted, err := c.replaceGeneration(file.Name,
			c.store.DeleteOtherLogsBySourceFile,
			func(tx txHandle) (int, error) {
				return c.store.InsertOtherEntries(tx, entries, meta)
			})
		return detected, inserted, err
	}

	return detected, 0, fmt.Errorf("no parser for workbook type %q", detected)
}
