package store

import (
	"database/sql"
	"fmt"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
)

// EnsureBatch creates the batch row if it does not exist yet. The id is
// client-supplied so a UI can attach several requests to one batch.
func (s *Store) EnsureBatch(id, creator string) error {
	_, err := s.db.Exec(`
		INSERT INTO import_batches (id, creator) VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, creator)
	if err != nil {
		return fmt.Errorf("failed to ensure import batch: %w", err)
	}
	return nil
}

// CreateImportFile records a freshly uploaded workbook.
func (s *Store) CreateImportFile(f *model.ImportFile) error {
	_, err := s.db.Exec(`
		INSERT INTO import_files (id, batch_id, original_name, mime_type, size, file_hash, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.BatchID, f.OriginalName, f.MimeType, f.Size, f.FileHash, f.Status)
	if err != nil {
		return fmt.Errorf("failed to create import file: %w", err)
	}
	return nil
}

// MarkImportFileDone moves a file to its terminal done state.
func (s *Store) MarkImportFileDone(id, detectedType string, insertedRows int) error {
	_, err := s.db.Exec(`
		UPDATE import_files SET
			status = ?, detected_type = ?, inserted_rows = ?, error_message = '',
			processed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, model.FileStatusDone, detectedType, insertedRows, id)
	if err != nil {
		return fmt.Errorf("failed to mark import file done: %w", err)
	}
	return nil
}

// MarkImportFileError moves a file to its terminal error state. The
// detected type is kept when classification succeeded before the failure.
func (s *Store) MarkImportFileError(id, detectedType, message string) error {
	_, err := s.db.Exec(`
		UPDATE import_files SET
			status = ?, detected_type = ?, error_message = ?,
			processed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, model.FileStatusError, detectedType, message, id)
	if err != nil {
		return fmt.Errorf("failed to mark import file error: %w", err)
	}
	return nil
}

// GetImportFile loads one import file row.
func (s *Store) GetImportFile(id string) (*model.ImportFile, error) {
	row := s.db.QueryRow(`
		SELECT id, batch_id, original_name, mime_type, size, file_hash, status,
		       detected_type, inserted_rows, error_message, created_at, processed_at
		FROM import_files WHERE id = ?
	`, id)
	return scanImportFile(row)
}

// ListBatches returns batches newest first.
func (s *Store) ListBatches(limit int) ([]*model.ImportBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, creator, created_at FROM import_batches
		ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []*model.ImportBatch
	for rows.Next() {
		b := &model.ImportBatch{}
		if err := rows.Scan(&b.ID, &b.Creator, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// ListBatchFiles returns the files of one batch in upload order.
func (s *Store) ListBatchFiles(batchID string) ([]*model.ImportFile, error) {
	rows, err := s.db.Query(`
		SELECT id, batch_id, original_name, mime_type, size, file_hash, status,
		       detected_type, inserted_rows, error_message, created_at, processed_at
		FROM import_files WHERE batch_id = ? ORDER BY created_at, id
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch files: %w", err)
	}
	defer rows.Close()

	var files []*model.ImportFile
	for rows.Next() {
		f, err := scanImportFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImportFile(r rowScanner) (*model.ImportFile, error) {
	f := &model.ImportFile{}
	var processedAt sql.NullTime
	err := r.Scan(&f.ID, &f.BatchID, &f.OriginalName, &f.MimeType, &f.Size, &f.FileHash,
		&f.Status, &f.DetectedType, &f.InsertedRows, &f.ErrorMessage, &f.CreatedAt, &processedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan import file: %w", err)
	}
	if processedAt.Valid {
		t := processedAt.Time
		f.ProcessedAt = &t
	}
	return f, nil
}
