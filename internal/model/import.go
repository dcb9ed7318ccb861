package model

import "time"

// FileStatus is the lifecycle state of an uploaded workbook.
// A file is created pending, moves to processing, then terminally to done
// or error. A re-upload never reuses the old row.
type FileStatus string

const (
	FileStatusPending    FileStatus = "pending"
	FileStatusProcessing FileStatus = "processing"
	FileStatusDone       FileStatus = "done"
	FileStatusError      FileStatus = "error"
)

// ImportBatch groups the files of one upload request.
type ImportBatch struct {
	ID        string    `json:"id"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImportFile is the bookkeeping row for one uploaded workbook.
type ImportFile struct {
	ID           string     `json:"id"`
	BatchID      string     `json:"batchId"`
	OriginalName string     `json:"originalName"`
	MimeType     string     `json:"mimeType"`
	Size         int64      `json:"size"`
	FileHash     string     `json:"fileHash"`
	Status       FileStatus `json:"status"`
	DetectedType string     `json:"detectedType"`
	InsertedRows int        `json:"insertedRows"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
}

// FileResult is one entry of the upload response. On success Type and
// Inserted are set; on failure only Error is set.
type FileResult struct {
	File     string `json:"file"`
	Type     string `json:"type,omitempty"`
	Inserted int    `json:"inserted"`
	Error    string `json:"error,omitempty"`
}

// BatchResult aggregates the per-file outcomes of one upload request.
type BatchResult struct {
	BatchID string       `json:"batch_id"`
	Results []FileResult `json:"results"`
}
