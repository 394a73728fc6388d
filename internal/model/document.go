package model

import "time"

const (
	DocumentStatusPending   = "pending"
	DocumentStatusProcessed = "processed"
	DocumentStatusError     = "error"
)

// Document tracks an uploaded source file. Status is advisory bookkeeping:
// retrieval is served from the knowledge store, which is written separately
// and without a shared transaction.
type Document struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Filename    string     `gorm:"size:256;not null;index" json:"filename"`
	FilePath    string     `gorm:"size:512;not null" json:"file_path"`
	FileType    string     `gorm:"size:16" json:"file_type"`
	UploadedAt  time.Time  `gorm:"autoCreateTime" json:"uploaded_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Status      string     `gorm:"size:16;not null;default:pending" json:"status"`
}
