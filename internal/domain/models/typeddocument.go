package models

import "time"

// TypedDocument is one upload recorded against a catalog document type.
//
// It is the canonical shape used everywhere above the persistence adapter.
// Records are immutable once written: a new upload for the same type creates
// a new record, and the "latest status" view is always derived at query time.
// The only mutation is a full delete of every record for a (user, type) pair.
//
// ID is backend-assigned: a Mongo ObjectID hex when the document store is
// active, a decimal auto-increment when the relational store is active.
// Backend-specific field names (relational user_id vs document-store user)
// never leak past the store package.
type TypedDocument struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	FileType   string    `json:"fileType"` // MIME type
	FileSize   int64     `json:"fileSize"` // bytes
	UploadDate time.Time `json:"uploadDate"`
	UserID     string    `json:"user"`

	// UserName is a display-name annotation added to history listings.
	// It is resolved from the user directory and never persisted.
	UserName string `json:"userName,omitempty"`
}
