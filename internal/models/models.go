package models

import (
	"time"
)

// Document status values.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Document is an uploaded source file awaiting or holding a summary.
type Document struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	StorageURL  string    `db:"storage_url" json:"storage_url"`
	SourceType  string    `db:"source_type" json:"source_type"` // "upload" or "text"
	ContentType string    `db:"content_type" json:"content_type"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SummaryOptions are the caller-facing knobs of one summarization.
// Zero values select the mode's defaults.
type SummaryOptions struct {
	Mode      string `json:"mode"`
	MaxLength int    `json:"max_length,omitempty"`
	MinLength int    `json:"min_length,omitempty"`
	MaxChunk  int    `json:"max_chunk,omitempty"`
}

// Summary is one produced summary. DocumentID is empty for raw-text requests.
type Summary struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	DocumentID string    `db:"document_id" json:"document_id,omitempty"`
	Mode       string    `db:"mode" json:"mode"`
	MaxLength  int       `db:"max_length" json:"max_length"`
	MinLength  int       `db:"min_length" json:"min_length"`
	MaxChunk   int       `db:"max_chunk" json:"max_chunk"`
	ChunkCount int       `db:"chunk_count" json:"chunk_count"`
	SecondPass bool      `db:"second_pass" json:"second_pass"`
	Text       string    `db:"text" json:"text"`
	WordCount  int       `db:"word_count" json:"word_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
