package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/markdave123-py/Sumora/internal/core"
	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
	"github.com/markdave123-py/Sumora/internal/models"
)

type DocumentService struct {
	db      core.DbClient
	storage core.ObjectClient
	bucket  string
}

func NewDocumentService(db core.DbClient, storage core.ObjectClient, bucket string) *DocumentService {
	return &DocumentService{db: db, storage: storage, bucket: bucket}
}

// UploadAndCreate stores the file and records it as an uploaded document.
func (s *DocumentService) UploadAndCreate(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Document, error) {
	if len(data) == 0 {
		return nil, ingest.ErrEmptyInput
	}
	if !ingest.SupportedContentType(contentType) {
		return nil, fmt.Errorf("%w: %q", ingest.ErrUnsupportedContentType, contentType)
	}

	docID := uuid.NewString()
	key := s.objectKey(userID, docID, filename)

	url, err := s.storage.UploadFile(ctx, s.bucket, key, data, contentType)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:          docID,
		UserID:      userID,
		FileName:    filename,
		StorageURL:  url,
		SourceType:  "upload",
		ContentType: contentType,
		Status:      models.StatusUploaded,
	}
	if err := s.db.CreateDocument(ctx, doc); err != nil {
		// drop the object so a failed insert leaves nothing behind
		if delErr := s.storage.DeleteFile(context.WithoutCancel(ctx), s.bucket, key); delErr != nil {
			return nil, fmt.Errorf("create document: %w (cleanup of %s failed: %v)", err, key, delErr)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// GetForUser hides documents owned by someone else behind ErrNotFound.
func (s *DocumentService) GetForUser(ctx context.Context, id, userID string) (*models.Document, error) {
	doc, err := s.db.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, core.ErrNotFound
	}
	return doc, nil
}

func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	return s.db.ListDocumentsByUser(ctx, userID)
}

// objectKey creates a consistent S3 key layout.
func (s *DocumentService) objectKey(userID, docID, filename string) string {
	filename = strings.TrimSpace(filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	return path.Join("users", userID, "documents", docID, path.Base(filename))
}
