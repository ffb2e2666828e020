package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	middleware "github.com/markdave123-py/Sumora/internal/api/middlewares"
	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
	"github.com/markdave123-py/Sumora/internal/models"
)

const maxUploadBytes = 32 << 20

type Documents interface {
	UploadAndCreate(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Document, error)
	GetForUser(ctx context.Context, id, userID string) (*models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
}

type DocumentHandler struct {
	docs     Documents
	ingestor ingest.Ingestor
	log      *zap.Logger
}

func NewDocumentHandler(docs Documents, ing ingest.Ingestor, log *zap.Logger) *DocumentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentHandler{docs: docs, ingestor: ing, log: log}
}

// UploadDocument stores the file and queues its summary. Form fields mode,
// max_length and min_length select the summary options.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unreadable file"})
		return
	}

	filename := filepath.Base(header.Filename)
	contentType := ingest.ResolveContentType(header.Header.Get("Content-Type"), filename)

	opts := models.SummaryOptions{
		Mode:      r.FormValue("mode"),
		MaxLength: formInt(r, "max_length"),
		MinLength: formInt(r, "min_length"),
	}

	doc, err := h.docs.UploadAndCreate(r.Context(), userID, filename, contentType, data)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	if err := h.ingestor.Enqueue(r.Context(), ingest.SummaryJob{DocumentID: doc.ID, Options: opts}); err != nil {
		h.log.Warn("document not queued", zap.String("document_id", doc.ID), zap.Error(err))
		writeError(w, err, http.StatusServiceUnavailable)
		return
	}
	h.log.Info("document queued",
		zap.String("document_id", doc.ID),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)))

	writeJSON(w, http.StatusAccepted, doc)
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	documents, err := h.docs.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if documents == nil {
		documents = []models.Document{}
	}
	writeJSON(w, http.StatusOK, documents)
}

func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return n
}
