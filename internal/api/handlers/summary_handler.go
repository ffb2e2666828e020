package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	middleware "github.com/markdave123-py/Sumora/internal/api/middlewares"
	"github.com/markdave123-py/Sumora/internal/core/summarize"
	"github.com/markdave123-py/Sumora/internal/models"
	"github.com/markdave123-py/Sumora/internal/services"
)

type Summaries interface {
	Summarize(ctx context.Context, req services.SummaryRequest) (*models.Summary, error)
	GetForUser(ctx context.Context, id, userID string) (*models.Summary, error)
	ListByDocument(ctx context.Context, documentID string) ([]models.Summary, error)
	Modes() []summarize.Mode
	Ready() map[summarize.Mode]bool
}

type SummaryHandler struct {
	summaries Summaries
	docs      Documents
}

// NewSummaryHandler wires summary endpoints; docs may be nil when document
// storage is disabled.
func NewSummaryHandler(s Summaries, docs Documents) *SummaryHandler {
	return &SummaryHandler{summaries: s, docs: docs}
}

type createSummaryRequest struct {
	Text string `json:"text"`
	models.SummaryOptions
}

type modesResponse struct {
	Modes []summarize.Mode        `json:"modes"`
	Ready map[summarize.Mode]bool `json:"ready"`
}

// Create summarizes the posted text synchronously.
func (h *SummaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req createSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid body"})
		return
	}

	s, err := h.summaries.Summarize(r.Context(), services.SummaryRequest{
		UserID:  userID,
		Text:    req.Text,
		Options: req.SummaryOptions,
	})
	if err != nil {
		writeError(w, err, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Download serves the summary as a UTF-8 text attachment.
func (h *SummaryHandler) Download(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	body, name := services.ExportText(s)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *SummaryHandler) ListByDocument(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	docID := chi.URLParam(r, "id")

	if h.docs == nil {
		writeError(w, services.ErrPersistenceDisabled, http.StatusNotImplemented)
		return
	}
	if _, err := h.docs.GetForUser(r.Context(), docID, userID); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	list, err := h.summaries.ListByDocument(r.Context(), docID)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *SummaryHandler) Modes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modesResponse{Modes: h.summaries.Modes(), Ready: h.summaries.Ready()})
}

func (h *SummaryHandler) load(w http.ResponseWriter, r *http.Request) (*models.Summary, bool) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	s, err := h.summaries.GetForUser(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}
