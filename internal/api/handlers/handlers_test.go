package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	middleware "github.com/markdave123-py/Sumora/internal/api/middlewares"
	"github.com/markdave123-py/Sumora/internal/core"
	"github.com/markdave123-py/Sumora/internal/core/extractive"
	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
	"github.com/markdave123-py/Sumora/internal/core/summarize"
	"github.com/markdave123-py/Sumora/internal/models"
	"github.com/markdave123-py/Sumora/internal/services"
)

const article = "Go is a programming language. " +
	"Go programs compile quickly and Go tooling is simple. " +
	"The weather was nice yesterday. " +
	"Go concurrency uses goroutines and channels in Go."

func realSummaries() *services.SummaryService {
	reg := summarize.NewRegistry()
	reg.Register(summarize.ModeExtractive, summarize.Static(extractive.NewRanker("english")))
	return services.NewSummaryService(services.SummaryServiceDeps{Registry: reg, MaxInputChars: 1000})
}

type stubSummaries struct {
	*services.SummaryService
	stored map[string]*models.Summary
	byDoc  map[string][]models.Summary
}

func (s *stubSummaries) GetForUser(_ context.Context, id, userID string) (*models.Summary, error) {
	sum, ok := s.stored[id]
	if !ok || sum.UserID != userID {
		return nil, core.ErrNotFound
	}
	return sum, nil
}

func (s *stubSummaries) ListByDocument(_ context.Context, docID string) ([]models.Summary, error) {
	return s.byDoc[docID], nil
}

type stubDocs struct {
	docs     map[string]*models.Document
	uploaded []string
}

func (d *stubDocs) UploadAndCreate(_ context.Context, userID, filename, contentType string, data []byte) (*models.Document, error) {
	if !ingest.SupportedContentType(contentType) {
		return nil, ingest.ErrUnsupportedContentType
	}
	d.uploaded = append(d.uploaded, filename+"|"+contentType)
	doc := &models.Document{ID: "doc-1", UserID: userID, FileName: filename, ContentType: contentType, Status: models.StatusUploaded}
	d.docs[doc.ID] = doc
	return doc, nil
}

func (d *stubDocs) GetForUser(_ context.Context, id, userID string) (*models.Document, error) {
	doc, ok := d.docs[id]
	if !ok || doc.UserID != userID {
		return nil, core.ErrNotFound
	}
	return doc, nil
}

func (d *stubDocs) ListByUser(_ context.Context, userID string) ([]models.Document, error) {
	var out []models.Document
	for _, doc := range d.docs {
		if doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

type stubIngestor struct {
	jobs []ingest.SummaryJob
	err  error
}

func (s *stubIngestor) Start(context.Context, int) {}

func (s *stubIngestor) Enqueue(_ context.Context, job ingest.SummaryJob) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *stubIngestor) ProcessOne(context.Context, ingest.SummaryJob) error { return nil }

func asUser(r *http.Request, id string) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), id))
}

func withURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSummaryHandler_Create(t *testing.T) {
	h := NewSummaryHandler(realSummaries(), nil)

	body := `{"text":` + strconvQuote(article) + `,"mode":"Resumen Extractivo","max_length":2}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/summaries", strings.NewReader(body)), "u1")
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var got models.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "extractive", got.Mode)
	assert.Equal(t, 2, got.MaxLength)
	assert.Equal(t, "u1", got.UserID)
	assert.Len(t, summarize.SplitSentences(got.Text), 2)
}

func TestSummaryHandler_CreateErrors(t *testing.T) {
	h := NewSummaryHandler(realSummaries(), nil)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"empty text", `{"text":"   "}`, http.StatusBadRequest},
		{"unknown mode", `{"text":"Hola.","mode":"lyrical"}`, http.StatusBadRequest},
		{"too large", `{"text":"` + strings.Repeat("a", 1001) + `"}`, http.StatusRequestEntityTooLarge},
		{"mode not configured", `{"text":"Hola.","mode":"abstractive"}`, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/summaries", strings.NewReader(tc.body)))
			assert.Equal(t, tc.want, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestSummaryHandler_GetAndDownload(t *testing.T) {
	stub := &stubSummaries{
		SummaryService: realSummaries(),
		stored:         map[string]*models.Summary{"s1": {ID: "s1", UserID: "u1", Text: "Resumen con acentos: áé."}},
	}
	h := NewSummaryHandler(stub, nil)

	rr := httptest.NewRecorder()
	h.Download(rr, withURLParam(asUser(httptest.NewRequest(http.MethodGet, "/", nil), "u1"), "id", "s1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="resumen.txt"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "Resumen con acentos: áé.", rr.Body.String())

	rr = httptest.NewRecorder()
	h.Get(rr, withURLParam(asUser(httptest.NewRequest(http.MethodGet, "/", nil), "u2"), "id", "s1"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSummaryHandler_ListByDocument(t *testing.T) {
	docs := &stubDocs{docs: map[string]*models.Document{"d1": {ID: "d1", UserID: "u1"}}}
	stub := &stubSummaries{SummaryService: realSummaries(), byDoc: map[string][]models.Summary{}}
	h := NewSummaryHandler(stub, docs)

	rr := httptest.NewRecorder()
	h.ListByDocument(rr, withURLParam(asUser(httptest.NewRequest(http.MethodGet, "/", nil), "u1"), "id", "d1"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ListByDocument(rr, withURLParam(asUser(httptest.NewRequest(http.MethodGet, "/", nil), "u9"), "id", "d1"))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	NewSummaryHandler(stub, nil).ListByDocument(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "d1"))
	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestSummaryHandler_Modes(t *testing.T) {
	rr := httptest.NewRecorder()
	NewSummaryHandler(realSummaries(), nil).Modes(rr, httptest.NewRequest(http.MethodGet, "/api/modes", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"modes":["extractive"],"ready":{"extractive":true}}`, rr.Body.String())
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDocumentHandler_Upload(t *testing.T) {
	docs := &stubDocs{docs: map[string]*models.Document{}}
	ing := &stubIngestor{}
	h := NewDocumentHandler(docs, ing, nil)

	req := multipartUpload(t, "notas.txt", "application/octet-stream", []byte(article),
		map[string]string{"mode": "abstractive", "max_length": "120", "min_length": "60"})
	rr := httptest.NewRecorder()
	h.UploadDocument(rr, asUser(req, "u1"))

	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
	assert.Equal(t, []string{"notas.txt|text/plain"}, docs.uploaded)
	require.Len(t, ing.jobs, 1)
	assert.Equal(t, ingest.SummaryJob{
		DocumentID: "doc-1",
		Options:    models.SummaryOptions{Mode: "abstractive", MaxLength: 120, MinLength: 60},
	}, ing.jobs[0])
}

func TestDocumentHandler_UploadQueueFull(t *testing.T) {
	ing := &stubIngestor{err: ingest.ErrQueueFull}
	h := NewDocumentHandler(&stubDocs{docs: map[string]*models.Document{}}, ing, nil)

	rr := httptest.NewRecorder()
	h.UploadDocument(rr, asUser(multipartUpload(t, "notas.txt", "text/plain", []byte(article), nil), "u1"))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "queue is full")
	assert.Empty(t, ing.jobs)
}

func TestDocumentHandler_UploadUnsupported(t *testing.T) {
	h := NewDocumentHandler(&stubDocs{docs: map[string]*models.Document{}}, &stubIngestor{}, nil)

	rr := httptest.NewRecorder()
	h.UploadDocument(rr, asUser(multipartUpload(t, "foto.png", "image/png", []byte{1, 2}, nil), "u1"))

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestDocumentHandler_List(t *testing.T) {
	h := NewDocumentHandler(&stubDocs{docs: map[string]*models.Document{}}, &stubIngestor{}, nil)

	rr := httptest.NewRecorder()
	h.GetDocuments(rr, asUser(httptest.NewRequest(http.MethodGet, "/api/documents", nil), "u1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
