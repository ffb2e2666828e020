package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/config"
	"github.com/markdave123-py/Sumora/internal/core"
	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
	objectclient "github.com/markdave123-py/Sumora/internal/core/object-client"
	"github.com/markdave123-py/Sumora/internal/core/summarize"
	"github.com/markdave123-py/Sumora/internal/models"
	"github.com/markdave123-py/Sumora/internal/observability/metrics"
)

// Length bounds accepted from callers, per mode.
const (
	extractiveMinSentences = 1
	extractiveMaxSentences = 10
	abstractiveMinWords    = 50
	abstractiveMaxWords    = 300
)

// ErrPersistenceDisabled is returned by operations that need a database
// or object storage when none is configured.
var ErrPersistenceDisabled = errors.New("persistence is not configured")

// SummaryRequest is one summarization of raw text. DocumentID links the
// result to a stored document when set.
type SummaryRequest struct {
	UserID     string
	DocumentID string
	Text       string
	Options    models.SummaryOptions
}

// SummaryServiceDeps bundles collaborators. DB, Storage and Extractor may be
// nil in stateless deployments (CLI, no DATABASE_URL).
type SummaryServiceDeps struct {
	Registry  *summarize.Registry
	DB        core.DbClient
	Storage   core.ObjectClient
	Extractor core.DocumentExtractor
	Tuning    *config.Tuning
	Metrics   metrics.Recorder
	Log       *zap.Logger

	MaxInputChars int
	Concurrency   int
}

type SummaryService struct {
	registry  *summarize.Registry
	db        core.DbClient
	storage   core.ObjectClient
	extractor core.DocumentExtractor
	tuning    *config.Tuning
	metrics   metrics.Recorder
	log       *zap.Logger

	maxInputChars int
	concurrency   int
}

var _ ingest.DocumentSummarizer = (*SummaryService)(nil)

func NewSummaryService(d SummaryServiceDeps) *SummaryService {
	s := &SummaryService{
		registry:      d.Registry,
		db:            d.DB,
		storage:       d.Storage,
		extractor:     d.Extractor,
		tuning:        d.Tuning,
		metrics:       d.Metrics,
		log:           d.Log,
		maxInputChars: d.MaxInputChars,
		concurrency:   d.Concurrency,
	}
	if s.tuning == nil {
		s.tuning = config.DefaultTuning()
	}
	if s.metrics == nil {
		s.metrics = metrics.Noop{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.extractor == nil {
		s.extractor = ingest.NewDocconvExtractor(false)
	}
	return s
}

// Summarize validates the request, runs the chunked pipeline with the mode's
// capability and persists the result when a database is configured.
func (s *SummaryService) Summarize(ctx context.Context, req SummaryRequest) (*models.Summary, error) {
	if err := ingest.ValidateText(req.Text, s.maxInputChars); err != nil {
		return nil, err
	}

	mode := summarize.ModeExtractive
	if req.Options.Mode != "" {
		m, err := summarize.ParseMode(req.Options.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	capability, err := s.registry.Resolve(ctx, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrProviderNotConfigured, err)
	}

	opts := s.ResolveOptions(mode, req.Options)
	start := time.Now()
	res, err := summarize.Run(ctx, req.Text, capability, summarize.Options{
		MaxLength:   opts.MaxLength,
		MinLength:   opts.MinLength,
		MaxChunk:    opts.MaxChunk,
		Concurrency: s.concurrency,
	})
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordFailure(mode.String())
		s.log.Warn("summarization failed",
			zap.String("mode", mode.String()),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &models.Summary{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		DocumentID: req.DocumentID,
		Mode:       mode.String(),
		MaxLength:  opts.MaxLength,
		MinLength:  opts.MinLength,
		MaxChunk:   opts.MaxChunk,
		ChunkCount: res.Chunks,
		SecondPass: res.SecondPass,
		Text:       res.Summary,
		WordCount:  WordCount(res.Summary),
		CreatedAt:  time.Now().UTC(),
	}

	if s.db != nil && req.UserID != "" {
		if err := s.db.CreateSummary(ctx, summary); err != nil {
			return nil, fmt.Errorf("store summary: %w", err)
		}
	}

	s.metrics.RecordSummary(summary.Mode, res.Chunks, res.SecondPass, elapsed)
	s.log.Info("summary produced",
		zap.String("summary_id", summary.ID),
		zap.String("mode", summary.Mode),
		zap.Int("chunks", res.Chunks),
		zap.Bool("second_pass", res.SecondPass),
		zap.Int("words", summary.WordCount),
		zap.Duration("duration", elapsed))
	return summary, nil
}

// SummarizeDocument downloads a stored document, extracts its text and
// summarizes it, tracking the document status along the way.
func (s *SummaryService) SummarizeDocument(ctx context.Context, docID string, opts models.SummaryOptions) (*models.Summary, error) {
	if s.db == nil || s.storage == nil {
		return nil, ErrPersistenceDisabled
	}

	doc, err := s.db.GetDocumentByID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := s.db.UpdateDocumentStatus(ctx, docID, models.StatusProcessing); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	summary, err := s.summarizeStored(ctx, doc, opts)
	if err != nil {
		if serr := s.db.UpdateDocumentStatus(context.WithoutCancel(ctx), docID, models.StatusFailed); serr != nil {
			s.log.Error("mark document failed", zap.String("document_id", docID), zap.Error(serr))
		}
		return nil, err
	}
	if err := s.db.UpdateDocumentStatus(ctx, docID, models.StatusReady); err != nil {
		return nil, fmt.Errorf("mark ready: %w", err)
	}
	return summary, nil
}

func (s *SummaryService) summarizeStored(ctx context.Context, doc *models.Document, opts models.SummaryOptions) (*models.Summary, error) {
	bucket, key := objectclient.ParseS3URL(doc.StorageURL)
	data, err := s.storage.GetFile(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	text, err := s.extractor.ExtractText(ctx, data, doc.ContentType)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	return s.Summarize(ctx, SummaryRequest{
		UserID:     doc.UserID,
		DocumentID: doc.ID,
		Text:       text,
		Options:    opts,
	})
}

// GetForUser loads a summary owned by userID.
func (s *SummaryService) GetForUser(ctx context.Context, id, userID string) (*models.Summary, error) {
	if s.db == nil {
		return nil, ErrPersistenceDisabled
	}
	sum, err := s.db.GetSummaryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sum.UserID != userID {
		return nil, core.ErrNotFound
	}
	return sum, nil
}

func (s *SummaryService) ListByDocument(ctx context.Context, documentID string) ([]models.Summary, error) {
	if s.db == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.db.ListSummariesByDocument(ctx, documentID)
}

// Modes lists the registered summarization modes.
func (s *SummaryService) Modes() []summarize.Mode {
	return s.registry.Modes()
}

// Ready reports which modes already hold their capability.
func (s *SummaryService) Ready() map[summarize.Mode]bool {
	return s.registry.Ready()
}

// ResolveOptions fills defaults and clamps lengths to the mode's range.
// Extractive lengths count sentences, abstractive lengths count words.
func (s *SummaryService) ResolveOptions(mode summarize.Mode, in models.SummaryOptions) models.SummaryOptions {
	out := models.SummaryOptions{Mode: mode.String(), MaxLength: in.MaxLength, MinLength: in.MinLength, MaxChunk: in.MaxChunk}

	defaults, lo, hi := s.tuning.Extractive, extractiveMinSentences, extractiveMaxSentences
	if mode == summarize.ModeAbstractive {
		defaults, lo, hi = s.tuning.Abstractive, abstractiveMinWords, abstractiveMaxWords
	}

	if out.MaxLength <= 0 {
		out.MaxLength = defaults.MaxLength
	}
	out.MaxLength = clamp(out.MaxLength, lo, hi)

	if out.MinLength <= 0 {
		out.MinLength = defaults.MinLength
	}
	out.MinLength = clamp(out.MinLength, 1, out.MaxLength)

	if out.MaxChunk <= 0 {
		out.MaxChunk = s.tuning.MaxChunk
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
