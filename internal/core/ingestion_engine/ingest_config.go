package ingestion_engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/models"
)

// IngestConfig tunes the background summary workers.
//
// QueueSize:      capacity of the in-memory job queue.
// JobTimeout:     upper bound for one document (download, extract, summarize, persist).
// EnqueueTimeout: how long Enqueue waits for room in a full queue.
type IngestConfig struct {
	QueueSize      int
	JobTimeout     time.Duration
	EnqueueTimeout time.Duration
}

// ErrQueueFull is returned by Enqueue when no slot frees up in time.
var ErrQueueFull = errors.New("summary queue is full")

func DefaultIngestConfig() *IngestConfig {
	return &IngestConfig{QueueSize: 64, JobTimeout: 5 * time.Minute, EnqueueTimeout: 2 * time.Second}
}

// SummaryJob asks for one stored document to be summarized.
type SummaryJob struct {
	DocumentID string
	Options    models.SummaryOptions
}

// DocumentSummarizer is the work each job performs.
type DocumentSummarizer interface {
	SummarizeDocument(ctx context.Context, docID string, opts models.SummaryOptions) (*models.Summary, error)
}

// SummaryIngestor runs summary jobs off the request path.
//
// svc:  performs the document summarization.
// cfg:  runtime tuning knobs.
// jobs: in-memory queue of pending jobs.
type SummaryIngestor struct {
	svc  DocumentSummarizer
	cfg  *IngestConfig
	log  *zap.Logger
	jobs chan SummaryJob
}
