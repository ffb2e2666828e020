package ingestion_engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NewSummaryIngestor constructs the ingestor with a bounded job queue.
func NewSummaryIngestor(svc DocumentSummarizer, cfg *IngestConfig, log *zap.Logger) *SummaryIngestor {
	if cfg == nil {
		cfg = DefaultIngestConfig()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SummaryIngestor{
		svc:  svc,
		cfg:  cfg,
		log:  log,
		jobs: make(chan SummaryJob, cfg.QueueSize),
	}
}

// Start launches numWorkers goroutines draining the queue until ctx ends.
func (i *SummaryIngestor) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for w := 1; w <= numWorkers; w++ {
		go func(w int) {
			for {
				select {
				case <-ctx.Done():
					i.log.Info("summary worker shutting down", zap.Int("worker", w))
					return
				case job := <-i.jobs:
					i.log.Info("processing document",
						zap.String("document_id", job.DocumentID),
						zap.Int("worker", w))

					if err := i.ProcessOne(ctx, job); err != nil {
						i.log.Error("document summary failed",
							zap.String("document_id", job.DocumentID),
							zap.Error(err))
					}
				}
			}
		}(w)
	}
}

// Enqueue schedules a job. While the queue is full it waits up to
// EnqueueTimeout, or until ctx ends, then gives up with ErrQueueFull.
func (i *SummaryIngestor) Enqueue(ctx context.Context, job SummaryJob) error {
	select {
	case i.jobs <- job:
		return nil
	default:
	}

	var timeout <-chan time.Time
	if i.cfg.EnqueueTimeout > 0 {
		t := time.NewTimer(i.cfg.EnqueueTimeout)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case i.jobs <- job:
		return nil
	case <-timeout:
		return ErrQueueFull
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrQueueFull, ctx.Err())
	}
}

// ProcessOne summarizes a single document, bounded by the job timeout.
func (i *SummaryIngestor) ProcessOne(ctx context.Context, job SummaryJob) error {
	if i.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.JobTimeout)
		defer cancel()
	}

	s, err := i.svc.SummarizeDocument(ctx, job.DocumentID, job.Options)
	if err != nil {
		return fmt.Errorf("summarize document %s: %w", job.DocumentID, err)
	}
	i.log.Info("document summarized",
		zap.String("document_id", job.DocumentID),
		zap.String("summary_id", s.ID),
		zap.Int("chunks", s.ChunkCount),
		zap.Int("words", s.WordCount))
	return nil
}
