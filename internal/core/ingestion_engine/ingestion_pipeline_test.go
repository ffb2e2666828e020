package ingestion_engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Sumora/internal/models"
)

type fakeSummarizer struct {
	mu    sync.Mutex
	seen  []SummaryJob
	err   error
	done  chan struct{}
	block bool
}

func (f *fakeSummarizer) SummarizeDocument(ctx context.Context, docID string, opts models.SummaryOptions) (*models.Summary, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	f.seen = append(f.seen, SummaryJob{DocumentID: docID, Options: opts})
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Summary{ID: "s-" + docID, DocumentID: docID}, nil
}

func TestSummaryIngestor_ProcessOne(t *testing.T) {
	svc := &fakeSummarizer{}
	ing := NewSummaryIngestor(svc, nil, nil)

	job := SummaryJob{DocumentID: "d1", Options: models.SummaryOptions{Mode: "extractive", MaxLength: 3}}
	require.NoError(t, ing.ProcessOne(context.Background(), job))

	assert.Equal(t, []SummaryJob{job}, svc.seen)
}

func TestSummaryIngestor_ProcessOneWrapsError(t *testing.T) {
	boom := errors.New("boom")
	ing := NewSummaryIngestor(&fakeSummarizer{err: boom}, nil, nil)

	err := ing.ProcessOne(context.Background(), SummaryJob{DocumentID: "d2"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "d2")
}

func TestSummaryIngestor_JobTimeout(t *testing.T) {
	ing := NewSummaryIngestor(&fakeSummarizer{block: true}, &IngestConfig{QueueSize: 1, JobTimeout: 10 * time.Millisecond}, nil)

	err := ing.ProcessOne(context.Background(), SummaryJob{DocumentID: "slow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSummaryIngestor_WorkersDrainQueue(t *testing.T) {
	svc := &fakeSummarizer{done: make(chan struct{}, 4)}
	ing := NewSummaryIngestor(svc, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ing.Start(ctx, 2)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, ing.Enqueue(ctx, SummaryJob{DocumentID: id}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-svc.done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not process job")
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	ids := make([]string, 0, len(svc.seen))
	for _, j := range svc.seen {
		ids = append(ids, j.DocumentID)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
}

func TestSummaryIngestor_EnqueueGivesUpWhenFull(t *testing.T) {
	ing := NewSummaryIngestor(&fakeSummarizer{}, &IngestConfig{QueueSize: 1, EnqueueTimeout: 10 * time.Millisecond}, nil)
	ctx := context.Background()

	require.NoError(t, ing.Enqueue(ctx, SummaryJob{DocumentID: "first"}))
	err := ing.Enqueue(ctx, SummaryJob{DocumentID: "second"})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestSummaryIngestor_EnqueueStopsOnCancelledContext(t *testing.T) {
	ing := NewSummaryIngestor(&fakeSummarizer{}, &IngestConfig{QueueSize: 1}, nil)
	require.NoError(t, ing.Enqueue(context.Background(), SummaryJob{DocumentID: "first"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ing.Enqueue(ctx, SummaryJob{DocumentID: "second"})
	assert.ErrorIs(t, err, ErrQueueFull)
}
