package ingestion_engine

import "context"

type Ingestor interface {
	Start(ctx context.Context, numWorkers int)
	Enqueue(ctx context.Context, job SummaryJob) error
	ProcessOne(ctx context.Context, job SummaryJob) error
}

var _ Ingestor = (*SummaryIngestor)(nil)
