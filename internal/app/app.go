package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/config"
	db "github.com/markdave123-py/Sumora/internal/core/database"
	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
	objectclient "github.com/markdave123-py/Sumora/internal/core/object-client"
	"github.com/markdave123-py/Sumora/internal/observability/metrics"
	"github.com/markdave123-py/Sumora/internal/services"
)

type App struct {
	DBClient     *db.DatabaseClient
	ObjectClient *objectclient.S3Client
	Ingestor     ingest.Ingestor
	Summaries    *services.SummaryService
	Server       *Server

	cfg *config.Config
	log *zap.Logger
}

// NewApp wires the service. Without DATABASE_URL it runs stateless: only
// synchronous text summaries are served and nothing is stored.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	tuning, err := config.EffectiveTuning(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		log.Warn("abstractive mode unavailable until configured", zap.Error(err))
	}

	a := &App{cfg: cfg, log: log}
	extractor := ingest.NewDocconvExtractor(false)
	deps := services.SummaryServiceDeps{
		Registry:      BuildRegistry(cfg, log),
		Extractor:     extractor,
		Tuning:        tuning,
		Metrics:       metrics.NewPrometheusRecorder(),
		Log:           log,
		MaxInputChars: cfg.MaxInputChars,
		Concurrency:   cfg.ChunkConcurrency,
	}
	var serverDeps ServerDeps

	if cfg.PersistenceEnabled() {
		a.DBClient, err = db.NewDatabaseClient(appCtx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("database initialized and ready")

		a.ObjectClient, err = objectclient.NewS3Client(appCtx, cfg, log)
		if err != nil {
			_ = a.DBClient.Close()
			return nil, fmt.Errorf("object storage: %w", err)
		}
		deps.DB, deps.Storage = a.DBClient, a.ObjectClient
		serverDeps.Users = services.NewUserService(a.DBClient)
		serverDeps.Documents = services.NewDocumentService(a.DBClient, a.ObjectClient, a.ObjectClient.Bucket())
	} else {
		log.Warn("DATABASE_URL not set; running without persistence")
	}

	a.Summaries = services.NewSummaryService(deps)
	serverDeps.Summaries = a.Summaries

	if cfg.PersistenceEnabled() {
		a.Ingestor = ingest.NewSummaryIngestor(a.Summaries, ingest.DefaultIngestConfig(), log)
		serverDeps.Ingestor = a.Ingestor
	}

	a.Server = NewServer(cfg, serverDeps, log)
	return a, nil
}

// Run starts the workers and the HTTP server, and blocks until ctx ends.
func (a *App) Run(ctx context.Context) error {
	if a.Ingestor != nil {
		a.Ingestor.Start(ctx, a.cfg.IngestWorkers)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return a.Server.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
