package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/Sumora/internal/api/middlewares"
	"github.com/markdave123-py/Sumora/internal/config"
	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
)

// ServerDeps are the services behind the routes. Users, Documents and
// Ingestor are nil when persistence is disabled; their routes are then
// not mounted.
type ServerDeps struct {
	Summaries handlers.Summaries
	Documents handlers.Documents
	Users     handlers.Users
	Ingestor  ingest.Ingestor
}

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, deps ServerDeps, log *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, deps, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

func NewRouter(cfg *config.Config, deps ServerDeps, log *zap.Logger) http.Handler {
	summaryHandler := handlers.NewSummaryHandler(deps.Summaries, deps.Documents)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Get("/modes", summaryHandler.Modes)
		if deps.Users != nil {
			authHandler := handlers.NewAuthHandler(deps.Users, cfg.JWTSecret)
			api.Post("/signup", authHandler.Signup)
			api.Post("/login", authHandler.Login)
		}

		// stateless mode has no accounts to log in with; summaries are
		// accepted anonymously and nothing is stored
		if deps.Users == nil {
			api.With(appMiddleware.OptionalJWT(cfg.JWTSecret)).Post("/summaries", summaryHandler.Create)
		}

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWT(cfg.JWTSecret))
			if deps.Users != nil {
				protected.Post("/summaries", summaryHandler.Create)
			}
			protected.Get("/summaries/{id}", summaryHandler.Get)
			protected.Get("/summaries/{id}/download", summaryHandler.Download)

			if deps.Documents != nil && deps.Ingestor != nil {
				docHandler := handlers.NewDocumentHandler(deps.Documents, deps.Ingestor, log)
				protected.Post("/documents/upload", docHandler.UploadDocument)
				protected.Get("/documents", docHandler.GetDocuments)
				protected.Get("/documents/{id}/summaries", summaryHandler.ListByDocument)
			}
		})
	})

	return r
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
