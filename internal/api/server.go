package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/tocgraft/internal/config"
	"github.com/dgallion1/tocgraft/internal/metrics"
	"github.com/dgallion1/tocgraft/internal/pathstore"
	"github.com/dgallion1/tocgraft/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DocumentStore is the pathstore surface the document endpoints use.
type DocumentStore interface {
	GetNode(ctx context.Context, key string) (*pathstore.NodeResponse, error)
	DeleteNode(ctx context.Context, key string, recursive bool) error
	ListChildren(ctx context.Context, key string, limit int) ([]pathstore.ListChildrenResponse, error)
}

// Server is the HTTP API server for tocgraft.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	docs         DocumentStore
	stats        *metrics.Stages
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. docs may be nil when
// publishing is disabled.
func NewServer(orch *pipeline.Orchestrator, docs DocumentStore, stats *metrics.Stages, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		docs:         docs,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/toc", s.handleTOC)
		r.Post("/api/outline", s.handleOutline)

		r.Post("/api/jobs", s.handleSubmitJob)
		r.Post("/api/jobs/batch", s.handleBatchJobs)
		r.Get("/api/jobs/{jobID}/status", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/result", s.handleJobResult)

		r.Get("/api/documents", s.handleListDocuments)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
