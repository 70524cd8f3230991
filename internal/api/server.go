package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/sowgen/internal/config"
	"github.com/dgallion1/sowgen/internal/llm"
	"github.com/dgallion1/sowgen/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP front end for sowgen: the questionnaire page, artifact
// downloads and the JSON API.
type Server struct {
	router chi.Router
	gen    *pipeline.Generator
	stats  *llm.Stats
	pages  *pages
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(gen *pipeline.Generator, stats *llm.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		gen:   gen,
		stats: stats,
		pages: newPages(),
		log:   log,
		cfg:   cfg,
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
	r.Get("/", s.handleIndex)
	r.Post("/generate", s.handleGenerateForm)
	r.Get("/downloads/{resultID}/{artifact}", s.handleDownload)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/generate", s.handleGenerateJSON)
		r.Get("/api/results/{resultID}", s.handleGetResult)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
