package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/meltforce/liftplan/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	plan   *schedule.Context
	store  *storage.Memory
	log    *slog.Logger
	whois  WhoIser
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(plan *schedule.Context, store *storage.Memory, log *slog.Logger) *Server {
	s := &Server{
		plan:   plan,
		store:  store,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identify)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Get("/me", s.handleMe)
		r.Get("/plan", s.handlePlan)
		r.Get("/round", s.handleRound)
		r.Get("/estimate", s.handleEstimate)
		r.Post("/estimate/log", s.handleEstimateLog)

		r.Route("/trainees", func(r chi.Router) {
			r.Get("/", s.handleListTrainees)
			r.Post("/", s.handleCreateTrainee)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTrainee)
				r.Delete("/", s.handleDeleteTrainee)
				r.Put("/one-rep-max", s.handleSetOneRepMax)
				r.Put("/starting-weights", s.handleSetStartingWeights)
				r.Put("/selection", s.handleSetSelection)
				r.Get("/weeks", s.handleMonth)
				r.Get("/weeks/{week}", s.handleWeek)
				r.Get("/ladders/{lift}", s.handleLadders)
				r.Get("/chart.png", s.handleChart)
				r.Get("/export.csv", s.handleExportCSV)
				r.Get("/export.xlsx", s.handleExportXLSX)
			})
		})
	})
}

// SetTailscale resolves request identities through the tailnet. Without it
// every request runs as the local dev user.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

// MountMCP serves an MCP handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}
