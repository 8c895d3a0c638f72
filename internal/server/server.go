package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/voidshard/reliefgraph"
)

// maxBody bounds request bodies; node lists are small
const maxBody = 8 << 20

// Server exposes a Generator over HTTP
type Server struct {
	gen      *reliefgraph.Generator
	log      *zap.Logger
	metrics  *Metrics
	validate *validator.Validate
	origins  []string
}

// New returns a server around the given generator. Requests from the
// given origins are allowed by CORS (all origins if none are given).
func New(gen *reliefgraph.Generator, log *zap.Logger, metrics *Metrics, origins ...string) *Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		gen:      gen,
		log:      log,
		metrics:  metrics,
		validate: validator.New(),
		origins:  origins,
	}
}

// Handler returns the routes & middleware
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.log))
	router.Use(s.metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthCheck)
	router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	router.Route("/v1", func(r chi.Router) {
		r.Post("/preview", s.preview)
		r.Post("/terrain", s.terrain)
	})

	return router
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
