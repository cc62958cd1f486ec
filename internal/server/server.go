// Package server exposes the practice engine over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/kousuan/internal/kousuan"
	"github.com/abhisek/kousuan/internal/problemgen"
)

// maxWorksheetSize caps the count accepted by the worksheet endpoint.
const maxWorksheetSize = 200

// Server is the HTTP API.
type Server struct {
	router   *chi.Mux
	problems *problemgen.Service
	logger   *slog.Logger
	timeout  time.Duration

	// newSource seeds one kousuan generator per request; *rand.Rand is
	// not safe for concurrent use.
	newSource func() kousuan.Source
}

// NewServer creates the API. timeout bounds every request, including the
// remote problem call made by GET /api/math.
func NewServer(problems *problemgen.Service, logger *slog.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if problems == nil {
		problems = problemgen.NewService(nil, nil, logger)
	}
	s := &Server{
		problems:  problems,
		logger:    logger,
		timeout:   timeout,
		newSource: func() kousuan.Source { return kousuan.NewSource() },
	}
	s.setupRouter()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/kousuan", func(r chi.Router) {
			r.Get("/types", s.handleListTypes)
			r.Post("/worksheets", s.handleCreateWorksheet)
			r.Post("/score", s.handleScore)
		})
		r.Route("/math", func(r chi.Router) {
			r.Get("/", s.handleMathProblem)
			r.Post("/options", s.handleOptions)
			r.Post("/check", s.handleCheck)
		})
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
