// Package api serves a single quiz session over HTTP.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/hotsquiz/internal/logger"
	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/store"
)

// Options configures a Server.
type Options struct {
	Generator quizgen.Generator

	// Events records submitted quizzes. May be nil.
	Events store.EventRepo

	// Defaults fill fields a start request leaves empty.
	Defaults quizgen.Params

	AllowedOrigins []string

	// Log may be nil.
	Log *logger.Logger
}

// Server owns one quiz session. Handlers serialize on mu; generation runs
// outside the lock and the session is only replaced once a full question
// set has arrived.
type Server struct {
	opts Options
	log  *logger.Logger

	mu      sync.Mutex
	session *quiz.Session
	params  quizgen.Params
}

// New creates a Server with an empty session.
func New(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		opts:    opts,
		log:     log,
		session: quiz.NewSession(quiz.WithLogger(log)),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/quiz", func(qr chi.Router) {
		qr.Post("/", s.handleStart)
		qr.Get("/", s.handleGet)
		qr.Delete("/", s.handleReset)
		qr.Post("/goto", s.handleGoTo)
		qr.Put("/answers/{index}", s.handleAnswer)
		qr.Post("/submit", s.handleSubmit)
		qr.Get("/score", s.handleScore)
	})
	return r
}
