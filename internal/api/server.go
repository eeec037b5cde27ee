// Package api exposes the wheel and quiz over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathwheel/internal/logging"
	"github.com/abhisek/mathwheel/internal/quiz"
	"github.com/abhisek/mathwheel/internal/store"
	"github.com/abhisek/mathwheel/internal/wheel"
)

// Options configures a Server. Rounds may be nil, in which case answers
// are scored but not stored and /v1/stats reports 503.
type Options struct {
	Addr            string
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	OptionCount     int

	Rounds    store.RoundRepo
	Questions *quiz.Generator
	Wheel     wheel.Source
	Log       zerolog.Logger
}

// Server serves the HTTP API.
type Server struct {
	opts    Options
	log     zerolog.Logger
	metrics *Metrics
	router  chi.Router
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Questions == nil {
		opts.Questions = quiz.New(nil)
	}
	if opts.Wheel == nil {
		opts.Wheel = wheel.DefaultSource
	}
	if opts.OptionCount < 2 {
		opts.OptionCount = quiz.OptionCount
	}
	opts.OptionCount = min(opts.OptionCount, quiz.MaxOptionCount)
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		opts:    opts,
		log:     opts.Log,
		metrics: NewMetrics(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/v1", func(v chi.Router) {
		v.Get("/operations", s.listOperations)
		v.Post("/spins", s.createSpin)
		v.Get("/segments", s.getSegment)
		v.Post("/questions", s.createQuestion)
		v.Post("/answers", s.submitAnswer)
		v.Get("/stats", s.getStats)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.Addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.log.Info().Msg("api shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		log := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(ww, r.WithContext(logging.IntoContext(r.Context(), log)))

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.observeRequest(r.Method, route, ww.Status(), elapsed)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}
