package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/spektr-org/claimlens/engine"
	"github.com/spektr-org/claimlens/internal/config"
	"github.com/spektr-org/claimlens/internal/logging"
	"github.com/spektr-org/claimlens/translator"
)

// ============================================================================
// HTTP API — Chart and table specs over JSON
// ============================================================================
//   POST /api/render         engine.Request → engine.Result
//   POST /api/charts/{kind}  chart parameters + data → ChartSpec
//   POST /api/tables         table parameters + data → TableSpec
//   GET  /api/columns        registry with localized labels
//   GET  /healthz
//
// ?lang=<tag> switches the label language for one request.
// ============================================================================

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 32 << 20

const shutdownTimeout = 10 * time.Second

// Server serves the render API.
type Server struct {
	router  *chi.Mux
	catalog *translator.Catalog
	opts    []engine.Option
	cfg     config.ServerConfig
	log     zerolog.Logger
}

// New builds a server. opts are applied to every render before the
// per-request translator and logger.
func New(catalog *translator.Catalog, cfg config.ServerConfig, opts ...engine.Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		catalog: catalog,
		opts:    opts,
		cfg:     cfg,
		log:     logging.GetLogger("httpapi"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.accessLog)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/charts/{kind}", s.handleChart)
		r.Post("/tables", s.handleTable)
		r.Get("/columns", s.handleColumns)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on cfg.Addr until ctx is canceled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ============================================================================
// MIDDLEWARE
// ============================================================================

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// renderOptions appends the request's translator and logger to the
// server-wide options.
func (s *Server) renderOptions(r *http.Request) []engine.Option {
	opts := append([]engine.Option(nil), s.opts...)
	if s.catalog != nil {
		opts = append(opts, engine.WithTranslator(s.catalog.For(r.URL.Query().Get("lang"))))
	}
	logger := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
	return append(opts, engine.WithLogger(logger))
}
