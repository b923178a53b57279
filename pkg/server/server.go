package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/loadboard/pkg/middleware"
	"github.com/vango-dev/loadboard/pkg/protocol"
	"github.com/vango-dev/loadboard/pkg/vango"
	"github.com/vango-dev/loadboard/pkg/workload"
)

// Server serves the dashboard and its live sessions.
type Server struct {
	config   *Config
	catalog  *workload.Catalog
	logger   *slog.Logger
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	tracing  []middleware.TracingOption
	tracer   trace.Tracer
	sessions *Manager
	upgrader websocket.Upgrader
	router   chi.Router

	mu         sync.Mutex
	httpServer *http.Server
	shutdown   bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records into m and serves g at /metrics. Without this option
// the server uses its own registry unless Config.NoMetrics is set.
func WithMetrics(m *middleware.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithTracing configures the request and event spans.
func WithTracing(opts ...middleware.TracingOption) Option {
	return func(s *Server) {
		s.tracing = append(s.tracing, opts...)
	}
}

// New creates a server over catalog. cfg may be nil.
func New(cfg *Config, catalog *workload.Catalog, opts ...Option) *Server {
	s := &Server{
		config:  cfg.withDefaults(),
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil && !s.config.NoMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
		s.gatherer = reg
	}
	s.tracer = middleware.Tracer(s.tracing...)
	s.sessions = NewManager(s.logger, s.metrics)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.config.CheckOrigin,
		Subprotocols:    protocol.Subprotocols(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.Recoverer)
	r.Use(middleware.Tracing(append(s.tracing, middleware.WithRequestFilter(traced))...))
	r.Use(s.metrics.Handler)

	r.Get("/", s.handlePage)
	r.Get("/live", s.HandleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Get("/static/client.js", s.handleClient)
	r.Route("/api/groups", func(r chi.Router) {
		r.Get("/", s.handleGroups)
		r.Get("/{id}", s.handleGroup)
		r.Get("/{id}/charts", s.handleCharts)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// traced skips probes and scrapes.
func traced(r *http.Request) bool {
	return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HandleWebSocket upgrades the request and starts a live session. The
// optional group query parameter preselects a group.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	// The page is built on this goroutine; the session loops own it after
	// Start.
	defer vango.Release()

	sess := newSession(conn, sessionDeps{
		config:  s.config,
		catalog: s.catalog,
		logger:  s.logger,
		metrics: s.metrics,
		tracer:  s.tracer,
		onClose: s.sessions.remove,
	}, r.URL.Query().Get("group"))

	if err := s.sessions.add(sess); err != nil {
		sess.abort()
		return
	}
	if err := sess.Start(); err != nil {
		s.logger.Warn("session start failed", "session_id", sess.ID, "error", err)
	}
}

// Refresh pushes the current catalog to every live session.
func (s *Server) Refresh() {
	s.sessions.Broadcast()
}

// Run listens on the configured address and serves until ctx ends, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		sctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		err := s.Shutdown(sctx)
		<-errCh
		return err
	}
}

// Shutdown closes every session, then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdown = true
	srv := s.httpServer
	s.mu.Unlock()

	if err := s.sessions.Shutdown(ctx); err != nil {
		s.logger.Error("session shutdown error", "error", err)
	}
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager {
	return s.sessions
}

// Metrics returns the server metrics, or nil when disabled.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

// Config returns the effective configuration.
func (s *Server) Config() *Config {
	return s.config
}
