// Package server exposes schedule generation and the course catalog over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"studyplanner/internal/catalog"
	"studyplanner/internal/config"
	"studyplanner/internal/logging"
	"studyplanner/internal/schedule"
)

// Server is the HTTP API.
type Server struct {
	engine  *gin.Engine
	flow    *schedule.Flow
	catalog *catalog.Catalog
	cfg     config.ServerConfig

	// llmTimeout bounds each schedule request's model call.
	llmTimeout time.Duration
	logger     *zap.SugaredLogger
}

// Options configures a Server.
type Options struct {
	Server     config.ServerConfig
	LLMTimeout time.Duration
	Logger     *zap.SugaredLogger
}

// New builds the router. The service and catalog are shared by all requests.
func New(svc *schedule.Service, cat *catalog.Catalog, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Get(logging.CategoryHTTP)
	}

	s := &Server{
		engine:     gin.New(),
		flow:       schedule.NewFlow(svc),
		catalog:    cat,
		cfg:        opts.Server,
		llmTimeout: opts.LLMTimeout,
		logger:     logger,
	}

	s.engine.Use(requestID(), accessLog(logger), gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/schedule", s.handleSchedule)
	api.GET("/courses", s.handleListCourses)
	api.GET("/courses/:id", s.handleGetCourse)
	api.GET("/catalog/facets", s.handleFacets)
}

// Handler returns the router for use with any http.Server or httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured grace period.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.GetReadTimeout(),
		WriteTimeout: s.cfg.GetWriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Infow("listening", "addr", ln.Addr().String())
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownGrace())
		defer cancel()
		s.logger.Infow("shutting down", "grace", s.cfg.GetShutdownGrace())
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
