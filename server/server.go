// Package server 提供 HTTP API：上传需求文档、规划、编辑方案、生成图片、检查与导出。
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ui_mockups/generator"
)

const defaultMaxUploadBytes = 20 << 20

// Options configures the HTTP layer.
type Options struct {
	SessionTTL         time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	MaxUploadBytes     int64
}

type Server struct {
	studio *generator.Studio
	store  *sessionStore
	opts   Options
	logger *zap.Logger
}

func New(studio *generator.Studio, opts Options, logger *zap.Logger) (*Server, error) {
	if studio == nil {
		return nil, errors.New("studio required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Minute
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Server{
		studio: studio,
		store:  newStore(opts.SessionTTL),
		opts:   opts,
		logger: logger,
	}, nil
}

// Routes builds the gin engine with middleware and every endpoint registered.
func (s *Server) Routes() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(zapLogger(s.logger))
	router.Use(cors.New(s.corsConfig()))
	router.MaxMultipartMemory = s.opts.MaxUploadBytes

	router.GET("/health", s.handleHealth)
	router.HEAD("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/sessions")
	api.POST("", s.handleSessionCreate)
	api.GET("/:id", s.withSession(s.handleSessionGet))
	api.POST("/:id/plan", s.withSession(s.handlePlan))
	api.PUT("/:id/plan", s.withSession(s.handlePlanEdit))
	api.POST("/:id/mockups", s.withSession(s.handleGenerate))
	api.POST("/:id/mockups/:name/check", s.withSession(s.handleCheck))
	api.GET("/:id/bundle", s.withSession(s.handleBundle))
	api.GET("/:id/report", s.withSession(s.handleReport))
	return router
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(s.opts.CORSAllowedOrigins) > 0 {
		cfg.AllowOrigins = s.opts.CORSAllowedOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", requestIDHeader}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

// Run 启动 HTTP 服务，ctx 取消时优雅退出。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
