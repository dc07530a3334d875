package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/shopdesk/internal/analytics"
	analyticsdomain "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	"github.com/smallbiznis/shopdesk/internal/catalog"
	catalogdomain "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/smallbiznis/shopdesk/internal/config"
	"github.com/smallbiznis/shopdesk/internal/export"
	exportdomain "github.com/smallbiznis/shopdesk/internal/export/domain"
	"github.com/smallbiznis/shopdesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/shopdesk/internal/observability/logger"
	obstracing "github.com/smallbiznis/shopdesk/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	catalog.Module,
	analytics.Module,
	export.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	catalogSvc   catalogdomain.Service
	analyticsSvc analyticsdomain.Service
	exportSvc    exportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	CatalogSvc   catalogdomain.Service
	AnalyticsSvc analyticsdomain.Service
	ExportSvc    exportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		catalogSvc:   p.CatalogSvc,
		analyticsSvc: p.AnalyticsSvc,
		exportSvc:    p.ExportSvc,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/analytics/dashboard", s.GetDashboard)

	exports := api.Group("/exports", noStore())
	exports.POST("", s.CreateExport)
	exports.GET("", s.ListExports)
	exports.DELETE("", s.ClearExports)
	exports.POST("/bulk-delete", s.BulkDeleteExports)
	exports.GET("/:id/download", s.DownloadExport)
	exports.DELETE("/:id", s.DeleteExport)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
