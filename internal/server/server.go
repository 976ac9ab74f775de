package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/config"
	obsmetrics "github.com/joshuahuffman02/Keepr-sub014/internal/observability/metrics"
	obstracing "github.com/joshuahuffman02/Keepr-sub014/internal/observability/tracing"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	quotedomain "github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "keepr-pricing"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
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
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	pricingCfg *config.PricingConfigHolder
	ruleSvc    ruledomain.Service
	quoteSvc   quotedomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	PricingCfg *config.PricingConfigHolder
	RuleSvc    ruledomain.Service
	QuoteSvc   quotedomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		pricingCfg: p.PricingCfg,
		ruleSvc:    p.RuleSvc,
		quoteSvc:   p.QuoteSvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	pricing := api.Group("/pricing")
	pricing.POST("/evaluate", s.EvaluatePricing)
	pricing.POST("/rules", s.CreatePricingRule)
	pricing.GET("/rules", s.ListPricingRules)
	pricing.GET("/rules/:id", s.GetPricingRule)
	pricing.PUT("/rules/:id", s.UpdatePricingRule)
	pricing.DELETE("/rules/:id", s.DeletePricingRule)

	api.POST("/availability/check", s.CheckAvailability)
	api.POST("/deposits/calculate", s.CalculateDeposit)
	api.POST("/forecasting/generate", s.GenerateForecast)
}
