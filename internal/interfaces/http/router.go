package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/pulse/internal/config"
	"github.com/turtacn/pulse/internal/interfaces/http/handlers"
	"github.com/turtacn/pulse/pkg/logger"
)

// Router wires the HTTP surface of the service.
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	logger            logger.Logger
	healthHandler     *handlers.HealthHandler
	customerHandler   *handlers.CustomerHandler
	assessmentHandler *handlers.AssessmentHandler
	server            *http.Server
}

// NewRouter creates the router with all handlers attached.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	healthHandler *handlers.HealthHandler,
	customerHandler *handlers.CustomerHandler,
	assessmentHandler *handlers.AssessmentHandler,
) *Router {
	if !cfg.Server.PprofEnabled {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		engine:            gin.New(),
		config:            cfg,
		logger:            log,
		healthHandler:     healthHandler,
		customerHandler:   customerHandler,
		assessmentHandler: assessmentHandler,
	}
}

// SetupRoutes registers middleware and all route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(handlers.RecoveryMiddleware(r.logger))
	r.engine.Use(handlers.RequestIDMiddleware())
	r.engine.Use(handlers.LoggingMiddleware(r.logger))

	corsConfig := cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/live", r.healthHandler.LivenessCheck)
	r.engine.GET("/ready", r.healthHandler.ReadinessCheck)

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Server.PprofEnabled {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.POST("", r.customerHandler.Create)
			customers.GET("/:id", r.customerHandler.Get)
			customers.PUT("/:id/metrics", r.customerHandler.UpdateMetrics)

			customers.POST("/:id/assess", r.assessmentHandler.Assess)
			customers.GET("/:id/risk-profile", r.assessmentHandler.GetRiskProfile)
			customers.GET("/:id/risk-profile/history", r.assessmentHandler.GetHistory)
			customers.DELETE("/:id/risk-profile/cache", r.assessmentHandler.InvalidateCache)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "The requested resource was not found",
		})
	})
}

// Start runs the HTTP server until the listener fails or Stop is called.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	r.logger.Info(context.Background(), "starting HTTP server", logger.Fields{"address": addr})

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down, draining in-flight requests.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.logger.Info(ctx, "stopping HTTP server")
	return r.server.Shutdown(ctx)
}
