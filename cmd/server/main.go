package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/pulse/internal/application"
	"github.com/turtacn/pulse/internal/config"
	domainservice "github.com/turtacn/pulse/internal/domain/service"
	"github.com/turtacn/pulse/internal/infrastructure/cache"
	"github.com/turtacn/pulse/internal/infrastructure/consumers"
	"github.com/turtacn/pulse/internal/infrastructure/monitoring"
	"github.com/turtacn/pulse/internal/infrastructure/notify"
	"github.com/turtacn/pulse/internal/infrastructure/persistence/postgres"
	"github.com/turtacn/pulse/internal/infrastructure/persistence/redis"
	pulsehttp "github.com/turtacn/pulse/internal/interfaces/http"
	"github.com/turtacn/pulse/internal/interfaces/http/handlers"
	"github.com/turtacn/pulse/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()

	cleanup, err := monitoring.InitTracer(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracer", err)
	}
	defer cleanup()

	db, err := postgres.NewDBConnection(&cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to database", err)
	}

	// The service degrades to local-only caching when Redis is off.
	var redisConn *redis.RedisConnection
	var remoteStore cache.RemoteStore
	if cfg.Redis.Enabled {
		redisConn, err = redis.NewRedisConnection(&cfg.Redis, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "failed to connect to redis", err)
		}
		defer redisConn.Close()
		remoteStore = redis.NewCacheManager(redisConn, appLogger)
	}

	metrics := monitoring.NewMetrics()
	profileCache := cache.NewProfileCache(cfg.Cache.TTLDuration(), cfg.Cache.CleanupDuration(), remoteStore, appLogger)

	customerRepo := postgres.NewCustomerRepository(db, appLogger)
	profileRepo := postgres.NewRiskProfileRepository(db, appLogger)
	provider := postgres.NewMetricsProvider(customerRepo, appLogger)

	aggregator, err := domainservice.NewScoreAggregator(cfg.Scoring.CategoryWeights())
	if err != nil {
		appLogger.Fatal(ctx, "invalid scoring weights", err)
	}
	recommender := domainservice.NewRecommendationEngine()

	var publisher domainservice.AssessmentPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := notify.NewKafkaPublisher(cfg.Kafka, appLogger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	assessmentSvc := application.NewAssessmentService(
		aggregator, recommender, profileCache, profileRepo, provider, publisher, metrics, appLogger)

	var consumer *consumers.MetricsUpdateConsumer
	if cfg.Kafka.Enabled {
		consumer = consumers.NewMetricsUpdateConsumer(cfg.Kafka, assessmentSvc, appLogger)
		go consumer.Start(ctx)
	}

	router := pulsehttp.NewRouter(
		cfg, appLogger,
		handlers.NewHealthHandler(db, redisConn, appLogger),
		handlers.NewCustomerHandler(customerRepo, assessmentSvc, appLogger),
		handlers.NewAssessmentHandler(assessmentSvc, profileRepo, appLogger),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Fatal(ctx, "http server failed", err)
		}
	case sig := <-quit:
		appLogger.Info(ctx, "shutdown signal received", logger.Fields{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if consumer != nil {
		consumer.Stop()
	}
	if err := router.Stop(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "server forced to shut down", err)
	}
	appLogger.Info(ctx, "server stopped")
}
