package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cashroute/cashroute/internal/application/usecase"
	"github.com/cashroute/cashroute/internal/domain/event"
	"github.com/cashroute/cashroute/internal/domain/service"
	"github.com/cashroute/cashroute/internal/infrastructure/clock"
	"github.com/cashroute/cashroute/internal/infrastructure/config"
	"github.com/cashroute/cashroute/internal/infrastructure/messaging"
	infraPG "github.com/cashroute/cashroute/internal/infrastructure/postgres"
	"github.com/cashroute/cashroute/internal/jobs"
	grpcPresentation "github.com/cashroute/cashroute/internal/presentation/grpc"
	"github.com/cashroute/cashroute/internal/presentation/rest"
	"github.com/cashroute/cashroute/pkg/auth"
	kafkapkg "github.com/cashroute/cashroute/pkg/kafka"
	"github.com/cashroute/cashroute/pkg/observability"
	pgpkg "github.com/cashroute/cashroute/pkg/postgres"
)

const serviceName = "routing-service"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// Initialize logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting routing-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	// Initialize metrics (Prometheus exposition via the REST server).
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	// Initialize database.
	pgCfg := pgpkg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		AppName:  serviceName,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	pool, err := pgpkg.NewPool(ctx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations.
	if err := pgpkg.RunMigrations(pgCfg.DSN(), cfg.DB.MigrationsDir); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	// Initialize Kafka producer.
	producer := kafkapkg.NewProducer(kafkapkg.Config{
		Brokers:                cfg.Kafka.Brokers,
		AllowAutoTopicCreation: cfg.Kafka.AllowAutoTopicCreation,
	})
	defer producer.Close()

	// Wire dependencies (DI via constructors).
	planRepo := infraPG.NewPlanRepo(pool)
	outboxRepo := infraPG.NewOutboxRepo(pool)
	publisher := messaging.NewPublisher(producer)
	sysClock := clock.System{}
	planner := service.NewPlanner(cfg.Routing.CombinationConfig(), service.NewPathCache())

	// Use cases.
	planRoutesUC := usecase.NewPlanRoutes(planner, planRepo, sysClock)
	getPlanUC := usecase.NewGetPlan(planRepo)
	listPlansUC := usecase.NewListPlans(planRepo)

	// Auth.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:       cfg.Auth.JWTSecret,
		PublicKeyPEM: cfg.Auth.JWTPublicKey,
		Issuer:       cfg.Auth.Issuer,
		Expiration:   time.Hour,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewRoutingHandler(planRoutesUC, getPlanUC, listPlansUC, logger)
	grpcServer, err := grpcPresentation.NewServer(
		grpcHandler, cfg.GRPCPort, logger, jwtService,
		cfg.Auth.TLSCertFile, cfg.Auth.TLSKeyFile,
	)
	if err != nil {
		logger.Error("failed to initialize gRPC server", "error", err)
		os.Exit(1)
	}

	// REST server.
	planHandler := rest.NewPlanHandler(planRoutesUC, getPlanUC, listPlansUC, logger)
	healthHandler := rest.NewHealthHandler(serviceName, pool)
	router := rest.NewRouter(
		planHandler,
		healthHandler,
		metricsHandler,
		rest.AuthMiddleware(jwtService, []string{"/healthz", "/readyz", "/metrics"}),
		rest.RateLimitMiddleware(rest.NewRateLimiter(cfg.RateLimitRPS)),
		rest.LoggingMiddleware(logger),
	)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Background jobs.
	retention := jobs.NewRetentionSweep(planRepo, sysClock, cfg.Jobs.RetentionDays, logger)
	relay := jobs.NewOutboxRelay(outboxRepo, publisher, event.Topic, cfg.Jobs.OutboxBatchSize, logger)
	scheduler, err := jobs.NewScheduler(retention, cfg.Jobs.RetentionCron, relay, cfg.Jobs.OutboxInterval, logger)
	if err != nil {
		logger.Error("failed to initialize job scheduler", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	grpcServer.Stop()
	scheduler.Stop()
	logger.Info("routing-service stopped")
}
