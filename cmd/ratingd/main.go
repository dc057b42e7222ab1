package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/usecase"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/port"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/service"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/config"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/kafka"
	pgRepo "github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/postgres"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/telemetry"
	grpcPresentation "github.com/yashsarjekar/rmbs-credit-evaluator/internal/presentation/grpc"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/presentation/rest"
	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/auth"
	pkgkafka "github.com/yashsarjekar/rmbs-credit-evaluator/pkg/kafka"
	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/observability"
	pkgpostgres "github.com/yashsarjekar/rmbs-credit-evaluator/pkg/postgres"
	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/tlsutil"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	logger.Info("starting credit rating service",
		"service", cfg.ServiceName,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"db_enabled", cfg.DB.Enabled,
		"kafka_enabled", cfg.Kafka.Enabled,
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort

	ratingMetrics, err := telemetry.NewRatingMetrics(meterProvider)
	if err != nil {
		logger.Error("failed to create rating instruments", "error", err)
		os.Exit(1)
	}

	// Event publishing.
	var (
		publisher port.EventPublisher
		producer  *pkgkafka.Producer
	)
	kafkaCfg := pkgkafka.Config{
		ClientID:      cfg.ServiceName,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	}
	if cfg.Kafka.Enabled {
		producer, err = pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.EventsTopic, logger)
	}

	// Use cases.
	rater := usecase.NewRateMortgagePool(service.NewRatingEngine(), publisher, ratingMetrics, logger)
	validate := usecase.NewValidateMortgages()

	// Pool storage.
	var (
		pool       *pgxpool.Pool
		storedRate *usecase.RateStoredPool
		dbPinger   rest.Pinger
	)
	if cfg.DB.Enabled {
		pool, err = openDatabase(ctx, cfg)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("connected to database", "database", cfg.DB.Name)

		storedRate = usecase.NewRateStoredPool(pgRepo.NewMortgagePoolRepo(pool), rater)
		dbPinger = pool
	}

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewCreditRatingHandler(rater, storedRate, validate, logger)
	grpcServer, err := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc, grpcPresentation.ServerOptions{
		ServiceName: cfg.ServiceName,
		CertFile:    cfg.TLS.CertFile,
		KeyFile:     cfg.TLS.KeyFile,
		Reflection:  cfg.Reflection,
	})
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	router := rest.NewRouter(
		rest.NewRatingHandler(rater, storedRate, validate, logger),
		rest.NewHealthHandler(cfg.ServiceName, dbPinger, logger),
		metricsHandler,
		jwtSvc,
	)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLS.Enabled() {
		tlsCfg, tlsErr := tlsutil.LoadServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if tlsErr != nil {
			logger.Error("failed to load HTTP TLS configuration", "error", tlsErr)
			os.Exit(1)
		}
		httpServer.TLSConfig = tlsCfg
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr(), "tls", cfg.TLS.Enabled())
		var err error
		if cfg.TLS.Enabled() {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var consumer *pkgkafka.Consumer
	if cfg.Kafka.Enabled {
		requests := kafka.NewRequestConsumer(rater, logger)
		consumer, err = pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.RequestTopic, requests.Handle, logger)
		if err != nil {
			logger.Error("failed to create kafka consumer", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer error: %w", err)
			}
		}()
	}

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}
	cancel()

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka consumer close error", "error", err)
		}
	}

	logger.Info("credit rating service stopped")
}

func openDatabase(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		AppName:  cfg.ServiceName,
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		return nil, err
	}

	if err := pkgpostgres.RunMigrationsFS(dbCfg.DSN(), pgRepo.Migrations, "migrations"); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// newJWTService builds a validation-only JWT service: public key preferred,
// shared secret as fallback.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}

	switch {
	case cfg.PublicKeyPEM != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKeyPEM
	case cfg.PublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.Secret
	}

	return auth.NewJWTService(jwtCfg)
}
