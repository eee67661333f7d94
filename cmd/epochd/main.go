package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/crypto"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/epoch"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/repository/clickhouse"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/resolver"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/service"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/validator"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/metrics"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/transport"
)

type config struct {
	ListenAddr    string        `long:"listen-addr" env:"EPOCHD_LISTEN_ADDR" description:"address for the intake API" default:":8000"`
	MetricsAddr   string        `long:"metrics-addr" env:"EPOCHD_METRICS_ADDR" description:"address for the metrics server" default:":2112"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"EPOCHD_CLICKHOUSE_DSN" description:"ClickHouse DSN for the epoch archive; archiving is disabled when empty"`
	EpochInterval time.Duration `long:"epoch-interval" env:"EPOCHD_EPOCH_INTERVAL" description:"interval between epochs" default:"5s"`
	MaxBatchSize  int           `long:"max-batch-size" env:"EPOCHD_MAX_BATCH_SIZE" description:"resolver batch size cap" default:"10000"`
	PendingCap    int           `long:"pending-cap" env:"EPOCHD_PENDING_CAP" description:"pending transaction buffer capacity" default:"50000"`
	Ordering      string        `long:"ordering" env:"EPOCHD_ORDERING" description:"candidate ordering strategy" default:"dependency-fee" choice:"arrival" choice:"fee" choice:"dependency-fee"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("epochd failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	ordering, err := orderingStrategy(cfg.Ordering)
	if err != nil {
		return err
	}

	v := validator.New(crypto.NewVerifier())
	r := resolver.New(v, ordering, cfg.MaxBatchSize, logger.Named("resolver"))
	handler := epoch.New(v, r, logger.Named("epoch"))

	var repo service.ArchiveRepository
	if cfg.ClickhouseDSN != "" {
		chRepo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init archive repository: %w", err)
		}
		defer func() {
			_ = chRepo.Close()
		}()
		repo = chRepo
	} else {
		logger.Warn("no ClickHouse DSN configured; epoch archiving disabled")
	}

	worker, err := service.NewEpochWorker(
		handler,
		repo,
		metrics.NewEpochWorker(),
		cfg.EpochInterval,
		cfg.MaxBatchSize,
		cfg.PendingCap,
		logger.Named("epochWorker"),
	)
	if err != nil {
		return err
	}

	startIntakeServer(ctx, cfg.ListenAddr, worker, handler, logger)

	return worker.Run(ctx)
}

func orderingStrategy(name string) (resolver.Ordering, error) {
	switch name {
	case "arrival":
		return resolver.OrderArrival, nil
	case "fee":
		return resolver.OrderByFee, nil
	case "dependency-fee":
		return resolver.OrderByDependencyFee, nil
	default:
		return nil, fmt.Errorf("unknown ordering strategy %q", name)
	}
}

func startIntakeServer(ctx context.Context, addr string, worker *service.EpochWorker, handler *epoch.Handler, logger *zap.Logger) {
	mux := http.NewServeMux()
	intake := transport.NewIntakeHandler(worker, handler, metrics.NewIntake(), logger.Named("intake"))
	intake.Register(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting intake server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("intake server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown intake server", zap.Error(err))
		}
	}()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
