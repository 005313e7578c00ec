// Package main runs the settlement daemon: the periodic batch sweeps that
// move payment, purchase and registry requests through their on-chain state
// machines. The run-lock service is in-process, so exactly one replica must
// be deployed per database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/custodia-tech/settlement-backend/internal/audit"
	"github.com/custodia-tech/settlement-backend/internal/chain"
	"github.com/custodia-tech/settlement-backend/internal/jobs"
	"github.com/custodia-tech/settlement-backend/internal/locks"
	"github.com/custodia-tech/settlement-backend/internal/metrics"
	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/custodia-tech/settlement-backend/internal/processor"
	"github.com/custodia-tech/settlement-backend/internal/store"
	"github.com/custodia-tech/settlement-backend/internal/wallet"
)

type config struct {
	PostgresDSN        string        `long:"postgres-dsn" env:"SETTLEMENT_POSTGRES_DSN" description:"Postgres DSN" required:"true"`
	ClickhouseDSN      string        `long:"clickhouse-dsn" env:"SETTLEMENT_CLICKHOUSE_DSN" description:"ClickHouse DSN for the audit sink; empty disables auditing"`
	RPCURL             string        `long:"rpc-url" env:"SETTLEMENT_RPC_URL" description:"ledger provider base URL" required:"true"`
	RPCRateLimit       int           `long:"rpc-rate-limit" env:"SETTLEMENT_RPC_RATE_LIMIT" description:"ledger provider requests per second" default:"10"`
	EncryptionSecret   string        `long:"encryption-secret" env:"SETTLEMENT_ENCRYPTION_SECRET" description:"secret protecting stored wallet mnemonics" required:"true"`
	SweepInterval      time.Duration `long:"sweep-interval" env:"SETTLEMENT_SWEEP_INTERVAL" description:"delay between batch sweeps" default:"30s"`
	Workers            int           `long:"workers" env:"SETTLEMENT_WORKERS" description:"concurrent requests per batch" default:"4"`
	BatchLimit         int           `long:"batch-limit" env:"SETTLEMENT_BATCH_LIMIT" description:"max requests per sweep; 0 is unbounded"`
	AuditFlushSize     int           `long:"audit-flush-size" env:"SETTLEMENT_AUDIT_FLUSH_SIZE" description:"audit events per ClickHouse batch" default:"100"`
	AuditFlushInterval time.Duration `long:"audit-flush-interval" env:"SETTLEMENT_AUDIT_FLUSH_INTERVAL" description:"max delay before audit events flush" default:"5s"`
	MetricsAddr        string        `long:"metrics-addr" env:"SETTLEMENT_METRICS_ADDR" description:"address for metrics server" default:":2112"`
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
		logger.Fatal("settlement daemon failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	st := store.New(db)
	if err := st.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	walletProvider, err := wallet.NewProvider(cfg.EncryptionSecret)
	if err != nil {
		return fmt.Errorf("init wallet provider: %w", err)
	}

	var auditor processor.Auditor
	if cfg.ClickhouseDSN != "" {
		repo, err := audit.NewRepository(cfg.ClickhouseDSN, metrics.NewAuditRepository())
		if err != nil {
			return fmt.Errorf("init audit repository: %w", err)
		}
		recorder := audit.NewRecorder(logger, repo, cfg.AuditFlushSize, cfg.AuditFlushInterval)
		recorder.Start(ctx)
		defer recorder.Stop()
		auditor = recorder
	}

	proc := processor.New(
		logger,
		st,
		newSourceProviders(cfg.RPCURL, cfg.RPCRateLimit),
		walletKeys{provider: walletProvider},
		locks.NewRegistry(),
		metrics.NewProcessor(),
		auditor,
		processor.Config{Workers: cfg.Workers, BatchLimit: cfg.BatchLimit},
	)

	sweeps, err := jobs.ForBatches(proc, st, cfg.SweepInterval, logger)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, job := range sweeps {
		wg.Add(1)
		go func(job *jobs.Job) {
			defer wg.Done()
			if err := job.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("job stopped", zap.String("name", job.Name()), zap.Error(err))
			}
		}(job)
	}

	logger.Info("settlement daemon started", zap.Int("jobs", len(sweeps)))
	wg.Wait()
	return ctx.Err()
}

// sourceProviders builds one rate-limited RPC client per payment source and
// caches it for the lifetime of the process.
type sourceProviders struct {
	baseURL string
	rps     int

	mu      sync.Mutex
	clients map[uuid.UUID]chain.Provider
}

func newSourceProviders(baseURL string, rps int) *sourceProviders {
	return &sourceProviders{
		baseURL: baseURL,
		rps:     rps,
		clients: make(map[uuid.UUID]chain.Provider),
	}
}

func (s *sourceProviders) For(src *model.PaymentSource) chain.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.clients[src.ID]; ok {
		return p
	}
	p := chain.NewObservedProvider(
		chain.NewClient(s.baseURL, src.RPCCredential, nil, s.rps),
		metrics.NewRPCClient(src.Network),
	)
	s.clients[src.ID] = p
	return p
}

// walletKeys adapts the wallet provider to the processor's key interface.
type walletKeys struct {
	provider *wallet.Provider
}

func (k walletKeys) Resolve(w *model.HotWallet) (processor.Key, error) {
	return k.provider.Resolve(w)
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
