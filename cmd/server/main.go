package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"loanflow/internal/audit"
	"loanflow/internal/directory"
	"loanflow/internal/documents"
	"loanflow/internal/engine"
	"loanflow/internal/engine/handler"
	enginemetrics "loanflow/internal/engine/metrics"
	"loanflow/internal/ledger"
	"loanflow/internal/platform/config"
	"loanflow/internal/platform/httpserver"
	"loanflow/internal/platform/logger"
	platformmetrics "loanflow/internal/platform/metrics"
	"loanflow/internal/platform/postgres"
	redisplatform "loanflow/internal/platform/redis"
	"loanflow/internal/sanction"
	"loanflow/internal/session"
	httptransport "loanflow/internal/transport/http"
	"loanflow/internal/underwriting"
	"loanflow/pkg/platform/circuit"
)

const auditInboxSize = 256

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		sessionStore  session.Store  = session.NewInMemoryStore()
		sanctionStore sanction.Store = sanction.NewInMemoryStore()
	)
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		sessionStore = session.NewPostgresStore(db)
		sanctionStore = sanction.NewPostgresStore(db)
	}

	var documentStore documents.Store = documents.NewInMemoryStore()
	if cfg.RedisURL != "" {
		client, err := redisplatform.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		documentStore = documents.NewRedisStore(client.Client)
	}

	sinks := []audit.Sink{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("kafka producer failed", "error", err)
			os.Exit(1)
		}
		defer func() { _ = kafkaSink.Close(context.Background()) }()

		// Kafka delivery runs off the request path through a bounded inbox.
		worker := audit.NewWorker(kafkaSink, auditInboxSize, log)
		workerCtx, stopWorker := context.WithCancel(ctx)
		defer stopWorker()
		go func() { _ = worker.Run(workerCtx) }()
		sinks = append(sinks, worker)
	}
	auditPublisher := audit.NewPublisher(audit.NewInMemoryStore(), sinks...)

	customerDirectory := directory.WithBreaker(
		directory.NewInMemoryDirectory(directory.Seed()...),
		circuit.New("customer-directory"),
		log,
	)

	appMetrics := platformmetrics.New()
	sanctionService := sanction.NewService(sanctionStore)
	engineService := engine.NewService(engine.Deps{
		Policy:    policyFromConfig(cfg),
		Sessions:  sessionStore,
		Directory: customerDirectory,
		Documents: documentStore,
		Sanctions: sanctionService,
		Orders:    ledger.NewInMemoryLedger(),
		Audit:     auditPublisher,
		Logger:    log,
		Metrics:   enginemetrics.New(),
		App:       appMetrics,
	})

	h := handler.New(engineService, sanctionService, log)
	router := httptransport.NewRouter(h, log, appMetrics)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting loanflow", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// policyFromConfig starts from the default underwriting policy and applies
// any environment overrides.
func policyFromConfig(cfg config.Server) underwriting.Policy {
	p := underwriting.DefaultPolicy()
	if cfg.MinScoreFloor > 0 {
		p.MinScoreFloor = cfg.MinScoreFloor
	}
	if cfg.MaxAmountMultiplier > 0 {
		p.MaxAmountMultiplier = cfg.MaxAmountMultiplier
	}
	if cfg.AffordabilityRatio > 0 {
		p.AffordabilityRatio = cfg.AffordabilityRatio
	}
	return p
}
