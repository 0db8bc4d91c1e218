package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/rmacedo/contas/internal/adapter/http"
	"github.com/rmacedo/contas/internal/adapter/http/handler"
	"github.com/rmacedo/contas/internal/adapter/http/middleware"
	postgresRepo "github.com/rmacedo/contas/internal/adapter/repository/postgres"
	redisRepo "github.com/rmacedo/contas/internal/adapter/repository/redis"
	"github.com/rmacedo/contas/internal/infrastructure/config"
	"github.com/rmacedo/contas/internal/infrastructure/logger"
	"github.com/rmacedo/contas/internal/infrastructure/metrics"
	"github.com/rmacedo/contas/internal/infrastructure/postgres"
	"github.com/rmacedo/contas/internal/infrastructure/redis"
	"github.com/rmacedo/contas/internal/usecase"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	clock := systemClock{}

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	debtRepo := postgresRepo.NewDebtRepository(pool)
	instrumentRepo := postgresRepo.NewInstrumentRepository(pool)
	permutaRepo := postgresRepo.NewPermutaRepository(pool)
	acertoRepo := postgresRepo.NewAcertoRepository(pool)
	commissionRepo := postgresRepo.NewCommissionRepository(pool)
	taxRepo := postgresRepo.NewTaxRepository(pool)
	cashFlow := postgresRepo.NewCashFlowRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	timelineCache := redisRepo.NewCache(redisClient)

	// Use cases
	saleUC := usecase.NewSaleUseCase(txManager, saleRepo, commissionRepo, instrumentRepo, permutaRepo, acertoRepo, cashFlow, idGen, clock)
	debtUC := usecase.NewDebtUseCase(txManager, debtRepo, instrumentRepo, permutaRepo, acertoRepo, cashFlow, idGen, clock)
	permutaUC := usecase.NewPermutaUseCase(txManager, permutaRepo, idGen, clock)
	acertoUC := usecase.NewAcertoUseCase(txManager, acertoRepo, saleRepo, debtRepo, instrumentRepo, permutaRepo, cashFlow, idGen, clock, m)
	instrumentUC := usecase.NewInstrumentUseCase(txManager, instrumentRepo, cashFlow, idGen, clock)
	commissionUC := usecase.NewCommissionUseCase(txManager, commissionRepo, cashFlow, idGen, clock)
	taxUC := usecase.NewTaxUseCase(taxRepo, idGen, clock)
	dueDateUC := usecase.NewDueDateUseCase(instrumentRepo, acertoRepo, taxRepo, timelineCache, clock, appLogger, m)

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SaleHandler:       handler.NewSaleHandler(saleUC),
		DebtHandler:       handler.NewDebtHandler(debtUC),
		PermutaHandler:    handler.NewPermutaHandler(permutaUC),
		AcertoHandler:     handler.NewAcertoHandler(acertoUC),
		InstrumentHandler: handler.NewInstrumentHandler(instrumentUC),
		CommissionHandler: handler.NewCommissionHandler(commissionUC),
		DueDateHandler:    handler.NewDueDateHandler(dueDateUC),
		TaxHandler:        handler.NewTaxHandler(taxUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:            appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
