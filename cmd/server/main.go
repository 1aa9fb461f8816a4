package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/infra"
	infraeventbus "github.com/tincan-finance/tincan/infra/eventbus"
	"github.com/tincan-finance/tincan/infra/provider/prices"
	infrarepo "github.com/tincan-finance/tincan/infra/repository"
	"github.com/tincan-finance/tincan/infra/scheduler"
	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/service/account"
	"github.com/tincan-finance/tincan/pkg/service/alert"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/backup"
	"github.com/tincan-finance/tincan/pkg/service/budget"
	"github.com/tincan-finance/tincan/pkg/service/category"
	cryptosvc "github.com/tincan-finance/tincan/pkg/service/crypto"
	"github.com/tincan-finance/tincan/pkg/service/goal"
	"github.com/tincan-finance/tincan/pkg/service/reports"
	"github.com/tincan-finance/tincan/pkg/service/schedule"
	"github.com/tincan-finance/tincan/pkg/service/tag"
	"github.com/tincan-finance/tincan/pkg/service/transaction"
	"github.com/tincan-finance/tincan/pkg/service/user"
	"github.com/tincan-finance/tincan/webapi"

	"github.com/go-playground/validator/v10"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(infrarepo.AllModels()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	var redisClient *redis.Client
	if rc, err := prices.NewRedisClient(*cfg.Redis); err != nil {
		logger.Warn("redis unavailable, price caching disabled", "error", err)
	} else {
		redisClient = rc
	}

	uow := infrarepo.NewUoW(db)
	bus := infraeventbus.NewWithMemory(logger)

	var provider cryptosvc.PriceProvider
	if cfg.PriceProvider.ApiUrl == "" {
		logger.Warn("no price API configured, using static quotes")
		provider = prices.NewStatic(map[string]float64{"BTC": 64000, "ETH": 3300, "SOL": 145})
	} else {
		provider = prices.NewHTTP(*cfg.PriceProvider)
		if redisClient != nil {
			provider = prices.NewCached(provider, redisClient, *cfg.PriceProvider, logger)
		}
	}

	authSvc := auth.New(uow, cfg.Jwt, logger)
	userSvc := user.New(uow, logger)
	accountSvc := account.New(uow, bus, logger)
	categorySvc := category.New(uow, logger)
	tagSvc := tag.New(uow, logger)
	transactionSvc := transaction.New(uow, logger)
	budgetSvc := budget.New(uow, bus, logger)
	goalSvc := goal.New(uow, bus, logger)
	alertSvc := alert.New(uow, logger)
	alertSvc.Subscribe(bus)
	scheduleSvc := schedule.New(uow, bus, logger)
	cryptoSvc := cryptosvc.New(uow, provider, logger)
	reportsSvc := reports.New(uow, logger)
	backupSvc := backup.New(uow, validator.New(), logger)

	sched := scheduler.New(*cfg.Scheduler, scheduleSvc, cryptoSvc, budgetSvc, accountSvc, alertSvc, logger)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	app := webapi.NewApp(webapi.Deps{
		Config:       cfg,
		Logger:       logger,
		Auth:         authSvc,
		Users:        userSvc,
		Accounts:     accountSvc,
		Categories:   categorySvc,
		Tags:         tagSvc,
		Transactions: transactionSvc,
		Budgets:      budgetSvc,
		Goals:        goalSvc,
		Alerts:       alertSvc,
		Schedules:    scheduleSvc,
		Crypto:       cryptoSvc,
		Reports:      reportsSvc,
		Backup:       backupSvc,
		CheckDB: func(ctx context.Context) error {
			return pingDB(ctx, db)
		},
		CheckRedis: func(ctx context.Context) error {
			if redisClient == nil {
				return fmt.Errorf("redis not configured")
			}
			return redisClient.Ping(ctx).Err()
		},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr, "version", cfg.Version)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		sched.Stop()
		return app.Shutdown()
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func newLogger(cfg *config.Log) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
