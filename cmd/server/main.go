package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/codex-employee-directory/internal/adapters/notify"
	"github.com/ogurasousui/codex-employee-directory/internal/adapters/repository/memory"
	"github.com/ogurasousui/codex-employee-directory/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"github.com/ogurasousui/codex-employee-directory/internal/platform/config"
	pg "github.com/ogurasousui/codex-employee-directory/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-employee-directory/internal/platform/logger"
	"github.com/ogurasousui/codex-employee-directory/internal/platform/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	appLogger, err := logger.New(cfg.Logging, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build logger")
	}
	ctx = appLogger.WithContext(ctx)

	repo, tx, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialize storage")
	}
	defer cleanup()

	directory := employee.NewDirectory(repo, tx, notify.Notifier{})
	if err := directory.Load(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to load employee directory")
	}

	grpcServer := server.New(cfg.Server.ListenAddr, directory, appLogger)
	if err := grpcServer.Run(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("server stopped with error")
	}
}

func buildStorage(ctx context.Context, cfg *config.Config) (employee.Repository, employee.TransactionManager, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewEmployeeRepository(dbPool), pg.NewTransactionManager(dbPool), dbPool.Close, nil
	default:
		var seed []*employee.Employee
		if cfg.Storage.SeedFile != "" {
			loaded, err := memory.LoadSeedFile(cfg.Storage.SeedFile)
			if err != nil {
				return nil, nil, nil, err
			}
			seed = loaded
		}
		zerolog.Ctx(ctx).Info().Int("seed", len(seed)).Msg("using in-memory employee storage")
		return memory.NewEmployeeRepository(seed...), nil, func() {}, nil
	}
}
