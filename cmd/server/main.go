package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"coursehub/internal/auth"
	"coursehub/internal/config"
	"coursehub/internal/metrics"
	"coursehub/internal/repository"
	"coursehub/internal/server"
)

func main() {
	defaultPath := "configs/config.yml"
	if p, ok := os.LookupEnv("CONFIG_PATH"); ok && p != "" {
		defaultPath = p
	}
	cfgPath := flag.String("config", defaultPath, "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		// The logger is configured from cfg, so fall back to a default one here.
		fallback, _ := zap.NewProduction()
		fallback.Fatal("Failed to load config", zap.String("path", *cfgPath), zap.Error(err))
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Database connection
	db, err := repository.NewPostgresDB(ctx, cfg.Database.URL, repository.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := repository.MigrateDB(db, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("Failed to initialize token service", zap.Error(err))
	}

	srv, err := server.NewServer(cfg.Server, server.Deps{
		Users:   repository.NewUserRepository(db, logger),
		Courses: repository.NewCourseRepository(db, logger),
		Hasher:  auth.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency),
		Tokens:  tokens,
		Metrics: metrics.New(),
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Application stopped.")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level
	return zapCfg.Build()
}
