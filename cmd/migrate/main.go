package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"umrah-storefront/internal/config"
	"umrah-storefront/internal/db"
	"umrah-storefront/internal/logger"
	"umrah-storefront/internal/migrate"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	log = log.Named("migrate")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: cfg.DBMaxConns, SlowQuery: cfg.DBSlowQuery}, log)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	version, err := migrate.Apply(ctx, pool)
	if err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}

	log.Info("migrations applied", zap.Uint("version", version))
}
