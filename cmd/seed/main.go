package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/config"
	"github.com/rosterhub-dev/roster-manager/backend/internal/database"
	"github.com/rosterhub-dev/roster-manager/backend/internal/repository"
	"github.com/rosterhub-dev/roster-manager/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the network, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	if err := database.Migrate(dbpool); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if err := seed.Demo(cfg, repo); err != nil {
		logger.Error("failed to seed demo tenant", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("demo tenant seeded", slog.String("tenant", cfg.Seed.TenantName))
}
