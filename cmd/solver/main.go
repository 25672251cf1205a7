package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rosterhub-dev/roster-manager/backend/internal/config"
	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
	"github.com/rosterhub-dev/roster-manager/backend/internal/repository"
	"github.com/rosterhub-dev/roster-manager/backend/internal/roster"
	"github.com/rosterhub-dev/roster-manager/backend/internal/rotation"
	"github.com/rosterhub-dev/roster-manager/backend/internal/solver"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancelPing()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		solver.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * redis and roster service
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	client := solver.NewClient(cfg, ch, rdb)
	rosterService := roster.NewService(repo, rotation.NewExpander(), client)

	parameters := solver.Parameters{
		PopulationSize: cfg.Solver.PopulationSize,
		MaxGenerations: cfg.Solver.MaxGenerations,
		CrossoverRate:  cfg.Solver.CrossoverRate,
		MutationRate:   cfg.Solver.MutationRate,
		EliteCount:     cfg.Solver.EliteCount,
	}

	/**********************************************
	 * consume solve triggers
	 **********************************************/
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("received message", slog.String("message", string(msg.Body)))

				solverMessage := domain.SolverMessage{}
				if err := json.Unmarshal(msg.Body, &solverMessage); err != nil {
					logger.Error("failed to decode solver message", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if solverMessage.Type != domain.SolverMessageSolve {
					logger.Error("unsupported solver message type", slog.String("type", solverMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := solver.RunSolve(rosterService, client, parameters, solverMessage.TenantID); err != nil {
					logger.Error("solve failed", slog.Int64("tenantID", solverMessage.TenantID), slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for solve triggers... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down solve worker...")
	cancel()
	wg.Wait()
	slog.Info("solve worker stopped")
}
