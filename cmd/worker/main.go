package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/anshkapoor/gramly/internal/config"
	"github.com/anshkapoor/gramly/internal/database"
	"github.com/anshkapoor/gramly/internal/llm"
	"github.com/anshkapoor/gramly/internal/moderation"
	"github.com/anshkapoor/gramly/internal/queue"
	"github.com/anshkapoor/gramly/internal/queue/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPool(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("database required for rescan worker", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	// The worker moderates without a verdict cache: a rescan exists to get
	// a fresh AI opinion, not a cached one.
	mod := moderation.NewService(cfg.Moderation, llm.NewGateway(cfg.Moderation), nil)

	registry := queue.NewHandlersRegistry()
	rescan := workers.NewRescanWorker(db, mod)
	registry.Register(queue.TypeCommentRescan, asynq.HandlerFunc(rescan.ProcessTask))

	slog.Info("starting rescan worker", "concurrency", 10)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
