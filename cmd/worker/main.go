// cmd/worker/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unclebandit/campaign-generator/internal/config"
	"github.com/unclebandit/campaign-generator/internal/db"
	"github.com/unclebandit/campaign-generator/internal/logging"
	"github.com/unclebandit/campaign-generator/internal/queue"
	"github.com/unclebandit/campaign-generator/internal/repository"
)

// The worker drains generation events from RabbitMQ into the generations table.
func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("❌ failed to build logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("❌ database unavailable", zap.Error(err))
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		logger.Fatal("❌ migration failed", zap.Error(err))
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, logger)
	if err != nil {
		logger.Fatal("❌ failed to connect to RabbitMQ", zap.Error(err))
	}
	defer q.Close()

	repo := &repository.GenerationRepository{DB: conn}
	if err := queue.StartGenerationLogSubscriber(q, repo, logger); err != nil {
		logger.Fatal("❌ failed to register consumer", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🐇 Worker running, waiting for generation events...", zap.String("queue", queue.GenerationsTopic))
	select {
	case <-ctx.Done():
		logger.Info("👋 Worker stopping")
	case err, ok := <-q.NotifyClose():
		if ok {
			logger.Error("❌ RabbitMQ connection closed", zap.Error(err))
		}
	}
}
