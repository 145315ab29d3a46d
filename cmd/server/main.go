// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-generator/internal/app"
	"github.com/unclebandit/campaign-generator/internal/config"
	"github.com/unclebandit/campaign-generator/internal/controller"
	"github.com/unclebandit/campaign-generator/internal/db"
	"github.com/unclebandit/campaign-generator/internal/handler"
	"github.com/unclebandit/campaign-generator/internal/logging"
	"github.com/unclebandit/campaign-generator/internal/queue"
	"github.com/unclebandit/campaign-generator/internal/repository"
	"github.com/unclebandit/campaign-generator/internal/service"
	"github.com/unclebandit/campaign-generator/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("❌ failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := service.NewGeminiGenerator(ctx, service.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	})
	if err != nil {
		logger.Fatal("❌ failed to create Gemini client", zap.Error(err))
	}

	var conn *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("❌ database unavailable", zap.Error(err))
		}
		defer conn.Close()
		if err := db.Migrate(conn); err != nil {
			logger.Fatal("❌ migration failed", zap.Error(err))
		}
	}

	q := generationQueue(cfg, conn, logger)
	if closer, ok := q.(*queue.AMQPQueue); ok {
		defer closer.Close()
	}

	campaignService := service.NewCampaignService(generator, q, logger)
	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("❌ failed to parse templates", zap.Error(err))
	}

	sessions := app.NewSessionStore(campaignService, cfg.SessionTTL, logger)
	sessions.MaxSessions = cfg.MaxSessions

	campaignController := &controller.CampaignController{
		Sessions: sessions,
		Service:  campaignService,
		Renderer: renderer,
		Logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", campaignController.Index)
	r.Post("/campaign", campaignController.Submit)
	r.Get("/campaign/state", campaignController.State)
	r.Get("/healthz", handler.Healthz)
	r.Post("/api/campaigns", campaignController.GenerateCampaign)

	if conn != nil {
		generationHandler := handler.NewGenerationHandler(&repository.GenerationRepository{DB: conn}, logger)
		r.Get("/api/generations", generationHandler.ListGenerations)
		r.Get("/api/generations/{id}", generationHandler.GetGeneration)
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("🚀 Server running", zap.String("addr", cfg.Addr()), zap.String("model", generator.Model()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("❌ server stopped", zap.Error(err))
	}
	logger.Info("👋 Server stopped")
}

// generationQueue picks where generation events go: RabbitMQ when configured, else an
// in-process subscriber writing to Postgres, else nowhere.
func generationQueue(cfg *config.Config, conn *sql.DB, logger *zap.Logger) queue.Queue {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatal("❌ failed to connect to RabbitMQ", zap.Error(err))
		}
		go func() {
			if err, ok := <-q.NotifyClose(); ok {
				logger.Error("⚠️ RabbitMQ connection lost, generation events will not be published", zap.Error(err))
			}
		}()
		return q
	}

	if conn == nil {
		logger.Warn("⚠️ no DATABASE_URL or AMQP_URL, generation log disabled")
		return nil
	}

	q := queue.NewInMemoryQueue(logger)
	if err := queue.StartGenerationLogSubscriber(q, &repository.GenerationRepository{DB: conn}, logger); err != nil {
		logger.Fatal("❌ failed to subscribe generation log", zap.Error(err))
	}
	return q
}
