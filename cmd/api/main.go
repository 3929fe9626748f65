package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	openai "github.com/sashabaranov/go-openai"

	"github.com/epquotient/epq/internal/auth"
	"github.com/epquotient/epq/internal/cache"
	"github.com/epquotient/epq/internal/config"
	"github.com/epquotient/epq/internal/content"
	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/logging"
	"github.com/epquotient/epq/internal/payment"
	"github.com/epquotient/epq/internal/queue"
	"github.com/epquotient/epq/internal/retention"
	"github.com/epquotient/epq/internal/storage"
	"github.com/epquotient/epq/internal/subscription"
)

// API carries the wired services behind the HTTP handlers.
type API struct {
	cfg       *config.Config
	repo      *database.Repository
	storage   *storage.Storage
	queue     *queue.Queue
	cache     *cache.Cache
	auth      *auth.Service
	subs      *subscription.Service
	retention *retention.Service
	payments  *payment.Client
	generator content.Generator
	log       *logging.Logger
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	stor, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	q, err := queue.New(cfg.Queue)
	if err != nil {
		logger.Fatalf("Failed to connect to queue: %v", err)
	}
	defer q.Close()

	redisCache, err := cache.NewCache(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisCache.Close()

	authSvc := auth.NewService(repo, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	payments := payment.NewClient(cfg.Payment, cfg.Server.FrontendURL)
	subs := subscription.NewService(repo, redisCache, payments, cfg.Auth.WhitelistedEmails, logger)
	retentionSvc := retention.NewService(repo, stor, logger)

	var generator content.Generator = content.StaticGenerator{}
	if cfg.Analysis.OpenAIKey != "" && !cfg.Analysis.Mock {
		generator = content.NewOpenAIGenerator(openai.NewClient(cfg.Analysis.OpenAIKey))
	}

	api := &API{
		cfg:       cfg,
		repo:      repo,
		storage:   stor,
		queue:     q,
		cache:     redisCache,
		auth:      authSvc,
		subs:      subs,
		retention: retentionSvc,
		payments:  payments,
		generator: generator,
		log:       logger,
	}

	retentionSvc.Start(cfg.Analysis.CleanupInterval)
	defer retentionSvc.Stop()

	router := setupRouter(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
