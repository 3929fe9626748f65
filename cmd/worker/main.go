package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/epquotient/epq/internal/analysis"
	"github.com/epquotient/epq/internal/cache"
	"github.com/epquotient/epq/internal/config"
	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/logging"
	"github.com/epquotient/epq/internal/metrics"
	"github.com/epquotient/epq/internal/queue"
	"github.com/epquotient/epq/internal/storage"
	"github.com/epquotient/epq/pkg/models"
)

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

	redisCache, err := cache.NewCache(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisCache.Close()

	q, err := queue.New(cfg.Queue)
	if err != nil {
		logger.Fatalf("Failed to connect to queue: %v", err)
	}
	defer q.Close()

	if err := q.SetupDeadLetterQueue(); err != nil {
		logger.Fatalf("Failed to set up dead letter queue: %v", err)
	}

	var ai analysis.AIClient
	if cfg.Analysis.Mock || cfg.Analysis.OpenAIKey == "" {
		logger.Warn("Using mock AI client, scores will be synthetic")
		ai = analysis.NewMockClient()
	} else {
		ai = analysis.NewOpenAIClient(cfg.Analysis.OpenAIKey)
	}

	analyzer := analysis.NewService(repo, stor, redisCache, ai, cfg.Analysis, logger)

	hostname, _ := os.Hostname()
	workerID := fmt.Sprintf("worker_%s_%s", hostname, uuid.New().String()[:8])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down worker gracefully...")
		cancel()
	}()

	jobHandler := func(job *models.Job) error {
		jlog := logger.WithJobID(job.ID).WithVideoID(job.VideoID)
		jlog.Info("Processing job")

		if err := repo.StartJob(ctx, job.ID, workerID); err != nil {
			jlog.ErrorWithErr("Failed to claim job", err)
			return err
		}

		if err := analyzer.ProcessJob(ctx, job); err != nil {
			jlog.ErrorWithErr("Failed to process job", err)

			retries, rerr := repo.IncrementJobRetry(ctx, job.ID)
			if rerr != nil {
				jlog.ErrorWithErr("Failed to record retry", rerr)
				retries = queue.MaxRetries
			}

			if perr := q.PublishToRetryQueue(ctx, job, retries); perr != nil {
				jlog.ErrorWithErr("Failed to requeue job", perr)
			}
			if retries >= queue.MaxRetries {
				if ferr := repo.FailJob(ctx, job.ID, err.Error()); ferr != nil {
					jlog.ErrorWithErr("Failed to mark job failed", ferr)
				}
			}
			return err
		}

		jlog.Info("Job completed")
		return nil
	}

	// Dead-lettered jobs are past all retries; make sure the row reflects
	// the recorded failure so the frontend stops polling.
	dlqHandler := func(job *models.Job, reason string) error {
		if reason == "" {
			reason = "analysis failed after retries"
		}
		logger.WithJobID(job.ID).WithField("reason", reason).Warn("Job dead-lettered")
		if err := repo.FailJob(ctx, job.ID, reason); err != nil {
			logger.WithJobID(job.ID).ErrorWithErr("Failed to mark dead-lettered job", err)
			return err
		}
		return nil
	}

	if err := q.ConsumeDLQ(ctx, dlqHandler); err != nil {
		logger.Fatalf("Failed to consume dead letter queue: %v", err)
	}

	go pollQueueDepths(ctx, q, logger)

	logger.WithField("worker_id", workerID).Info("Worker started, waiting for jobs...")
	if err := q.ConsumeJobs(ctx, jobHandler); err != nil {
		logger.Fatalf("Failed to consume jobs: %v", err)
	}

	<-ctx.Done()
	logger.Info("Worker stopped")
}

// pollQueueDepths exports queue backlog gauges every 30s.
func pollQueueDepths(ctx context.Context, q *queue.Queue, logger *logging.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if depth, err := q.GetQueueDepth(); err != nil {
				logger.ErrorWithErr("Failed to inspect queue depth", err)
			} else {
				metrics.JobsQueueDepth.Set(float64(depth))
			}
			if depth, err := q.GetDLQDepth(); err != nil {
				logger.ErrorWithErr("Failed to inspect DLQ depth", err)
			} else {
				metrics.JobsDeadLettered.Set(float64(depth))
			}
		}
	}
}
