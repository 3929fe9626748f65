package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/epquotient/epq/pkg/models"
)

// Cache provides caching functionality using Redis
type Cache struct {
	client *redis.Client
}

// NewCache creates a new cache instance
func NewCache(host string, port int, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping checks Redis connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Job Cache Operations

// SetJob caches job metadata
func (c *Cache) SetJob(ctx context.Context, job *models.Job, ttl time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	key := fmt.Sprintf("job:%s", job.ID)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetJob retrieves job metadata from cache
func (c *Cache) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	key := fmt.Sprintf("job:%s", jobID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get job from cache: %w", err)
	}

	var job models.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return &job, nil
}

// DeleteJob removes job from cache
func (c *Cache) DeleteJob(ctx context.Context, jobID string) error {
	key := fmt.Sprintf("job:%s", jobID)
	return c.client.Del(ctx, key).Err()
}

// SetJobProgress caches job progress for quick poll responses
func (c *Cache) SetJobProgress(ctx context.Context, jobID string, progress float64, ttl time.Duration) error {
	key := fmt.Sprintf("job:progress:%s", jobID)
	return c.client.Set(ctx, key, progress, ttl).Err()
}

// GetJobProgress retrieves job progress from cache
func (c *Cache) GetJobProgress(ctx context.Context, jobID string) (float64, error) {
	key := fmt.Sprintf("job:progress:%s", jobID)
	return c.client.Get(ctx, key).Float64()
}

// Report Cache Operations

// SetReport caches a completed report. Reports are immutable, so a long
// TTL is safe.
func (c *Cache) SetReport(ctx context.Context, report *models.Report, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	key := fmt.Sprintf("report:%s", report.ID)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetReport retrieves a report from cache
func (c *Cache) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	key := fmt.Sprintf("report:%s", reportID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// DeleteReport removes a report from cache
func (c *Cache) DeleteReport(ctx context.Context, reportID string) error {
	key := fmt.Sprintf("report:%s", reportID)
	return c.client.Del(ctx, key).Err()
}

// Share Cache Operations

// SetShare caches a share link record
func (c *Cache) SetShare(ctx context.Context, share *models.ReportShare, ttl time.Duration) error {
	data, err := json.Marshal(share)
	if err != nil {
		return fmt.Errorf("failed to marshal share: %w", err)
	}

	key := fmt.Sprintf("share:%s", share.ID)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetShare retrieves a share link record from cache
func (c *Cache) GetShare(ctx context.Context, shareID string) (*models.ReportShare, error) {
	key := fmt.Sprintf("share:%s", shareID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get share from cache: %w", err)
	}

	var share models.ReportShare
	if err := json.Unmarshal(data, &share); err != nil {
		return nil, fmt.Errorf("failed to unmarshal share: %w", err)
	}

	return &share, nil
}

// DeleteShare removes a share link from cache, used on revocation so a
// revoked link stops resolving immediately.
func (c *Cache) DeleteShare(ctx context.Context, shareID string) error {
	key := fmt.Sprintf("share:%s", shareID)
	return c.client.Del(ctx, key).Err()
}

// Trial Fingerprint Operations

// MarkTrialUsed flags a device fingerprint as having consumed a free trial
func (c *Cache) MarkTrialUsed(ctx context.Context, fingerprint string) error {
	key := fmt.Sprintf("trial:used:%s", fingerprint)
	return c.client.Set(ctx, key, "1", 0).Err()
}

// TrialUsed reports whether a device fingerprint already consumed a trial
func (c *Cache) TrialUsed(ctx context.Context, fingerprint string) (bool, error) {
	key := fmt.Sprintf("trial:used:%s", fingerprint)
	_, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check trial flag: %w", err)
	}
	return true, nil
}

// Stats Cache Operations

// IncrementStat increments a statistic counter
func (c *Cache) IncrementStat(ctx context.Context, stat string) error {
	key := fmt.Sprintf("stats:%s", stat)
	return c.client.Incr(ctx, key).Err()
}

// GetStat retrieves a statistic value
func (c *Cache) GetStat(ctx context.Context, stat string) (int64, error) {
	key := fmt.Sprintf("stats:%s", stat)
	return c.client.Get(ctx, key).Int64()
}
