// Package retention applies per-video lifecycle policies: scheduled deletion
// of stored recordings while their reports are kept with the video reference
// nullified.
package retention

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/logging"
	"github.com/epquotient/epq/internal/storage"
	"github.com/epquotient/epq/pkg/models"
)

// Service owns retention settings and the expiry sweep.
type Service struct {
	repo    *database.Repository
	storage *storage.Storage
	log     *logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewService(repo *database.Repository, store *storage.Storage, log *logging.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: store,
		log:     log,
	}
}

// Settings is the retention overview returned to the owner.
type Settings struct {
	DefaultRetention  string          `json:"default_retention"`
	Videos            []*models.Video `json:"videos"`
	AvailablePolicies []string        `json:"available_policies"`
}

// GetSettings returns the user's default policy and per-video schedules.
func (s *Service) GetSettings(ctx context.Context, userID string) (*Settings, error) {
	settings, err := s.repo.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos, err := s.repo.ListVideos(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Settings{
		DefaultRetention:  settings.DefaultRetention,
		Videos:            videos,
		AvailablePolicies: models.RetentionPolicies,
	}, nil
}

// SetDefault stores the policy applied to the user's future uploads.
func (s *Service) SetDefault(ctx context.Context, userID, policy string) error {
	if !models.ValidRetentionPolicy(policy) {
		return fmt.Errorf("%w: invalid retention policy %q", database.ErrInvalidInput, policy)
	}
	return s.repo.SetDefaultRetention(ctx, userID, policy)
}

// SetVideoPolicy reschedules deletion for one video. The deletion time is
// computed from now, not from the upload time.
func (s *Service) SetVideoPolicy(ctx context.Context, videoID, userID, policy string) (*time.Time, error) {
	if !models.ValidRetentionPolicy(policy) {
		return nil, fmt.Errorf("%w: invalid retention policy %q", database.ErrInvalidInput, policy)
	}

	scheduled := ScheduledDeletion(policy, time.Now().UTC())
	if err := s.repo.UpdateVideoRetention(ctx, videoID, userID, policy, scheduled); err != nil {
		return nil, err
	}
	return scheduled, nil
}

// DeleteNow removes the video's stored objects and database rows. Reports
// survive with video_id nullified.
func (s *Service) DeleteNow(ctx context.Context, videoID, userID string) error {
	video, err := s.repo.GetVideo(ctx, videoID, userID)
	if err != nil {
		return err
	}

	prefix := "videos/" + video.ID + "/"
	err = s.storage.DeletePrefix(ctx, prefix)
	s.log.LogStorageOperation("delete_prefix", prefix, video.Size, err)
	if err != nil {
		// Orphaned objects are preferable to a video row that cannot be
		// removed; log and continue.
		s.log.WithVideoID(video.ID).ErrorWithErr("failed to delete stored objects", err)
	}

	if err := s.repo.DeleteVideo(ctx, video.ID); err != nil {
		return err
	}

	s.log.WithVideoID(video.ID).WithUserID(userID).Info("video deleted")
	return nil
}

// CleanupExpired deletes every video whose scheduled deletion has passed.
// Returns the number deleted.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.ListExpiredVideos(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, video := range expired {
		if err := s.DeleteNow(ctx, video.ID, video.UserID); err != nil {
			s.log.WithVideoID(video.ID).ErrorWithErr("failed to delete expired video", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// pruneStaleRows drops expired session tokens and checkout sessions that
// were never paid. Piggybacks on the retention ticker so no second
// scheduler is needed.
func (s *Service) pruneStaleRows(ctx context.Context) {
	if n, err := s.repo.DeleteExpiredSessions(ctx); err != nil {
		s.log.ErrorWithErr("failed to prune expired sessions", err)
	} else if n > 0 {
		s.log.Infof("pruned %d expired sessions", n)
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	if n, err := s.repo.DeleteStalePendingUpgrades(ctx, cutoff); err != nil {
		s.log.ErrorWithErr("failed to prune stale pending upgrades", err)
	} else if n > 0 {
		s.log.Infof("pruned %d stale pending upgrades", n)
	}
}

// Start launches the periodic expiry sweep. Stop halts it.
func (s *Service) Start(interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.log.Infof("retention cleanup scheduler started (interval: %s)", interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.CleanupExpired(ctx)
				if err != nil {
					s.log.ErrorWithErr("retention cleanup failed", err)
				} else if deleted > 0 {
					s.log.Infof("retention cleanup removed %d expired videos", deleted)
				}
				s.pruneStaleRows(ctx)
			}
		}
	}()
}

// Stop cancels the sweep and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// ScheduledDeletion computes the deletion time for a policy starting at from.
// Permanent returns nil.
func ScheduledDeletion(policy string, from time.Time) *time.Time {
	days := models.RetentionPeriods[policy]
	if days == nil {
		return nil
	}
	t := from.AddDate(0, 0, *days)
	return &t
}
