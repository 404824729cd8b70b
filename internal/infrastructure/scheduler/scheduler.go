package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/northpole96/habit/internal/domain/habits"
	"github.com/northpole96/habit/pkg/logger"
)

// Scheduler runs the midnight maintenance sweep. Habit statistics are
// derived on read, so nothing touches the habit histories here; the only
// periodic work is trimming the activity log to its retention window.
type Scheduler struct {
	repo          habits.Repository
	retentionDays int
	logger        *logger.Logger
	cancel        context.CancelFunc
}

func NewScheduler(repo habits.Repository, retentionDays int, log *logger.Logger) *Scheduler {
	return &Scheduler{
		repo:          repo,
		retentionDays: retentionDays,
		logger:        log,
	}
}

// Start runs one sweep immediately, then aligns to local midnight and
// sweeps every 24 hours until Stop is called.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.sweep(ctx)

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	untilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Maintenance scheduler initialized",
		zap.Int("retention_days", s.retentionDays),
		zap.Time("next_run", nextMidnight),
	)

	go func() {
		timer := time.NewTimer(untilMidnight)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			s.sweep(ctx)
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the background sweep loop.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	if s.retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	pruned, err := s.repo.PruneActivity(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to prune activity log",
			zap.Time("cutoff", cutoff),
			zap.Error(err),
		)
		return
	}
	if pruned > 0 {
		s.logger.Info("Pruned activity log",
			zap.Int64("pruned", pruned),
			zap.Time("cutoff", cutoff),
		)
	}
}
