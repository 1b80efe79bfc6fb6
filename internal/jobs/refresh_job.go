package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"promoter-service/internal/repository"
	"promoter-service/internal/services"
)

// SnapshotApplier receives each freshly loaded snapshot
type SnapshotApplier interface {
	Apply(snapshot *services.Snapshot)
}

// RefreshJob periodically re-reads every collection and hands the result to
// the dashboard view.
//
// A refresh is not ordered against request writes. A tick that reads a
// collection just before a write lands publishes the older state, and the
// write shows up on the next tick.
type RefreshJob struct {
	repo     repository.RepositoryInterface
	view     SnapshotApplier
	logger   *logrus.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRefreshJob creates a new refresh job
func NewRefreshJob(repo repository.RepositoryInterface, view SnapshotApplier, logger *logrus.Logger, interval time.Duration) *RefreshJob {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &RefreshJob{
		repo:     repo,
		view:     view,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the refresh loop until Stop is called or ctx is cancelled
func (j *RefreshJob) Start(ctx context.Context) {
	j.logger.WithField("interval", j.interval.String()).Info("Refresh job started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// Run immediately on start
	j.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			j.RunOnce(ctx)
		case <-j.stopCh:
			j.logger.Info("Refresh job stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Refresh job context cancelled")
			return
		}
	}
}

// Stop signals the job to stop. Safe to call more than once.
func (j *RefreshJob) Stop() {
	j.stopOnce.Do(func() { close(j.stopCh) })
}

// RunOnce loads one snapshot and applies it. A failed read keeps the previous state.
func (j *RefreshJob) RunOnce(ctx context.Context) bool {
	snapshot, err := services.LoadSnapshot(ctx, j.repo)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.WithError(err).Error("Failed to refresh dashboard snapshot")
		}
		return false
	}

	j.view.Apply(snapshot)
	j.logger.WithFields(logrus.Fields{
		"promoters":  len(snapshot.Promoters),
		"sales":      len(snapshot.Sales),
		"complaints": len(snapshot.Complaints),
	}).Debug("Dashboard snapshot applied")
	return true
}
