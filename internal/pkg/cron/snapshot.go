package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
)

// SnapshotJobs keeps the dashboard snapshot warm.
type SnapshotJobs struct {
	store    dashboard.SnapshotStore
	interval time.Duration
}

func NewSnapshotJobs(store dashboard.SnapshotStore, interval time.Duration) *SnapshotJobs {
	return &SnapshotJobs{store: store, interval: interval}
}

// RegisterJobs registers the periodic snapshot refresh.
func (j *SnapshotJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(Job{
		Name:     "refresh_dashboard_snapshot",
		Interval: j.interval,
		Fn:       j.RefreshSnapshot,
	})
}

func (j *SnapshotJobs) RefreshSnapshot(ctx context.Context) error {
	_, err := j.store.Refresh(ctx)
	return err
}
