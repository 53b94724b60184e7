package store

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultCleanupInterval is the default interval between janitor runs.
const DefaultCleanupInterval = 5 * time.Minute

// CleanupJob periodically runs the store's expiry pass so an idle process
// does not hold expired sessions until the next access. The store's
// invariants never depend on it: expiry stays lazy per access.
type CleanupJob struct {
	store    *Store
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
}

// NewCleanupJob creates a cleanup job for the store.
func NewCleanupJob(store *Store, interval time.Duration) *CleanupJob {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CleanupJob{
		store:    store,
		interval: interval,
	}
}

// Start begins the periodic cleanup in a goroutine. Non-blocking.
func (j *CleanupJob) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return
	}
	j.running = true
	j.stopChan = make(chan struct{})

	go j.run(ctx)

	slog.Info("session cleanup job started", "interval", j.interval)
}

// Stop stops the cleanup job.
func (j *CleanupJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}
	close(j.stopChan)
	j.running = false

	slog.Info("session cleanup job stopped")
}

// IsRunning reports whether the job is currently running.
func (j *CleanupJob) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

func (j *CleanupJob) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.stopChan:
			return
		case <-ticker.C:
			if removed := j.store.CleanupExpired(); removed > 0 {
				slog.Info("session cleanup completed", "removed", removed)
			}
		}
	}
}
