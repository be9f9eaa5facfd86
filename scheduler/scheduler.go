// Package scheduler runs the periodic background jobs of the medicine API:
// refreshing the stored record gauge and pruning idle rate limiter buckets.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/metrics"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// BucketPruner drops rate limiter state for idle clients
type BucketPruner interface {
	Prune() int
}

// Scheduler handles the stats job using dependency injection
type Scheduler struct {
	store     interfaces.RecordStore
	pruner    BucketPruner
	interval  time.Duration
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// pruner may be nil.
func NewScheduler(store interfaces.RecordStore, pruner BucketPruner, interval time.Duration) *Scheduler {
	return &Scheduler{
		store:     store,
		pruner:    pruner,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start refreshes the stats once, then every interval
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid stats interval: %s", s.interval)
	}

	s.refreshStats()

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.refreshStats)
	if err != nil {
		logging.Error("Failed to schedule stats job", "error", err)
		return fmt.Errorf("failed to schedule stats job: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Scheduler started", "interval", s.interval.String())

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// refreshStats updates the record gauge and prunes idle buckets
func (s *Scheduler) refreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.store.Count(ctx)
	if err != nil {
		logging.Warn("Failed to count stored records", "error", err)
	} else {
		metrics.MedicineRecords.Set(float64(count))
		logging.Debug("Stored records counted", "records", count)
	}

	if s.pruner != nil {
		if removed := s.pruner.Prune(); removed > 0 {
			logging.Debug("Pruned idle rate limiter buckets", "removed", removed)
		}
	}
}
