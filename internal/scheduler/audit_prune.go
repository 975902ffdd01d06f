// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// EventPruner deletes auth events older than the retention period.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// AuditPruneScheduler periodically removes expired auth events.
type AuditPruneScheduler struct {
	pruner    EventPruner
	schedule  string
	retention time.Duration

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditPruneScheduler creates a scheduler. Call Start to begin.
func NewAuditPruneScheduler(pruner EventPruner, schedule string, retention time.Duration) *AuditPruneScheduler {
	return &AuditPruneScheduler{
		pruner:    pruner,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start schedules the prune job. It stops when ctx is cancelled or Stop is
// called. A zero retention disables the job.
func (s *AuditPruneScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.retention <= 0 {
		log.Info().Msg("audit prune scheduler: retention not set, disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			log.Error().Err(err).Msg("audit prune failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule prune job: %w", err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Info().Str("schedule", s.schedule).Dur("retention", s.retention).Msg("audit prune scheduler: started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *AuditPruneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Info().Msg("audit prune scheduler: stopped")
}

// RunNow prunes immediately and returns the number of deleted events.
func (s *AuditPruneScheduler) RunNow(ctx context.Context) (int64, error) {
	deleted, err := s.pruner.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("pruned old auth events")
	}
	return deleted, nil
}

// IsRunning returns whether the scheduler is active.
func (s *AuditPruneScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
