// Package scheduler runs the refill job on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/lexicon/internal/enrichment"
	"github.com/mrlokans/lexicon/internal/settingsstore"
)

// ErrRefillInProgress is returned when a refill is requested while another
// one is still running.
var ErrRefillInProgress = errors.New("refill already in progress")

// refillTimeout bounds a single scheduled or triggered run.
const refillTimeout = 60 * time.Minute

// Refiller runs one pass over records missing metadata.
type Refiller interface {
	RefillMissing(ctx context.Context) (*enrichment.RefillReport, error)
}

// RefillSettings provides the effective schedule and records run outcomes.
type RefillSettings interface {
	Config(ctx context.Context) settingsstore.RefillScheduleConfig
	RecordStatus(ctx context.Context, status, message string) error
}

// RefillScheduler manages periodic refill runs.
type RefillScheduler struct {
	refiller Refiller
	settings RefillSettings

	cron        *cron.Cron
	entryID     cron.EntryID
	mu          sync.RWMutex
	isRunning   bool
	isRefilling bool
	generation  int
	runCtx      context.Context
	cancelFunc  context.CancelFunc
}

func NewRefillScheduler(refiller Refiller, settings RefillSettings) *RefillScheduler {
	return &RefillScheduler{
		refiller: refiller,
		settings: settings,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the job if the refill schedule is enabled.
func (s *RefillScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settings.Config(ctx)
	if !config.Enabled {
		log.Printf("[SCHEDULER] refill: disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.runScheduled()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refill job: %w", err)
	}
	s.entryID = entryID

	s.runCtx, s.cancelFunc = context.WithCancel(ctx)
	s.generation++
	gen, runCtx := s.generation, s.runCtx

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] refill: started with schedule '%s', next run %v",
		config.Schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-runCtx.Done()
		s.mu.RLock()
		current := s.generation == gen
		s.mu.RUnlock()
		if current {
			s.Stop()
		}
	}()

	return nil
}

// Stop removes the job and waits for a running refill to finish.
func (s *RefillScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil
	c := s.cron
	s.mu.Unlock()

	// The running job takes the lock when it finishes, so wait without it.
	<-c.Stop().Done()

	log.Printf("[SCHEDULER] refill: stopped")
}

// Reschedule applies changed schedule settings.
func (s *RefillScheduler) Reschedule(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

func (s *RefillScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsRefilling reports whether a refill pass is in progress.
func (s *RefillScheduler) IsRefilling() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRefilling
}

// NextRunTime returns when the job fires next, or nil when not scheduled.
func (s *RefillScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

// RunOnce runs a refill pass now and records its outcome. Only one pass
// runs at a time.
func (s *RefillScheduler) RunOnce(ctx context.Context) (*enrichment.RefillReport, error) {
	s.mu.Lock()
	if s.isRefilling {
		s.mu.Unlock()
		return nil, ErrRefillInProgress
	}
	s.isRefilling = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRefilling = false
		s.mu.Unlock()
	}()

	startTime := time.Now()
	report, err := s.refiller.RefillMissing(ctx)

	status, message := enrichment.RunFailed, ""
	switch {
	case report != nil:
		status = report.Status()
		message = fmt.Sprintf("%s in %v", report.Summary(), time.Since(startTime).Round(time.Millisecond))
	case err != nil:
		message = err.Error()
	}
	log.Printf("[SCHEDULER] refill: %s (%s)", status, message)

	// Record with a fresh context so a cancelled run still leaves a status.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if recErr := s.settings.RecordStatus(recordCtx, status, message); recErr != nil {
		log.Printf("[SCHEDULER] refill: failed to record status: %v", recErr)
	}

	return report, err
}

func (s *RefillScheduler) runScheduled() {
	s.mu.RLock()
	parent := s.runCtx
	s.mu.RUnlock()
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithTimeout(parent, refillTimeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); errors.Is(err, ErrRefillInProgress) {
		log.Printf("[SCHEDULER] refill: skipped (already running)")
	}
}
