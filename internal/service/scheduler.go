package service

import (
	"context"
	"sync"
	"time"

	"quiz-practice/internal/config"
	"quiz-practice/internal/domain"
	"quiz-practice/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SchedulerStatus is a snapshot of the periodic generator.
type SchedulerStatus struct {
	Running     bool
	Category    string
	Count       int
	Interval    time.Duration
	Runs        int
	LastRunAt   time.Time
	LastOutcome domain.GenerationOutcome
	LastSaved   int
	LastError   string
}

// Scheduler triggers one generation run per interval while started. It
// keeps no state across restarts. Ticks never overlap: a tick that comes
// due while the previous run is still going is skipped.
type Scheduler struct {
	generator domain.GenerationService
	interval  time.Duration
	count     int

	mu       sync.Mutex
	cron     *cron.Cron
	cancel   context.CancelFunc
	category string
	status   SchedulerStatus
	// session changes on every Start and Stop; runs begun under an older
	// session do not touch the status.
	session uint64
}

func NewScheduler(generator domain.GenerationService, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		generator: generator,
		interval:  cfg.Interval,
		count:     cfg.Count,
	}
}

// Start begins periodic generation for category. It returns a conflict
// error when already running.
func (s *Scheduler) Start(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return domain.NewConflictError("scheduler is already running").
			WithContext("category", s.category)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Get()))
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))
	s.session++
	session := s.session
	c.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		s.run(runCtx, category, session)
	}))
	c.Start()

	s.cron = c
	s.cancel = cancel
	s.category = category
	s.status = SchedulerStatus{}
	logger.Get().Info("Scheduler started",
		zap.String("category", category), zap.Duration("interval", s.interval))
	return nil
}

// Stop halts future ticks and cancels a run in progress. Stopping an idle
// scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}
	s.cron.Stop()
	s.cancel()
	s.session++
	s.cron = nil
	s.cancel = nil
	logger.Get().Info("Scheduler stopped", zap.String("category", s.category))
}

func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.status
	st.Running = s.cron != nil
	st.Category = s.category
	st.Count = s.count
	st.Interval = s.interval
	return st
}

// RunOnce performs a single generation run and records its outcome, unless
// the scheduler is started or stopped before the run finishes.
func (s *Scheduler) RunOnce(ctx context.Context, category string) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	s.run(ctx, category, session)
}

func (s *Scheduler) run(ctx context.Context, category string, session uint64) {
	result, err := s.generator.Generate(ctx, category, s.count)

	s.mu.Lock()
	defer s.mu.Unlock()
	if session != s.session {
		logger.Get().Debug("Discarding result of a superseded scheduler run", zap.String("category", category))
		return
	}
	s.status.Runs++
	s.status.LastRunAt = time.Now()
	if err != nil {
		s.status.LastError = err.Error()
		s.status.LastOutcome = ""
		s.status.LastSaved = 0
		logger.Get().Warn("Scheduled generation failed", zap.String("category", category), zap.Error(err))
		return
	}
	s.status.LastError = ""
	s.status.LastOutcome = result.Outcome
	s.status.LastSaved = result.Saved
}
