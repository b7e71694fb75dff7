package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rickgao/market-loader/internal/pipeline"
)

// Job is one schedulable run.
type Job interface {
	Run(ctx context.Context) (pipeline.Summary, error)
}

// JobFunc is a function adapter for Job.
type JobFunc func(ctx context.Context) (pipeline.Summary, error)

func (f JobFunc) Run(ctx context.Context) (pipeline.Summary, error) {
	return f(ctx)
}

// Config holds scheduler configuration.
type Config struct {
	Spec       string // Cron expression
	RunOnStart bool   // Fire one run immediately on Start
}

// Status is the scheduler's view of past runs.
type Status struct {
	Running      bool      `json:"running"`
	Runs         int       `json:"runs"`
	Failures     int       `json:"failures"`
	Skipped      int       `json:"skipped"`
	LastRunID    string    `json:"last_run_id,omitempty"`
	LastStart    time.Time `json:"last_start,omitempty"`
	LastDuration string    `json:"last_duration,omitempty"`
	LastInserted int       `json:"last_inserted"`
	LastError    string    `json:"last_error,omitempty"`
	NextRun      time.Time `json:"next_run,omitempty"`
}

// Scheduler fires Job on a cron schedule, one run at a time.
type Scheduler struct {
	cfg    Config
	job    Job
	logger *slog.Logger

	cron    *cron.Cron
	entry   cron.EntryID
	wrapped cron.Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	status Status
}

// New creates a new Scheduler.
func New(cfg Config, job Job, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cfg:    cfg,
		job:    job,
		logger: logger,
	}
	cl := cronLogger{logger: logger}
	s.cron = cron.New(cron.WithLogger(cl))
	s.wrapped = cron.NewChain(
		cron.Recover(cl),
		skipIfRunning(s),
	).Then(cron.FuncJob(s.runOnce))
	return s
}

// Start schedules the job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	sched, err := cron.ParseStandard(s.cfg.Spec)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", s.cfg.Spec, err)
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.entry = s.cron.Schedule(sched, s.wrapped)
	s.cron.Start()

	s.logger.Info("scheduler started",
		"schedule", s.cfg.Spec,
		"next_run", s.cron.Entry(s.entry).Next,
	)

	if s.cfg.RunOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.wrapped.Run()
		}()
	}

	return nil
}

// Stop cancels an in-flight run and waits for it to return.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	cronDone := s.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the run history.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	st := s.status
	s.mu.Unlock()

	if s.entry != 0 {
		st.NextRun = s.cron.Entry(s.entry).Next
	}
	return st
}

// runOnce executes one run and records its outcome. Failures are logged by
// the job and do not stop the schedule.
func (s *Scheduler) runOnce() {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	s.status.Running = true
	s.mu.Unlock()

	summary, err := s.job.Run(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Running = false
	s.status.Runs++
	s.status.LastRunID = summary.RunID.String()
	s.status.LastStart = summary.StartedAt
	s.status.LastDuration = summary.Duration.String()
	s.status.LastInserted = summary.TotalInserted
	s.status.LastError = ""
	if err != nil {
		s.status.Failures++
		s.status.LastError = err.Error()
	}
}

// skipIfRunning is cron.SkipIfStillRunning with the skip counted in Status.
func skipIfRunning(s *Scheduler) cron.JobWrapper {
	return func(j cron.Job) cron.Job {
		ch := make(chan struct{}, 1)
		ch <- struct{}{}
		return cron.FuncJob(func() {
			select {
			case v := <-ch:
				defer func() { ch <- v }()
				j.Run()
			default:
				s.mu.Lock()
				s.status.Skipped++
				s.mu.Unlock()
				s.logger.Warn("previous run still in progress, skipping tick")
			}
		})
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
