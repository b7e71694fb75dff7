package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/market-loader/internal/pipeline"
)

func TestScheduler_RecordsRuns(t *testing.T) {
	id := uuid.New()
	fail := false
	job := JobFunc(func(ctx context.Context) (pipeline.Summary, error) {
		s := pipeline.Summary{RunID: id, TotalInserted: 3, Duration: time.Second}
		if fail {
			return s, errors.New("open store: connection refused")
		}
		return s, nil
	})
	s := New(Config{Spec: "@hourly"}, job, nil)

	s.runOnce()
	st := s.Status()
	if st.Runs != 1 || st.Failures != 0 {
		t.Errorf("Runs = %d, Failures = %d, want 1, 0", st.Runs, st.Failures)
	}
	if st.LastRunID != id.String() {
		t.Errorf("LastRunID = %q, want %q", st.LastRunID, id)
	}
	if st.LastInserted != 3 {
		t.Errorf("LastInserted = %d, want 3", st.LastInserted)
	}

	fail = true
	s.runOnce()
	st = s.Status()
	if st.Runs != 2 || st.Failures != 1 {
		t.Errorf("Runs = %d, Failures = %d, want 2, 1", st.Runs, st.Failures)
	}
	if st.LastError != "open store: connection refused" {
		t.Errorf("LastError = %q", st.LastError)
	}

	fail = false
	s.runOnce()
	if st := s.Status(); st.LastError != "" {
		t.Errorf("LastError = %q after success, want empty", st.LastError)
	}
}

func TestScheduler_SkipsOverlappingRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	job := JobFunc(func(ctx context.Context) (pipeline.Summary, error) {
		calls++
		close(started)
		<-release
		return pipeline.Summary{}, nil
	})
	s := New(Config{Spec: "@hourly"}, job, nil)

	done := make(chan struct{})
	go func() {
		s.wrapped.Run()
		close(done)
	}()
	<-started

	// Second tick while the first is in flight.
	s.wrapped.Run()

	close(release)
	<-done

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if st := s.Status(); st.Skipped != 1 || st.Runs != 1 {
		t.Errorf("Skipped = %d, Runs = %d, want 1, 1", st.Skipped, st.Runs)
	}
}

func TestScheduler_RunOnStartAndStop(t *testing.T) {
	started := make(chan struct{})
	var runErr error
	job := JobFunc(func(ctx context.Context) (pipeline.Summary, error) {
		close(started)
		<-ctx.Done()
		runErr = ctx.Err()
		return pipeline.Summary{}, runErr
	})
	s := New(Config{Spec: "@hourly", RunOnStart: true}, job, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not start")
	}

	if next := s.Status().NextRun; next.IsZero() {
		t.Error("NextRun is zero")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if !errors.Is(runErr, context.Canceled) {
		t.Errorf("run ctx error = %v, want context.Canceled", runErr)
	}
	if st := s.Status(); st.Runs != 1 || st.Failures != 1 || st.Running {
		t.Errorf("Status = %+v, want one failed run, not running", st)
	}
}

func TestScheduler_InvalidSpec(t *testing.T) {
	job := JobFunc(func(ctx context.Context) (pipeline.Summary, error) {
		return pipeline.Summary{}, nil
	})
	s := New(Config{Spec: "every now and then"}, job, nil)

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Start() expected error, got nil")
	}
}
