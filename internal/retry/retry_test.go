package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func TestPolicy_ImmediateSuccess(t *testing.T) {
	var calls int
	p := Policy{MaxAttempts: 3, Delay: time.Hour}

	err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPolicy_ZeroAttempts(t *testing.T) {
	var calls int
	p := Policy{MaxAttempts: 0}

	err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})

	if !errors.Is(err, ErrNoAttempts) {
		t.Errorf("Do() error = %v, want ErrNoAttempts", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestPolicy_SucceedsOnLastAttempt(t *testing.T) {
	var slept []time.Duration
	var retried []int
	p := Policy{
		MaxAttempts: 3,
		Delay:       5 * time.Second,
		OnRetry:     func(attempt int, err error) { retried = append(retried, attempt) },
		sleep: func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}

	err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
		if attempt < 3 {
			return errBoom
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(slept) != 2 {
		t.Fatalf("slept %d times, want 2", len(slept))
	}
	for i, d := range slept {
		if d != 5*time.Second {
			t.Errorf("slept[%d] = %v, want 5s", i, d)
		}
	}
	if len(retried) != 2 || retried[0] != 1 || retried[1] != 2 {
		t.Errorf("retried = %v, want [1 2]", retried)
	}
}

func TestPolicy_Exhausted(t *testing.T) {
	var calls, sleeps int
	p := Policy{
		MaxAttempts: 3,
		Delay:       time.Second,
		sleep: func(ctx context.Context, d time.Duration) error {
			sleeps++
			return nil
		},
	}

	err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return errBoom
	})

	if !errors.Is(err, ErrExhausted) {
		t.Errorf("Do() error = %v, want ErrExhausted", err)
	}
	if !errors.Is(err, errBoom) {
		t.Errorf("Do() error = %v, should wrap last error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	// No pause after the final attempt.
	if sleeps != 2 {
		t.Errorf("sleeps = %d, want 2", sleeps)
	}
}

func TestPolicy_NonRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	var calls int
	p := Policy{
		MaxAttempts: 5,
		Retryable:   func(err error) bool { return !errors.Is(err, permanent) },
		sleep:       func(ctx context.Context, d time.Duration) error { return nil },
	}

	err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		if attempt == 2 {
			return permanent
		}
		return errBoom
	})

	if !errors.Is(err, permanent) {
		t.Errorf("Do() error = %v, want permanent", err)
	}
	if errors.Is(err, ErrExhausted) {
		t.Error("non-retryable error should not be reported as exhausted")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestPolicy_CancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int
	p := Policy{MaxAttempts: 3, Delay: time.Hour}

	done := make(chan error, 1)
	go func() {
		done <- p.Do(ctx, func(ctx context.Context, attempt int) error {
			calls++
			return errBoom
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Do() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do() did not return after cancel")
	}

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPolicy_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	p := Policy{MaxAttempts: 3}

	err := p.Do(ctx, func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}
