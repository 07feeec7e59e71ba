package pomodoro

import (
	"errors"
	"testing"
	"time"
)

func TestClockZeroValueIsPausedAtZero(t *testing.T) {
	var c Clock
	if c.Running() {
		t.Fatal("zero value clock should be paused")
	}
	got, err := c.DurationUntil(time.Now().Add(42 * time.Hour))
	if err != nil {
		t.Fatalf("DurationUntil: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected zero elapsed, got %v", got)
	}
}

func TestClockElapsedGrowsMonotonically(t *testing.T) {
	start := time.Now()
	running, err := Clock{}.Toggle(start)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	var prev time.Duration
	for _, offset := range []time.Duration{0, time.Millisecond, time.Second, 90 * time.Second, 48 * time.Hour} {
		got, err := running.DurationUntil(start.Add(offset))
		if err != nil {
			t.Fatalf("DurationUntil(+%v): %v", offset, err)
		}
		if got != offset {
			t.Fatalf("DurationUntil(+%v) = %v", offset, got)
		}
		if got < prev {
			t.Fatalf("elapsed went backwards: %v after %v", got, prev)
		}
		prev = got
	}
}

func TestClockRejectsInstantBeforeReference(t *testing.T) {
	start := time.Now()
	running, err := Clock{}.Toggle(start.Add(time.Minute))
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if _, err := running.DurationUntil(start); !errors.Is(err, ErrNonMonotonicTime) {
		t.Fatalf("DurationUntil before reference: got %v", err)
	}
	if _, err := running.Toggle(start); !errors.Is(err, ErrNonMonotonicTime) {
		t.Fatalf("Toggle before reference: got %v", err)
	}
}

func TestClockPausedIgnoresInstant(t *testing.T) {
	start := time.Now()
	c := Clock{}.SkipBy(90 * time.Second)

	// A paused clock answers for any instant, even one in the past.
	got, err := c.DurationUntil(start.Add(-time.Hour))
	if err != nil {
		t.Fatalf("DurationUntil: %v", err)
	}
	if got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}

func TestClockTogglePreservesAccumulatedElapsed(t *testing.T) {
	start := time.Now()

	running, err := Clock{}.Toggle(start)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	paused, err := running.Toggle(start.Add(30 * time.Second))
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	got, err := paused.DurationUntil(start.Add(5 * time.Hour))
	if err != nil {
		t.Fatalf("DurationUntil: %v", err)
	}
	if got != 30*time.Second {
		t.Fatalf("pause lost time: got %v", got)
	}

	// Resuming later must not count the paused gap.
	resumed, err := paused.Toggle(start.Add(10 * time.Minute))
	if err != nil {
		t.Fatalf("second resume: %v", err)
	}
	got, err = resumed.DurationUntil(start.Add(10*time.Minute + 12*time.Second))
	if err != nil {
		t.Fatalf("DurationUntil after resume: %v", err)
	}
	if got != 42*time.Second {
		t.Fatalf("expected 42s, got %v", got)
	}
}

func TestClockToggleAtSameInstantIsIdentity(t *testing.T) {
	now := time.Now()
	c := Clock{}.SkipBy(17 * time.Second)

	running, err := c.Toggle(now)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	back, err := running.Toggle(now)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	got, err := back.DurationUntil(now)
	if err != nil {
		t.Fatalf("DurationUntil: %v", err)
	}
	if got != 17*time.Second {
		t.Fatalf("toggle pair changed elapsed: %v", got)
	}
}

func TestClockSkipByPreservesVariant(t *testing.T) {
	start := time.Now()

	paused := Clock{}.SkipBy(time.Minute)
	if paused.Running() {
		t.Fatal("skip should keep a paused clock paused")
	}

	running, err := Clock{}.Toggle(start)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	running = running.SkipBy(time.Minute)
	if !running.Running() {
		t.Fatal("skip should keep a running clock running")
	}
	got, err := running.DurationUntil(start.Add(30 * time.Second))
	if err != nil {
		t.Fatalf("DurationUntil: %v", err)
	}
	if got != 90*time.Second {
		t.Fatalf("expected 90s (60 skipped + 30 running), got %v", got)
	}
}
