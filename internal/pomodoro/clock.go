package pomodoro

import (
	"errors"
	"time"
)

// ErrNonMonotonicTime reports that a queried instant precedes the clock's
// reference timestamp. It can only be produced by a misbehaving host time
// source, never by a state-machine transition.
var ErrNonMonotonicTime = errors.New("pomodoro: instant precedes the clock's reference time")

// Clock accumulates elapsed wall time across pause/resume cycles. The zero
// value is a paused clock with zero elapsed time, which is also the state a
// server starts in. Instants must carry Go's monotonic clock reading
// (time.Now does); differences are then immune to wall-clock steps.
//
// Clock is a value type: transitions return the successor clock and leave
// the receiver untouched.
type Clock struct {
	running   bool
	resumedAt time.Time
	// accrued is the elapsed time collected before resumedAt while running,
	// or the frozen total while paused.
	accrued time.Duration
}

// DurationUntil returns the total elapsed time at the given instant. While
// paused the instant is irrelevant; while running the instant must not
// precede the moment the clock resumed.
func (c Clock) DurationUntil(at time.Time) (time.Duration, error) {
	if !c.running {
		return c.accrued, nil
	}
	since := at.Sub(c.resumedAt)
	if since < 0 {
		return 0, ErrNonMonotonicTime
	}
	return c.accrued + since, nil
}

// Toggle pauses a running clock or resumes a paused one at the given
// instant. Pausing folds the current run into the accumulated total;
// resuming records the instant as the new reference point.
func (c Clock) Toggle(now time.Time) (Clock, error) {
	if c.running {
		since := now.Sub(c.resumedAt)
		if since < 0 {
			return Clock{}, ErrNonMonotonicTime
		}
		return Clock{accrued: c.accrued + since}, nil
	}
	return Clock{running: true, resumedAt: now, accrued: c.accrued}, nil
}

// SkipBy adds d to the accumulated elapsed time without consulting the
// current instant. The running/paused state is preserved, so a running
// clock keeps counting from the same reference point.
func (c Clock) SkipBy(d time.Duration) Clock {
	c.accrued += d
	return c
}

// Running reports whether the clock is currently accumulating time.
func (c Clock) Running() bool {
	return c.running
}
