package pomodoro

import "time"

// Session is one named slot in the repeating cycle. List order defines the
// cycle order; the list itself comes from configuration and is immutable at
// runtime.
type Session struct {
	Name     string
	Duration time.Duration
	// TimeFormat overrides the engine's default format pattern for this
	// session when non-empty.
	TimeFormat string
}

// Bound is the half-open [Start, End) window a session occupies within one
// pass of the cycle.
type Bound struct {
	Start time.Duration
	End   time.Duration
}

// sessionBounds maps sessions to their cycle windows via a running prefix
// sum starting at zero. Zero-duration sessions produce zero-width windows.
func sessionBounds(sessions []Session) []Bound {
	bounds := make([]Bound, len(sessions))
	var sum time.Duration
	for i, s := range sessions {
		bounds[i] = Bound{Start: sum, End: sum + s.Duration}
		sum = bounds[i].End
	}
	return bounds
}

// CycleLength returns the summed duration of one full pass through the
// session list.
func CycleLength(sessions []Session) time.Duration {
	var sum time.Duration
	for _, s := range sessions {
		sum += s.Duration
	}
	return sum
}
