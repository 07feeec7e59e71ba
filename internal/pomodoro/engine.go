package pomodoro

import (
	"errors"
	"time"
)

// ErrNoSessions reports a state query against an engine whose session cycle
// is empty or sums to zero length. It indicates the engine was built from
// invalid configuration and is distinct from ErrNonMonotonicTime.
var ErrNoSessions = errors.New("pomodoro: session cycle is empty")

// State is a rendered snapshot of the engine at one instant. It is computed
// fresh on every query and never mutated afterward.
type State struct {
	Paused bool
	// Time is the formatted time remaining in the current session.
	Time        string
	SessionName string
	// SessionDuration is the formatted total length of the current session.
	SessionDuration string
	// Percent is how far into the current session the clock is, truncated
	// to an integer between 0 and 100.
	Percent int
}

// Engine combines a Clock with the configured session cycle. It is not safe
// for concurrent use; the server loop owns one engine exclusively and
// processes one request at a time.
type Engine struct {
	clock         Clock
	sessions      []Session
	defaultFormat string
}

// NewEngine returns a paused engine with zero elapsed time positioned at
// the first session. Sessions are copied; defaultTimeFormat applies to any
// session without its own format override.
func NewEngine(sessions []Session, defaultTimeFormat string) *Engine {
	owned := make([]Session, len(sessions))
	copy(owned, sessions)
	return &Engine{sessions: owned, defaultFormat: defaultTimeFormat}
}

// Paused reports whether the engine's clock is paused.
func (e *Engine) Paused() bool {
	return !e.clock.Running()
}

// elapsedUntil reduces the clock's total elapsed time modulo the cycle
// length. The remainder is taken on whole nanoseconds; floating point here
// would drift over long server uptimes.
func (e *Engine) elapsedUntil(at time.Time) (time.Duration, error) {
	cycle := CycleLength(e.sessions)
	if cycle <= 0 {
		return 0, ErrNoSessions
	}
	total, err := e.clock.DurationUntil(at)
	if err != nil {
		return 0, err
	}
	return total % cycle, nil
}

// currentSlot returns the session owning elapsed together with its cycle
// window. When elapsed sits exactly on a boundary the session that just
// ended keeps ownership: a finished session is briefly reported with zero
// time left instead of switching the moment the boundary is reached.
func (e *Engine) currentSlot(elapsed time.Duration) (Session, Bound, bool) {
	var (
		session Session
		bound   Bound
		found   bool
	)
	for i, b := range sessionBounds(e.sessions) {
		if elapsed >= b.End || (elapsed >= b.Start && elapsed < b.End) {
			session, bound, found = e.sessions[i], b, true
			continue
		}
		break
	}
	return session, bound, found
}

// StateAt computes the snapshot for the given instant. It fails with
// ErrNonMonotonicTime when the instant predates the clock's reference point
// and with ErrNoSessions when the cycle is empty.
func (e *Engine) StateAt(at time.Time) (State, error) {
	elapsed, err := e.elapsedUntil(at)
	if err != nil {
		return State{}, err
	}
	session, bound, ok := e.currentSlot(elapsed)
	if !ok {
		return State{}, ErrNoSessions
	}

	timeLeft := bound.End - elapsed
	if timeLeft < 0 {
		timeLeft = 0
	}

	// Float math is confined to the final ratio; a zero-duration session
	// reports 0% instead of dividing by zero.
	percent := 0
	if session.Duration > 0 {
		done := float64(session.Duration-timeLeft) / float64(session.Duration)
		percent = int(done * 100)
	}

	format := session.TimeFormat
	if format == "" {
		format = e.defaultFormat
	}

	return State{
		Paused:          e.Paused(),
		Time:            FormatDuration(timeLeft, format),
		SessionName:     session.Name,
		SessionDuration: FormatDuration(session.Duration, format),
		Percent:         percent,
	}, nil
}

// Toggle pauses or resumes the clock at the given instant.
func (e *Engine) Toggle(now time.Time) error {
	next, err := e.clock.Toggle(now)
	if err != nil {
		return err
	}
	e.clock = next
	return nil
}

// SkipSession advances the clock to the exact start of the next session,
// however far into the current session the clock is.
func (e *Engine) SkipSession(now time.Time) error {
	elapsed, err := e.elapsedUntil(now)
	if err != nil {
		return err
	}
	_, bound, ok := e.currentSlot(elapsed)
	if !ok {
		return ErrNoSessions
	}
	e.clock = e.clock.SkipBy(bound.End - elapsed)
	return nil
}

// Reset returns the clock to paused with zero elapsed time, which selects
// the first session. It never fails.
func (e *Engine) Reset() {
	e.clock = Clock{}
}
