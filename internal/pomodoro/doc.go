// Package pomodoro implements the session clock at the heart of pomidoro:
// a two-state (running/paused) monotonic elapsed-time accumulator combined
// with an ordered, repeating cycle of named sessions.
//
// The Engine owns a Clock and the configured session list. Elapsed time is
// reduced modulo the total cycle length with exact integer nanosecond
// arithmetic, then attributed to one session via a running prefix sum over
// the session durations. Queries never mutate state; StateAt returns a
// fresh snapshot for the supplied instant, so the same engine answers for
// any instant without ticking in the background.
//
// The package has two failure modes only: ErrNonMonotonicTime when the host
// time source hands the clock an instant older than its reference point,
// and ErrNoSessions when a state query hits an empty (or zero-length)
// session cycle. Both indicate environment or configuration defects and are
// deliberately not recovered from; see the daemon package for how they
// terminate the serve loop.
package pomodoro
