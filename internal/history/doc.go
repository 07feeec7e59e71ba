// Package history persists an append-only journal of timer events.
//
// Every state-changing daemon operation (start, toggle, skip, reset, stop)
// lands here as one row in a SQLite database, tagged with the server id and
// the timer state at the time of the event. The journal is strictly best
// effort for the daemon: appends that fail are logged and never block or
// fail the request that triggered them.
//
// The CLI reads the journal for the history command; the daemon only ever
// appends.
package history
