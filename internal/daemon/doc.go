// Package daemon coordinates the long-running timer process.
//
// It wires configuration, the pomodoro engine, and the history journal into
// a single lifecycle with flock-based locking to prevent multiple instances
// per server id. The daemon also implements the ipc handler contract,
// translating wire requests into engine operations one at a time.
//
// Keep orchestration logic here: timer math lives in the pomodoro package
// and transport concerns in ipc, while the daemon focuses on startup,
// shutdown, and request routing.
package daemon
