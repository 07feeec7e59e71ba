// Package config loads, validates, and normalizes daemon configuration.
//
// Configuration lives in a TOML file resolved from an explicit path or the
// XDG config directory. Loading always starts from repository defaults, so a
// missing file yields a fully usable config. Every path field comes back
// expanded and absolute, and the session list is guaranteed non-empty with
// positive durations.
//
// The package also owns the derived filesystem layout: per-server socket,
// lock, and pid file paths all come from helpers here so the daemon and CLI
// can never disagree about where to meet.
package config
