// Package main hosts the pomidoro CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// datagram exchanges against the daemon, daemon lifecycle management,
// history queries, and configuration scaffolding. It centralizes config
// resolution and instance selection so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
