// Package ipc exposes the daemon over Unix datagram sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management on both ends: the server binds the
// well-known daemon socket, removes stale socket files from earlier runs, and
// answers each datagram on the address it arrived from; the client binds a
// private ephemeral socket so replies can find their way back. Payload
// encoding lives in the wire package, which keeps this one a pure transport.
//
// Reuse the Handler contract when adding new request kinds so the one
// request, one reply invariant stays intact.
package ipc
