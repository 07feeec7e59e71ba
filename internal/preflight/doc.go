// Package preflight provides readiness checks for the filesystem paths
// and socket addresses the daemon depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll at startup and refuses to serve when a
//     check fails, so a bad path surfaces immediately instead of as a
//     confusing bind error.
//   - The CLI "pomidoro status" command runs RunAll and ProbeDaemon to
//     display instance health.
package preflight
