package preflight

import (
	"fmt"
	"time"

	"pomidoro/internal/config"
	"pomidoro/internal/ipc"
	"pomidoro/internal/wire"
)

const probeTimeout = 500 * time.Millisecond

// DaemonProbe reports whether a daemon answered on its socket and the
// timer state it returned.
type DaemonProbe struct {
	Running    bool
	SocketPath string
	State      *wire.PomodoroState
}

// ProbeDaemon sends a short-deadline fetch to the socket of the given
// daemon instance. A daemon that does not answer within the deadline is
// reported as not running.
func ProbeDaemon(cfg *config.Config, serverID int) DaemonProbe {
	if cfg == nil {
		return DaemonProbe{}
	}
	probe := DaemonProbe{SocketPath: cfg.ServerSocketPath(serverID)}

	state, err := ipc.NewClientWithTimeout(probe.SocketPath, probeTimeout).Fetch()
	if err != nil {
		return probe
	}
	probe.Running = true
	probe.State = state
	return probe
}

// Detail renders a display-friendly summary for status UIs.
func (p DaemonProbe) Detail() string {
	if !p.Running {
		return "No daemon answering"
	}
	if p.State == nil {
		return fmt.Sprintf("Answering on %s", p.SocketPath)
	}
	clock := "running"
	if p.State.Paused {
		clock = "paused"
	}
	return fmt.Sprintf("%s in session '%s' (%s left)", clock, p.State.SessionName, p.State.Time)
}
