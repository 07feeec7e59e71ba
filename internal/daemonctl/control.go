// Package daemonctl starts and stops the background daemon on behalf of
// the CLI. It probes the daemon socket, launches the daemon executable
// detached when needed, and escalates to the PID file when the daemon
// stopped answering but the process lingers.
package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"pomidoro/internal/config"
	"pomidoro/internal/ipc"
)

// ErrDaemonNotRunning reports that no daemon answers on the socket and no
// live process is recorded in the PID file.
var ErrDaemonNotRunning = errors.New("daemon not running")

const (
	probeTimeout = 500 * time.Millisecond
	pollInterval = 200 * time.Millisecond

	// DefaultStartTimeout bounds how long EnsureStarted waits for a
	// freshly launched daemon to answer its first probe.
	DefaultStartTimeout = 10 * time.Second

	// DefaultStopTimeout bounds how long StopAndTerminate waits for the
	// daemon socket to disappear after a stop request was acknowledged.
	DefaultStopTimeout = 10 * time.Second
)

// StartState describes the outcome of EnsureStarted.
type StartState string

const (
	StartStateStarted        StartState = "started"
	StartStateAlreadyRunning StartState = "already_running"
)

// StartResult reports how EnsureStarted left the daemon.
type StartResult struct {
	State      StartState
	SocketPath string
}

// StopResult reports how StopAndTerminate brought the daemon down.
type StopResult struct {
	// Acknowledged is true when the daemon confirmed the stop request
	// over the socket before shutting down.
	Acknowledged bool
	// Killed is set when the process had to be terminated through the
	// PID file because the socket no longer answered.
	Killed bool
	// PID is the process id that was signalled, zero when no signal
	// was sent.
	PID int
}

// RestartResult combines the stop and start halves of a restart.
type RestartResult struct {
	Stop  StopResult
	Start StartResult
}

// LaunchOptions carries the flags passed to the daemon executable.
type LaunchOptions struct {
	// ConfigPath is forwarded as --config when set.
	ConfigPath string
	// ServerID selects the daemon instance, forwarded as --id.
	ServerID int
}

// Launch starts the daemon executable detached from the caller. The
// process is released so it survives the CLI exiting.
func Launch(executablePath string, opts LaunchOptions) error {
	if strings.TrimSpace(executablePath) == "" {
		return fmt.Errorf("daemon executable path is empty")
	}

	args := []string{"--id", strconv.Itoa(opts.ServerID)}
	if opts.ConfigPath != "" {
		args = append(args, "--config", opts.ConfigPath)
	}

	proc := exec.Command(executablePath, args...)
	proc.Stdin = nil
	proc.Stdout = nil
	proc.Stderr = nil
	if err := proc.Start(); err != nil {
		return fmt.Errorf("start daemon process: %w", err)
	}
	if err := proc.Process.Release(); err != nil {
		return fmt.Errorf("release daemon process: %w", err)
	}
	return nil
}

// Probe sends a short-deadline fetch to the daemon socket and reports
// whether a daemon answered.
func Probe(socketPath string) error {
	client := ipc.NewClientWithTimeout(socketPath, probeTimeout)
	if _, err := client.Fetch(); err != nil {
		return err
	}
	return nil
}

// WaitForReady polls the daemon socket until it answers a probe or the
// context expires.
func WaitForReady(ctx context.Context, socketPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := Probe(socketPath); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("daemon did not answer on %s within %s", socketPath, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// WaitForShutdown polls until the daemon socket is gone or stops
// answering, or the context expires.
func WaitForShutdown(ctx context.Context, socketPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(socketPath); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		// The socket file can outlive a crashed daemon. A refused
		// probe means nothing is bound to it anymore.
		if err := Probe(socketPath); IsDaemonUnavailable(err) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("daemon still answering on %s after %s", socketPath, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// EnsureStarted makes sure a daemon is answering on the configured
// socket, launching the executable when the first probe fails.
func EnsureStarted(ctx context.Context, cfg *config.Config, executablePath string, opts LaunchOptions, timeout time.Duration) (StartResult, error) {
	if cfg == nil {
		return StartResult{}, fmt.Errorf("config is required")
	}
	if timeout <= 0 {
		timeout = DefaultStartTimeout
	}

	socketPath := cfg.ServerSocketPath(opts.ServerID)
	result := StartResult{SocketPath: socketPath}

	if err := Probe(socketPath); err == nil {
		result.State = StartStateAlreadyRunning
		return result, nil
	} else if !IsDaemonUnavailable(err) {
		return result, fmt.Errorf("probe daemon on %s: %w", socketPath, err)
	}

	if err := Launch(executablePath, opts); err != nil {
		return result, err
	}
	if err := WaitForReady(ctx, socketPath, timeout); err != nil {
		return result, err
	}
	result.State = StartStateStarted
	return result, nil
}

// StopAndTerminate asks the daemon to stop over the socket and falls
// back to signalling the recorded PID when the socket no longer
// answers. It returns ErrDaemonNotRunning when neither path finds a
// live daemon.
func StopAndTerminate(ctx context.Context, cfg *config.Config, serverID int, timeout time.Duration) (StopResult, error) {
	if cfg == nil {
		return StopResult{}, fmt.Errorf("config is required")
	}
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}

	socketPath := cfg.ServerSocketPath(serverID)
	pidPath := cfg.PIDPath(serverID)

	client := ipc.NewClientWithTimeout(socketPath, probeTimeout)
	err := client.Stop()
	if err == nil {
		if waitErr := WaitForShutdown(ctx, socketPath, timeout); waitErr != nil {
			return StopResult{Acknowledged: true}, waitErr
		}
		return StopResult{Acknowledged: true}, nil
	}
	if !IsDaemonUnavailable(err) {
		return StopResult{}, fmt.Errorf("stop daemon on %s: %w", socketPath, err)
	}

	// Socket is dead. If the PID file still names a live process the
	// daemon crashed its listener but kept running, so terminate it.
	pid, pidErr := readPID(pidPath)
	if pidErr != nil {
		if errors.Is(pidErr, os.ErrNotExist) {
			return StopResult{}, ErrDaemonNotRunning
		}
		return StopResult{}, pidErr
	}
	if !processAlive(pid) {
		removeStaleFiles(cfg, serverID)
		return StopResult{}, ErrDaemonNotRunning
	}

	result, killErr := TerminateProcess(cfg, serverID)
	if killErr != nil {
		return result, killErr
	}
	return result, nil
}

// Restart stops any running daemon and starts a fresh one. A daemon
// that was not running is not an error.
func Restart(ctx context.Context, cfg *config.Config, executablePath string, opts LaunchOptions, stopTimeout, startTimeout time.Duration) (RestartResult, error) {
	var result RestartResult

	stop, err := StopAndTerminate(ctx, cfg, opts.ServerID, stopTimeout)
	if err != nil && !errors.Is(err, ErrDaemonNotRunning) {
		return result, err
	}
	result.Stop = stop

	start, err := EnsureStarted(ctx, cfg, executablePath, opts, startTimeout)
	if err != nil {
		return result, err
	}
	result.Start = start
	return result, nil
}

// TerminateProcess signals the process recorded in the PID file and
// removes the stale socket, PID, and lock files. It refuses to signal
// the calling process.
func TerminateProcess(cfg *config.Config, serverID int) (StopResult, error) {
	pidPath := cfg.PIDPath(serverID)

	pid, err := readPID(pidPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StopResult{}, ErrDaemonNotRunning
		}
		return StopResult{}, err
	}
	if pid == os.Getpid() {
		return StopResult{}, fmt.Errorf("pid file %s names the current process", pidPath)
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return StopResult{}, fmt.Errorf("find daemon process %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return StopResult{PID: pid}, fmt.Errorf("terminate daemon process %d: %w", pid, err)
	}

	removeStaleFiles(cfg, serverID)
	return StopResult{Killed: true, PID: pid}, nil
}

// IsDaemonUnavailable reports whether err looks like "nothing is
// listening on the daemon socket": the socket file is missing or no
// process is bound to it.
func IsDaemonUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return os.IsNotExist(err) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOENT) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

// GuideUnavailable rewraps socket errors that mean "no daemon" into a
// hint pointing at the start command. Other errors pass through.
func GuideUnavailable(err error) error {
	if IsDaemonUnavailable(err) {
		return fmt.Errorf("daemon not running; start it with `pomidoro start`")
	}
	return err
}

func readPID(pidPath string) (int, error) {
	data, err := os.ReadFile(pidPath)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pid file %s: %w", pidPath, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("pid file %s holds invalid pid %d", pidPath, pid)
	}
	return pid, nil
}

// processAlive checks liveness with signal 0, which performs the
// permission and existence checks without delivering anything.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func removeStaleFiles(cfg *config.Config, serverID int) {
	_ = os.Remove(cfg.ServerSocketPath(serverID))
	_ = os.Remove(cfg.PIDPath(serverID))
	_ = os.Remove(cfg.LockPath(serverID))
}
