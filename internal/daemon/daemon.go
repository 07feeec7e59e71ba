package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"pomidoro/internal/config"
	"pomidoro/internal/history"
	"pomidoro/internal/logging"
	"pomidoro/internal/pomodoro"
)

// Daemon owns one pomodoro engine and enforces single-instance execution per
// server id.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	engine   *pomodoro.Engine
	journal  *history.Store
	serverID int

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running    bool
	ServerID   int
	SocketPath string
	LockPath   string
	StartedAt  time.Time
}

// New constructs a daemon for the given server id. The journal may be nil;
// history recording is then disabled.
func New(cfg *config.Config, serverID int, journal *history.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if serverID < 0 {
		return nil, fmt.Errorf("negative server id %d", serverID)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	sessions := make([]pomodoro.Session, 0, len(cfg.Sessions))
	for _, s := range cfg.Sessions {
		sessions = append(sessions, pomodoro.Session{
			Name:       s.Name,
			Duration:   time.Duration(s.DurationSeconds) * time.Second,
			TimeFormat: s.TimeFormat,
		})
	}

	lockPath := cfg.LockPath(serverID)
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		engine:   pomodoro.NewEngine(sessions, cfg.Display.TimeFormat),
		journal:  journal,
		serverID: serverID,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and records the start event.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another pomidoro daemon instance is already running")
	}

	d.running.Store(true)
	d.startedAt = time.Now()
	d.record(ctx, history.KindStart, d.startedAt)
	d.logger.Info("daemon started",
		logging.Int("server_id", d.serverID),
		logging.String("lock", d.lockPath),
		logging.Int("sessions", len(d.cfg.Sessions)))
	return nil
}

// Stop records the stop event and releases the daemon lock.
func (d *Daemon) Stop(ctx context.Context) {
	if !d.running.Load() {
		return
	}

	d.record(ctx, history.KindStop, time.Now())
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "daemon_unlock_failed",
			logging.Error(err),
			logging.String("lock", d.lockPath),
			logging.String(logging.FieldImpact, "next start may report a phantom running instance"),
			logging.String(logging.FieldErrorHint, "remove the lock file manually if the daemon will not start"))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped", logging.Int("server_id", d.serverID))
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop(context.Background())
	if d.journal != nil {
		return d.journal.Close()
	}
	return nil
}

// Running reports whether Start has succeeded and Stop has not yet run.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:    d.running.Load(),
		ServerID:   d.serverID,
		SocketPath: d.cfg.ServerSocketPath(d.serverID),
		LockPath:   d.lockPath,
		StartedAt:  d.startedAt,
	}
}

// record appends a history event, best effort. Journal failures are logged
// and never surface to the request that triggered them.
func (d *Daemon) record(ctx context.Context, kind history.Kind, at time.Time) {
	if d.journal == nil {
		return
	}
	event := history.Event{
		ServerID: d.serverID,
		Kind:     kind,
		Paused:   d.engine.Paused(),
	}
	if state, err := d.engine.StateAt(at); err == nil {
		event.SessionName = state.SessionName
	}
	if _, err := d.journal.Append(ctx, event); err != nil {
		logging.WarnWithContext(d.logger, "failed to record history event", "history_append_failed",
			logging.Error(err),
			logging.String("kind", string(kind)),
			logging.String(logging.FieldImpact, "journal misses this event"),
			logging.String(logging.FieldErrorHint, "check history database permissions"))
	}
}
