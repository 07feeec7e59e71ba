package testsupport

import (
	"path/filepath"
	"testing"

	"pomidoro/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SocketDir = filepath.Join(base, "sockets")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure config directories: %v", err)
	}

	return builder.cfg
}

// WithSessions replaces the default work/rest cycle on the test config.
func WithSessions(sessions ...config.Session) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sessions = sessions
	}
}

// WithTimeFormat overrides the default countdown format on the test config.
func WithTimeFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Display.TimeFormat = format
	}
}
