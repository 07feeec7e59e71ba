package config

import (
	"os"
	"path/filepath"
)

const (
	defaultPausedText      = "paused"
	defaultRunningText     = "running"
	defaultTimeFormat      = "%M:%S"
	defaultLogDir          = "~/.local/share/pomidoro/logs"
	defaultHistoryDB       = "~/.local/share/pomidoro/history.db"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultWorkSessionName = "work"
	defaultRestSessionName = "rest"
	defaultWorkSeconds     = 25 * 60
	defaultRestSeconds     = 5 * 60
)

func defaultSocketDir() string {
	return filepath.Join(os.TempDir(), "pomidoro")
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Display: Display{
			PausedText:  defaultPausedText,
			RunningText: defaultRunningText,
			TimeFormat:  defaultTimeFormat,
		},
		Paths: Paths{
			SocketDir: defaultSocketDir(),
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Sessions: []Session{
			{Name: defaultWorkSessionName, DurationSeconds: defaultWorkSeconds},
			{Name: defaultRestSessionName, DurationSeconds: defaultRestSeconds},
		},
	}
}
