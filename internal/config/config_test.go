package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pomidoro/internal/config"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "pomidoro", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Display.PausedText != "paused" || cfg.Display.RunningText != "running" {
		t.Fatalf("unexpected display texts: %+v", cfg.Display)
	}
	if cfg.Display.TimeFormat != "%M:%S" {
		t.Fatalf("unexpected default time format: %q", cfg.Display.TimeFormat)
	}
	if cfg.Paths.SocketDir != filepath.Join(os.TempDir(), "pomidoro") {
		t.Fatalf("unexpected socket dir: %q", cfg.Paths.SocketDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "pomidoro", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.HistoryDB != filepath.Join(tempHome, ".local", "share", "pomidoro", "history.db") {
		t.Fatalf("unexpected history db: %q", cfg.Paths.HistoryDB)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if len(cfg.Sessions) != 2 {
		t.Fatalf("expected two default sessions, got %d", len(cfg.Sessions))
	}
	if cfg.Sessions[0].Name != "work" || cfg.Sessions[0].DurationSeconds != 25*60 {
		t.Fatalf("unexpected first session: %+v", cfg.Sessions[0])
	}
	if cfg.Sessions[1].Name != "rest" || cfg.Sessions[1].DurationSeconds != 5*60 {
		t.Fatalf("unexpected second session: %+v", cfg.Sessions[1])
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.SocketDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.HistoryDB)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("POMIDORO_TEST_DIR", tempDir)
	configPath := filepath.Join(tempDir, "pomidoro.toml")

	content := `
[display]
running_text = "ticking"

[paths]
socket_dir = "$POMIDORO_TEST_DIR/sockets"

[logging]
level = "debug"

[[sessions]]
name = "focus"
duration_seconds = 1200

[[sessions]]
name = "break"
duration_seconds = 180
time_format = "%S"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}

	if cfg.Display.RunningText != "ticking" {
		t.Fatalf("expected running text override, got %q", cfg.Display.RunningText)
	}
	if cfg.Display.PausedText != "paused" {
		t.Fatalf("expected paused text default to survive, got %q", cfg.Display.PausedText)
	}
	if cfg.Paths.SocketDir != filepath.Join(tempDir, "sockets") {
		t.Fatalf("expected env var expansion in socket dir, got %q", cfg.Paths.SocketDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected log level override, got %q", cfg.Logging.Level)
	}

	if len(cfg.Sessions) != 2 {
		t.Fatalf("expected custom sessions to replace defaults, got %+v", cfg.Sessions)
	}
	if cfg.Sessions[0].Name != "focus" || cfg.Sessions[0].DurationSeconds != 1200 {
		t.Fatalf("unexpected first session: %+v", cfg.Sessions[0])
	}
	if cfg.Sessions[1].TimeFormat != "%S" {
		t.Fatalf("expected per-session format override, got %+v", cfg.Sessions[1])
	}
}

func TestLoadResolvesXDGConfigHome(t *testing.T) {
	xdgDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdgDir)

	configPath := filepath.Join(xdgDir, "pomidoro", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	content := "[[sessions]]\nname = \"solo\"\nduration_seconds = 60\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected XDG config at %q to be used, got %q exists=%v", configPath, resolved, exists)
	}
	if len(cfg.Sessions) != 1 || cfg.Sessions[0].Name != "solo" {
		t.Fatalf("unexpected sessions: %+v", cfg.Sessions)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty session list",
			content: "sessions = []\n",
			wantErr: "at least one",
		},
		{
			name:    "nameless session",
			content: "[[sessions]]\nname = \"  \"\nduration_seconds = 60\n",
			wantErr: "name must be set",
		},
		{
			name:    "zero duration",
			content: "[[sessions]]\nname = \"work\"\nduration_seconds = 0\n",
			wantErr: "duration_seconds must be positive",
		},
		{
			name:    "static session format",
			content: "[[sessions]]\nname = \"work\"\nduration_seconds = 60\ntime_format = \"soon\"\n",
			wantErr: "time_format",
		},
		{
			name:    "static display format",
			content: "[display]\ntime_format = \"oops\"\n",
			wantErr: "display.time_format",
		},
		{
			name:    "unknown log level",
			content: "[logging]\nlevel = \"verbose\"\n",
			wantErr: "logging.level",
		},
		{
			name:    "unknown log format",
			content: "[logging]\nformat = \"yaml\"\n",
			wantErr: "logging.format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(configPath)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestServerPathHelpers(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.SocketDir = "/tmp/pomidoro-test"

	if got := cfg.ServerSocketPath(0); got != "/tmp/pomidoro-test/server0.sock" {
		t.Fatalf("ServerSocketPath(0) = %q", got)
	}
	if got := cfg.ServerSocketPath(3); got != "/tmp/pomidoro-test/server3.sock" {
		t.Fatalf("ServerSocketPath(3) = %q", got)
	}
	if got := cfg.LockPath(0); got != "/tmp/pomidoro-test/server0.lock" {
		t.Fatalf("LockPath(0) = %q", got)
	}
	if got := cfg.PIDPath(7); got != "/tmp/pomidoro-test/server7.pid" {
		t.Fatalf("PIDPath(7) = %q", got)
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	samplePath := filepath.Join(tempHome, ".config", "pomidoro", "config.toml")
	if err := config.CreateSample(samplePath); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(samplePath)
	if err != nil {
		t.Fatalf("Load of sample config failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}

	defaults := config.Default()
	if cfg.Display != defaults.Display {
		t.Fatalf("sample display differs from defaults: %+v vs %+v", cfg.Display, defaults.Display)
	}
	if cfg.Logging != defaults.Logging {
		t.Fatalf("sample logging differs from defaults: %+v vs %+v", cfg.Logging, defaults.Logging)
	}
	if len(cfg.Sessions) != 2 || cfg.Sessions[0].DurationSeconds != 1500 || cfg.Sessions[1].DurationSeconds != 300 {
		t.Fatalf("sample sessions differ from defaults: %+v", cfg.Sessions)
	}
}
