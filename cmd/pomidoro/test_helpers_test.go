package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pomidoro/internal/config"
	"pomidoro/internal/daemon"
	"pomidoro/internal/daemonctl"
	"pomidoro/internal/history"
	"pomidoro/internal/ipc"
	"pomidoro/internal/logging"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	socketPath string
	serveErr   chan error
}

// writeCLITestConfig writes a config file pointing every path at the
// test's temp dir and returns its location.
func writeCLITestConfig(t *testing.T, base string) string {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nsocket_dir = %q\nlog_dir = %q\nhistory_db = %q\n",
		filepath.Join(base, "sockets"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "history.db"),
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// setupCLIConfig prepares a loadable config without starting a daemon.
func setupCLIConfig(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := writeCLITestConfig(t, base)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		socketPath: cfg.ServerSocketPath(0),
	}
}

// setupCLITestEnv runs a real daemon with its ipc server in-process so
// CLI commands have something to talk to.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	env := setupCLIConfig(t)

	journal, err := history.Open(env.cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}

	d, err := daemon.New(env.cfg, 0, journal, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	srv, err := ipc.NewServer(env.socketPath, d, logging.NewNop())
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("unix datagram sockets unavailable: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	env.serveErr = make(chan error, 1)
	go func() {
		err := srv.Serve(ctx)
		srv.Close()
		_ = d.Close()
		env.serveErr <- err
	}()

	if err := daemonctl.WaitForReady(ctx, env.socketPath, 2*time.Second); err != nil {
		t.Fatalf("daemon never became ready: %v", err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// countTableRows counts the data rows of a rendered rounded table,
// skipping the header and borders.
func countTableRows(output string) int {
	rows := 0
	seenSeparator := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "├"):
			seenSeparator = true
		case strings.HasPrefix(trimmed, "╰"):
			return rows
		case seenSeparator && strings.HasPrefix(trimmed, "│"):
			rows++
		}
	}
	return rows
}
