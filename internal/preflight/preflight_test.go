package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pomidoro/internal/config"
	"pomidoro/internal/ipc"
	"pomidoro/internal/pomodoro"
	"pomidoro/internal/wire"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckConfigFile_Readable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[display]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckConfigFile("test", path)
	if !result.Passed {
		t.Fatalf("expected pass for readable file, got: %s", result.Detail)
	}
}

func TestCheckConfigFile_MissingPasses(t *testing.T) {
	result := CheckConfigFile("test", filepath.Join(t.TempDir(), "absent.toml"))
	if !result.Passed {
		t.Fatalf("missing config must pass (defaults apply), got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "defaults apply") {
		t.Fatalf("detail %q does not mention defaults", result.Detail)
	}
}

func TestCheckConfigFile_DirectoryFails(t *testing.T) {
	result := CheckConfigFile("test", t.TempDir())
	if result.Passed {
		t.Fatal("expected failure for a directory path")
	}
}

func TestCheckSocketPath_OK(t *testing.T) {
	result := CheckSocketPath("test", "/tmp/pomidoro/server0.sock")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckSocketPath_TooLong(t *testing.T) {
	result := CheckSocketPath("test", "/"+strings.Repeat("a", 200)+"/server0.sock")
	if result.Passed {
		t.Fatal("expected failure for oversized path")
	}
}

func TestCheckSocketPath_ClientSocketsWouldNotFit(t *testing.T) {
	// The server path itself fits, but client reply sockets in the same
	// directory would not.
	path := "/run/" + strings.Repeat("x", 65) + "/server0.sock"
	if len(path) > maxSunPath {
		t.Fatalf("test path is %d bytes, must itself fit", len(path))
	}
	result := CheckSocketPath("test", path)
	if result.Passed {
		t.Fatal("expected failure when client sockets cannot fit")
	}
	if !strings.Contains(result.Detail, "client sockets") {
		t.Fatalf("detail %q does not mention client sockets", result.Detail)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil, "", 0); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReadyConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.SocketDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.HistoryDB = filepath.Join(t.TempDir(), "history.db")

	results := RunAll(&cfg, "", 0)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if !AllPassed(results) {
		t.Fatal("AllPassed = false for passing results")
	}
}

func TestRunAll_MissingDirectoryFails(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.SocketDir = filepath.Join(t.TempDir(), "absent")
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.HistoryDB = filepath.Join(t.TempDir(), "history.db")

	if AllPassed(RunAll(&cfg, "", 0)) {
		t.Fatal("expected a failing check for the missing socket directory")
	}
}

func TestProbeDaemon_NotRunning(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.SocketDir = t.TempDir()

	probe := ProbeDaemon(&cfg, 0)
	if probe.Running {
		t.Fatal("expected no daemon on a fresh socket dir")
	}
	if probe.Detail() != "No daemon answering" {
		t.Fatalf("detail = %q", probe.Detail())
	}
}

func TestProbeDaemon_Running(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.SocketDir = t.TempDir()

	handler := ipc.HandlerFunc(func(ctx context.Context, payload []byte) ([]byte, bool, error) {
		reply, err := wire.EncodeResponse(wire.StateResponse(pomodoro.State{
			Paused:          true,
			Time:            "25:00",
			SessionName:     "work",
			SessionDuration: "25:00",
		}))
		return reply, false, err
	})

	srv, err := ipc.NewServer(cfg.ServerSocketPath(0), handler, nil)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("unix datagram sockets unavailable: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = srv.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)

	probe := ProbeDaemon(&cfg, 0)
	if !probe.Running {
		t.Fatal("expected a running daemon")
	}
	if probe.State == nil || probe.State.SessionName != "work" {
		t.Fatalf("state = %+v", probe.State)
	}
	if detail := probe.Detail(); !strings.Contains(detail, "paused in session 'work'") {
		t.Fatalf("detail = %q", detail)
	}
}
