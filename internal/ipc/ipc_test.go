package ipc_test

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pomidoro/internal/ipc"
	"pomidoro/internal/pomodoro"
	"pomidoro/internal/wire"
)

// timerHandler answers requests the way the daemon would, against a fixed
// state snapshot.
type timerHandler struct {
	state pomodoro.State
}

func (h *timerHandler) HandleMessage(_ context.Context, payload []byte) ([]byte, bool, error) {
	req, err := wire.DecodeRequest(payload)
	if err != nil {
		return nil, false, err
	}
	switch req.Kind {
	case wire.RequestFetch:
		reply, err := wire.EncodeResponse(wire.StateResponse(h.state))
		if err != nil {
			return nil, true, err
		}
		return reply, false, nil
	case wire.RequestStop:
		reply, err := wire.EncodeResponse(wire.ConfirmationResponse(nil))
		if err != nil {
			return nil, true, err
		}
		return reply, true, nil
	default:
		reply, err := wire.EncodeResponse(wire.ConfirmationResponse(nil))
		if err != nil {
			return nil, true, err
		}
		return reply, false, nil
	}
}

func startServer(t *testing.T, handler ipc.Handler) (*ipc.Server, string, <-chan error) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "server0.sock")
	srv, err := ipc.NewServer(socketPath, handler, nil)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("unix sockets unavailable in sandbox: %v", err)
		}
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(srv.Close)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)
	return srv, socketPath, serveErr
}

func waitServe(t *testing.T, serveErr <-chan error) error {
	t.Helper()
	select {
	case err := <-serveErr:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return in time")
		return nil
	}
}

func TestExchangeRoundTrip(t *testing.T) {
	handler := &timerHandler{state: pomodoro.State{
		Paused:          true,
		Time:            "25:00",
		SessionName:     "work",
		SessionDuration: "25:00",
		Percent:         0,
	}}
	srv, socketPath, serveErr := startServer(t, handler)

	client := ipc.NewClientWithTimeout(socketPath, 2*time.Second)

	state, err := client.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if state.SessionName != "work" || state.Time != "25:00" || !state.Paused {
		t.Fatalf("unexpected state: %+v", state)
	}

	if err := client.Toggle(); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := client.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if err := client.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if err := client.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := waitServe(t, serveErr); err != nil {
		t.Fatalf("Serve returned error after stop: %v", err)
	}

	srv.Close()
	if err := client.Toggle(); err == nil {
		t.Fatal("expected transport error once the daemon socket is gone")
	}
}

func TestMalformedDatagramIsSkipped(t *testing.T) {
	handler := &timerHandler{state: pomodoro.State{Paused: true, Time: "05:00", SessionName: "rest", SessionDuration: "05:00"}}
	_, socketPath, _ := startServer(t, handler)

	// Raw garbage from a hand-rolled sender must not kill the server.
	rawPath := filepath.Join(filepath.Dir(socketPath), "raw.sock")
	raw, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: rawPath, Net: "unixgram"})
	if err != nil {
		t.Fatalf("bind raw sender: %v", err)
	}
	t.Cleanup(func() {
		_ = raw.Close()
		_ = os.Remove(rawPath)
	})
	if _, err := raw.WriteToUnix([]byte{0xff, 0x00, 0x13}, &net.UnixAddr{Name: socketPath, Net: "unixgram"}); err != nil {
		t.Fatalf("send garbage: %v", err)
	}

	client := ipc.NewClientWithTimeout(socketPath, 2*time.Second)
	state, err := client.Fetch()
	if err != nil {
		t.Fatalf("Fetch after garbage: %v", err)
	}
	if state.SessionName != "rest" {
		t.Fatalf("unexpected state after garbage: %+v", state)
	}
}

func TestServeStopsOnContextCancel(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "server0.sock")
	srv, err := ipc.NewServer(socketPath, &timerHandler{}, nil)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("unix sockets unavailable in sandbox: %v", err)
		}
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ctx)
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if err := waitServe(t, serveErr); !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve = %v, want context.Canceled", err)
	}
}

func TestNewServerReplacesStaleSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "server0.sock")
	if err := os.WriteFile(socketPath, []byte("stale"), 0o644); err != nil {
		t.Fatalf("plant stale file: %v", err)
	}

	srv, err := ipc.NewServer(socketPath, &timerHandler{state: pomodoro.State{Time: "01:00"}}, nil)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("unix sockets unavailable in sandbox: %v", err)
		}
		t.Fatalf("NewServer over stale file: %v", err)
	}
	t.Cleanup(srv.Close)

	go func() { _ = srv.Serve(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	client := ipc.NewClientWithTimeout(socketPath, 2*time.Second)
	if _, err := client.Fetch(); err != nil {
		t.Fatalf("Fetch on rebound socket: %v", err)
	}
}

func TestFatalHandlerErrorStopsServeAfterReplying(t *testing.T) {
	fatal := errors.New("session cycle is empty")
	handler := ipc.HandlerFunc(func(_ context.Context, payload []byte) ([]byte, bool, error) {
		reply, err := wire.EncodeResponse(wire.ConfirmationResponse(fatal))
		if err != nil {
			return nil, true, err
		}
		return reply, true, fatal
	})
	_, socketPath, serveErr := startServer(t, handler)

	client := ipc.NewClientWithTimeout(socketPath, 2*time.Second)
	if _, err := client.Fetch(); err == nil || !strings.Contains(err.Error(), "session cycle is empty") {
		t.Fatalf("Fetch = %v, want rejection carrying the fatal cause", err)
	}

	if err := waitServe(t, serveErr); !errors.Is(err, fatal) {
		t.Fatalf("Serve = %v, want the handler's fatal error", err)
	}
}
