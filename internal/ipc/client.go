package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pomidoro/internal/wire"
)

// Client performs one-shot request/response exchanges against a daemon
// socket. Each exchange binds a fresh ephemeral socket next to the server's
// so the reply has an address to land on, and tears it down afterwards.
//
// A zero timeout means exchanges block until the daemon answers, matching
// the contract that every request receives exactly one reply.
type Client struct {
	serverPath string
	timeout    time.Duration
}

// NewClient returns a client for the daemon socket at serverPath.
func NewClient(serverPath string) *Client {
	return &Client{serverPath: serverPath}
}

// NewClientWithTimeout returns a client whose exchanges fail once d has
// elapsed without a reply. Used by probing callers that must not hang when
// the daemon is absent or wedged.
func NewClientWithTimeout(serverPath string, d time.Duration) *Client {
	return &Client{serverPath: serverPath, timeout: d}
}

// ServerPath returns the daemon socket path this client talks to.
func (c *Client) ServerPath() string {
	return c.serverPath
}

// Fetch returns the daemon's current timer state.
func (c *Client) Fetch() (*wire.PomodoroState, error) {
	resp, err := c.exchange(&wire.Request{Kind: wire.RequestFetch})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Kind != wire.ResponseState || resp.State == nil {
		return nil, fmt.Errorf("unexpected response kind %d to fetch", resp.Kind)
	}
	return resp.State, nil
}

// Toggle flips the daemon's clock between running and paused.
func (c *Client) Toggle() error {
	return c.confirm(wire.RequestToggle)
}

// Skip advances the daemon to the start of the next session.
func (c *Client) Skip() error {
	return c.confirm(wire.RequestSkip)
}

// Reset rewinds the daemon to a paused clock at the top of the cycle.
func (c *Client) Reset() error {
	return c.confirm(wire.RequestReset)
}

// Stop asks the daemon to shut down. The daemon confirms before exiting, so
// a nil error means the shutdown is underway.
func (c *Client) Stop() error {
	return c.confirm(wire.RequestStop)
}

func (c *Client) confirm(kind wire.RequestKind) error {
	resp, err := c.exchange(&wire.Request{Kind: kind})
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if resp.Kind != wire.ResponseConfirmation {
		return fmt.Errorf("unexpected response kind %d to %s", resp.Kind, kind)
	}
	return nil
}

func (c *Client) exchange(req *wire.Request) (*wire.Response, error) {
	payload, err := wire.EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	clientPath := filepath.Join(filepath.Dir(c.serverPath), "client-"+uuid.NewString()+".sock")
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: clientPath, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("bind client socket: %w", err)
	}
	defer func() {
		_ = conn.Close()
		_ = os.Remove(clientPath)
	}()

	if c.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, fmt.Errorf("set exchange deadline: %w", err)
		}
	}

	serverAddr := &net.UnixAddr{Name: c.serverPath, Net: "unixgram"}
	if _, err := conn.WriteToUnix(payload, serverAddr); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	buf := make([]byte, MaxMessageSize)
	n, _, err := conn.ReadFromUnix(buf)
	if err != nil {
		return nil, fmt.Errorf("receive reply: %w", err)
	}
	return wire.DecodeResponse(buf[:n])
}
