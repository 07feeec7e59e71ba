package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"

	"pomidoro/internal/logging"
)

// Server owns the daemon's datagram socket and pumps requests through a
// Handler one at a time. Requests are processed strictly in arrival order;
// there is no per-message concurrency.
type Server struct {
	path    string
	handler Handler
	logger  *slog.Logger
	conn    *net.UnixConn

	closeOnce sync.Once
}

// NewServer binds the datagram socket at path. A stale socket file left over
// from a previous run is removed before binding.
func NewServer(path string, handler Handler, logger *slog.Logger) (*Server, error) {
	if handler == nil {
		return nil, errors.New("ipc: handler is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove stale socket %s: %w", path, err)
	}

	addr, err := net.ResolveUnixAddr("unixgram", path)
	if err != nil {
		return nil, fmt.Errorf("resolve socket address %s: %w", path, err)
	}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return nil, fmt.Errorf("bind socket %s: %w", path, err)
	}

	return &Server{
		path:    path,
		handler: handler,
		logger:  logging.NewComponentLogger(logger, "ipc"),
		conn:    conn,
	}, nil
}

// Path returns the socket path the server is bound to.
func (s *Server) Path() string {
	return s.path
}

// Serve reads datagrams until the handler reports it is done, the handler
// fails fatally, or ctx is cancelled. Each datagram is answered on the
// address it was sent from, so unbound senders never receive replies.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("listening", logging.String("socket", s.path))

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			s.closeConn()
		case <-finished:
		}
	}()

	buf := make([]byte, MaxMessageSize)
	for {
		n, addr, err := s.conn.ReadFromUnix(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("receive datagram: %w", err)
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])
		s.logger.Debug("received datagram", logging.Int("bytes", n), logging.String("from", senderName(addr)))

		reply, done, handleErr := s.handler.HandleMessage(ctx, payload)
		if reply != nil {
			s.sendReply(reply, addr)
		}
		if handleErr != nil {
			if done {
				return handleErr
			}
			logging.WarnWithContext(s.logger, "dropping unprocessable datagram", "ipc_bad_datagram",
				logging.Error(handleErr),
				logging.String(logging.FieldImpact, "request ignored, daemon keeps serving"),
				logging.String(logging.FieldErrorHint, "check that client and daemon versions match"))
			continue
		}
		if done {
			s.logger.Info("stopping on request")
			return nil
		}
	}
}

func (s *Server) sendReply(reply []byte, addr *net.UnixAddr) {
	if addr == nil || addr.Name == "" {
		logging.WarnWithContext(s.logger, "cannot reply to unbound sender", "ipc_unbound_sender",
			logging.String(logging.FieldImpact, "sender receives no response"),
			logging.String(logging.FieldErrorHint, "clients must bind a socket before sending"))
		return
	}
	if _, err := s.conn.WriteToUnix(reply, addr); err != nil {
		logging.WarnWithContext(s.logger, "failed to send reply", "ipc_reply_failed",
			logging.Error(err),
			logging.String("to", addr.Name),
			logging.String(logging.FieldImpact, "client will not hear back"),
			logging.String(logging.FieldErrorHint, "client may have exited before the reply was written"))
	}
}

func (s *Server) closeConn() {
	s.closeOnce.Do(func() {
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// Close releases the socket and removes its file. Safe to call after Serve
// has returned or while it is blocked in a read.
func (s *Server) Close() {
	s.closeConn()
	if err := os.RemoveAll(s.path); err != nil {
		logging.WarnWithContext(s.logger, "failed to remove socket file", "ipc_socket_cleanup_failed",
			logging.Error(err),
			logging.String("socket", s.path),
			logging.String(logging.FieldImpact, "stale socket file remains on disk"),
			logging.String(logging.FieldErrorHint, "remove the file manually before the next start"))
	}
}

func senderName(addr *net.UnixAddr) string {
	if addr == nil || addr.Name == "" {
		return "(unbound)"
	}
	return addr.Name
}
