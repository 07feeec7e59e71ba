package ipc

import "context"

// MaxMessageSize is the largest datagram either side sends or receives.
// Requests and responses are single-digit structs well under this, but the
// receive buffer has to cover the theoretical maximum for one datagram.
const MaxMessageSize = 64 * 1024

// Handler processes one raw request payload and produces the reply for it.
//
// The returned reply, when non-nil, is sent back to the originating socket
// before anything else happens. done tells the server to leave its receive
// loop after replying. A non-nil err with done=false marks a malformed or
// undecodable message: the server logs it and keeps serving. A non-nil err
// with done=true is fatal and becomes the return value of Serve.
type Handler interface {
	HandleMessage(ctx context.Context, payload []byte) (reply []byte, done bool, err error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, payload []byte) ([]byte, bool, error)

// HandleMessage implements Handler.
func (f HandlerFunc) HandleMessage(ctx context.Context, payload []byte) ([]byte, bool, error) {
	return f(ctx, payload)
}
