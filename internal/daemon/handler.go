package daemon

import (
	"context"
	"fmt"
	"time"

	"pomidoro/internal/history"
	"pomidoro/internal/logging"
	"pomidoro/internal/wire"
)

// HandleMessage implements the ipc handler contract: decode one request,
// apply it to the engine, and produce the reply. Undecodable payloads come
// back as non-fatal errors so the server loop can skip them; engine failures
// are fatal but still answer the requesting client first.
func (d *Daemon) HandleMessage(ctx context.Context, payload []byte) ([]byte, bool, error) {
	req, err := wire.DecodeRequest(payload)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	d.logger.Debug("handling request", logging.String("kind", req.Kind.String()))

	switch req.Kind {
	case wire.RequestFetch:
		state, err := d.engine.StateAt(now)
		if err != nil {
			return d.fatalReply(err)
		}
		reply, encErr := wire.EncodeResponse(wire.StateResponse(state))
		if encErr != nil {
			return nil, true, fmt.Errorf("encode state response: %w", encErr)
		}
		return reply, false, nil

	case wire.RequestToggle:
		if err := d.engine.Toggle(now); err != nil {
			return d.fatalReply(err)
		}
		d.record(ctx, history.KindToggle, now)
		d.logger.Info("clock toggled", logging.Bool("paused", d.engine.Paused()))
		return d.confirmReply(false)

	case wire.RequestSkip:
		if err := d.engine.SkipSession(now); err != nil {
			return d.fatalReply(err)
		}
		d.record(ctx, history.KindSkip, now)
		d.logger.Info("session skipped")
		return d.confirmReply(false)

	case wire.RequestReset:
		d.engine.Reset()
		d.record(ctx, history.KindReset, now)
		d.logger.Info("timer reset")
		return d.confirmReply(false)

	case wire.RequestStop:
		d.logger.Info("stop requested")
		return d.confirmReply(true)

	default:
		return nil, false, fmt.Errorf("unhandled request kind %d", req.Kind)
	}
}

// fatalReply answers the in-flight request with the failure text and then
// brings the serve loop down with the original cause.
func (d *Daemon) fatalReply(cause error) ([]byte, bool, error) {
	reply, err := wire.EncodeResponse(wire.ConfirmationResponse(cause))
	if err != nil {
		return nil, true, cause
	}
	return reply, true, cause
}

func (d *Daemon) confirmReply(done bool) ([]byte, bool, error) {
	reply, err := wire.EncodeResponse(wire.ConfirmationResponse(nil))
	if err != nil {
		return nil, true, fmt.Errorf("encode confirmation: %w", err)
	}
	return reply, done, nil
}
