package wire

import (
	"fmt"

	"pomidoro/internal/pomodoro"
)

// RequestKind identifies the operation a client is asking for.
type RequestKind uint8

const (
	RequestFetch  RequestKind = 1
	RequestToggle RequestKind = 2
	RequestSkip   RequestKind = 3
	RequestReset  RequestKind = 4
	RequestStop   RequestKind = 5
)

// IsValid reports whether the kind is one the protocol defines.
func (k RequestKind) IsValid() bool {
	return k >= RequestFetch && k <= RequestStop
}

func (k RequestKind) String() string {
	switch k {
	case RequestFetch:
		return "fetch"
	case RequestToggle:
		return "toggle"
	case RequestSkip:
		return "skip"
	case RequestReset:
		return "reset"
	case RequestStop:
		return "stop"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Request is one client message. Every request yields exactly one response.
//
// CBOR encoding:
//
//	{
//	  1: kind   // uint8: 1=Fetch, 2=Toggle, 3=Skip, 4=Reset, 5=Stop
//	}
type Request struct {
	Kind RequestKind `cbor:"1,keyasint"`
}

// Validate checks that the request carries a known kind.
func (r *Request) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("unknown request kind %d", uint8(r.Kind))
	}
	return nil
}

// ResponseKind identifies which arm of the response union is populated.
type ResponseKind uint8

const (
	ResponseState        ResponseKind = 1
	ResponseConfirmation ResponseKind = 2
)

// PomodoroState is the wire form of an engine snapshot.
//
// CBOR encoding:
//
//	{
//	  1: paused,           // bool
//	  2: time,             // text: formatted time left in the session
//	  3: sessionName,      // text
//	  4: sessionDuration,  // text: formatted total session length
//	  5: percent           // uint: 0-100
//	}
type PomodoroState struct {
	Paused          bool   `cbor:"1,keyasint"`
	Time            string `cbor:"2,keyasint"`
	SessionName     string `cbor:"3,keyasint"`
	SessionDuration string `cbor:"4,keyasint"`
	Percent         uint32 `cbor:"5,keyasint"`
}

// NewState converts an engine snapshot into its wire form.
func NewState(s pomodoro.State) *PomodoroState {
	return &PomodoroState{
		Paused:          s.Paused,
		Time:            s.Time,
		SessionName:     s.SessionName,
		SessionDuration: s.SessionDuration,
		Percent:         uint32(s.Percent),
	}
}

// Confirmation acknowledges a state-changing request. OK is false when the
// server could not apply the request; Error then carries the reason.
//
// CBOR encoding:
//
//	{
//	  1: ok,     // bool
//	  2: error   // text, present only when ok is false
//	}
type Confirmation struct {
	OK    bool   `cbor:"1,keyasint"`
	Error string `cbor:"2,keyasint,omitempty"`
}

// Response is one server message. Exactly the field matching Kind is set.
//
// CBOR encoding:
//
//	{
//	  1: kind,          // uint8: 1=State, 2=Confirmation
//	  2: state,         // PomodoroState map, kind 1 only
//	  3: confirmation   // Confirmation map, kind 2 only
//	}
type Response struct {
	Kind         ResponseKind   `cbor:"1,keyasint"`
	State        *PomodoroState `cbor:"2,keyasint,omitempty"`
	Confirmation *Confirmation  `cbor:"3,keyasint,omitempty"`
}

// StateResponse wraps an engine snapshot in a response.
func StateResponse(s pomodoro.State) *Response {
	return &Response{Kind: ResponseState, State: NewState(s)}
}

// ConfirmationResponse builds an acknowledgement response. A nil err means
// the request was applied.
func ConfirmationResponse(err error) *Response {
	c := &Confirmation{OK: err == nil}
	if err != nil {
		c.Error = err.Error()
	}
	return &Response{Kind: ResponseConfirmation, Confirmation: c}
}

// Validate checks the kind tag and that exactly the matching payload arm is
// populated.
func (r *Response) Validate() error {
	switch r.Kind {
	case ResponseState:
		if r.State == nil {
			return fmt.Errorf("state response without state payload")
		}
		if r.Confirmation != nil {
			return fmt.Errorf("state response with confirmation payload")
		}
	case ResponseConfirmation:
		if r.Confirmation == nil {
			return fmt.Errorf("confirmation response without confirmation payload")
		}
		if r.State != nil {
			return fmt.Errorf("confirmation response with state payload")
		}
	default:
		return fmt.Errorf("unknown response kind %d", uint8(r.Kind))
	}
	return nil
}

// Err surfaces a failed confirmation as a Go error. It returns nil for
// state responses and successful confirmations.
func (r *Response) Err() error {
	if r.Kind != ResponseConfirmation || r.Confirmation == nil || r.Confirmation.OK {
		return nil
	}
	if r.Confirmation.Error == "" {
		return fmt.Errorf("server rejected the request")
	}
	return fmt.Errorf("server rejected the request: %s", r.Confirmation.Error)
}
