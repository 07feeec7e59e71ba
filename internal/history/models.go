package history

import (
	"fmt"
	"time"
)

// Kind labels what happened to the timer.
type Kind string

const (
	KindStart  Kind = "start"
	KindToggle Kind = "toggle"
	KindSkip   Kind = "skip"
	KindReset  Kind = "reset"
	KindStop   Kind = "stop"
)

// IsValid reports whether k is one of the journaled event kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindStart, KindToggle, KindSkip, KindReset, KindStop:
		return true
	default:
		return false
	}
}

// Event is one journal row. ID and CreatedAt are assigned on append.
type Event struct {
	ID          int64
	ServerID    int
	Kind        Kind
	Paused      bool
	SessionName string
	CreatedAt   time.Time
}

func (e *Event) validate() error {
	if !e.Kind.IsValid() {
		return fmt.Errorf("history: unknown event kind %q", e.Kind)
	}
	if e.ServerID < 0 {
		return fmt.Errorf("history: negative server id %d", e.ServerID)
	}
	return nil
}
