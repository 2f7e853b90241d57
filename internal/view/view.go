// Package view holds the list and detail controllers: small state machines that
// drive catalogue reads and produce render-ready view models. Controllers never
// leak technical errors to their views; those are logged and replaced with a
// fixed message.
package view

import (
	"errors"
	"fmt"
)

// State is the lifecycle of a controller's data.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateIdle, StateLoading, StateSuccess, StateError} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown view state %q", text)
}

var (
	// ErrStale is returned by a load whose result was discarded because a later
	// load started or the controller was closed.
	ErrStale = errors.New("load superseded")

	// ErrClosed is returned by a load on a closed controller.
	ErrClosed = errors.New("controller closed")
)
