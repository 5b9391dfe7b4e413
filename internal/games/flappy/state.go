package flappy

import (
	"errors"
	"fmt"
)

// State is a phase of the game.
type State int

const (
	StateNone State = iota // Before the first Start
	StatePrepare
	StateFlying
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StatePrepare:
		return "prepare"
	case StateFlying:
		return "flying"
	case StateGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// next is the transition table: each state has exactly one valid successor.
var next = map[State]State{
	StateNone:     StatePrepare,
	StatePrepare:  StateFlying,
	StateFlying:   StateGameOver,
	StateGameOver: StateFlying,
}

// CanEnter reports whether to is the declared successor of from.
func CanEnter(from, to State) bool {
	n, ok := next[from]
	return ok && n == to
}

var (
	// ErrInvalidTransition is returned when the target is not the current
	// state's successor.
	ErrInvalidTransition = errors.New("flappy: invalid state transition")
	// ErrTransitionInFlight is returned when Enter is called from inside an
	// enter handler.
	ErrTransitionInFlight = errors.New("flappy: transition already in progress")
)

// EnterFunc runs the side effects of entering to. from is the state that was
// left.
type EnterFunc func(from, to State)

// Machine holds the active state and runs enter handlers on transitions.
// It is not safe for concurrent use; all calls come from the game loop.
type Machine struct {
	current  State
	onEnter  EnterFunc
	inFlight bool
}

// NewMachine creates a machine in StateNone.
func NewMachine(onEnter EnterFunc) *Machine {
	return &Machine{onEnter: onEnter}
}

// Current returns the active state.
func (m *Machine) Current() State {
	return m.current
}

// Start enters StatePrepare from StateNone.
func (m *Machine) Start() error {
	return m.Enter(StatePrepare)
}

// Enter switches to the given state if it is the active state's successor.
// On failure the state is unchanged.
func (m *Machine) Enter(to State) error {
	if m.inFlight {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionInFlight, m.current, to)
	}
	if !CanEnter(m.current, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, to)
	}

	from := m.current
	m.current = to
	if m.onEnter != nil {
		m.inFlight = true
		defer func() { m.inFlight = false }()
		m.onEnter(from, to)
	}
	return nil
}
