package lifecycle

import "sync"

// State represents a notification's position in its visual lifecycle.
type State string

const (
	// StateEntering is the initial state: the notification is mounted but
	// its entrance transition has not settled yet.
	StateEntering State = "entering"
	// StateEntered is the stable visible state.
	StateEntered State = "entered"
	// StateExiting means dismissal was requested and the exit transition is
	// in progress.
	StateExiting State = "exiting"
	// StateExited is terminal: the notification has left the store.
	StateExited State = "exited"
)

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StateExited
}

// transitions is the fixed lifecycle table. A notification never re-enters
// entering after leaving it; exiting can only complete, never revert.
var transitions = map[State][]State{
	StateEntering: {StateEntered, StateExiting},
	StateEntered:  {StateExiting},
	StateExiting:  {StateExited},
}

// Option configures a Machine.
type Option func(*Machine)

// WithOnTransition registers a callback observing every committed
// transition. The callback runs synchronously under the machine's lock, so
// it must not call back into the machine.
func WithOnTransition(fn func(from, to State)) Option {
	return func(m *Machine) {
		m.onTransition = fn
	}
}

// Machine is a thread-safe per-notification lifecycle state machine.
// It validates transitions against the fixed table above; it owns no timers,
// callers drive it.
type Machine struct {
	current      State
	onTransition func(from, to State)
	mu           sync.Mutex
}

// New creates a machine in the entering state.
func New(opts ...Option) *Machine {
	m := &Machine{current: StateEntering}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Settle commits the entrance transition: entering -> entered.
func (m *Machine) Settle() error {
	return m.transition(StateEntered)
}

// Dismiss starts the exit transition from either entering or entered.
// Dismissing a notification before its entrance settles is legal.
func (m *Machine) Dismiss() error {
	return m.transition(StateExiting)
}

// Finish completes the exit transition: exiting -> exited.
func (m *Machine) Finish() error {
	return m.transition(StateExited)
}

// CanDismiss reports whether a dismiss transition is currently valid.
func (m *Machine) CanDismiss() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allowed(StateExiting)
}

func (m *Machine) transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.allowed(to) {
		return &InvalidTransitionError{From: m.current, To: to}
	}

	from := m.current
	m.current = to
	if m.onTransition != nil {
		m.onTransition(from, to)
	}
	return nil
}

// allowed must be called with the lock held.
func (m *Machine) allowed(to State) bool {
	for _, next := range transitions[m.current] {
		if next == to {
			return true
		}
	}
	return false
}
