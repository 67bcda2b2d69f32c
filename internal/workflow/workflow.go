// Package workflow implements the propose/apply state machine that decides
// what happens to a code suggestion.
package workflow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Project-Sylos/Studio/internal/types"
)

// State is a workflow state
type State string

// States. Conversational, Proposed and Applied are outcomes of a resolved
// suggestion; the machine returns to Idle right after reaching one of them.
const (
	StateIdle               State = "idle"
	StateAwaitingSuggestion State = "awaiting_suggestion"
	StateConversational     State = "conversational"
	StateProposed           State = "proposed"
	StateApplied            State = "applied"
)

var (
	// ErrBusy is returned when a request starts while another is outstanding
	ErrBusy = errors.New("a request is already in progress")
	// ErrNotAwaiting is returned when resolving without an outstanding request
	ErrNotAwaiting = errors.New("no request in progress")
)

// Decide classifies a suggestion. Only a successful suggestion that carries
// files and sets the apply flag may touch the tree.
func Decide(s *types.Suggestion) State {
	if s == nil || !s.Success || len(s.Files) == 0 {
		return StateConversational
	}
	if s.ShouldApplyChanges {
		return StateApplied
	}
	return StateProposed
}

// Machine tracks one conversation's request lifecycle
type Machine struct {
	mu      sync.Mutex
	state   State
	last    State
	pending []types.FileChange
}

// NewMachine returns an idle machine
func NewMachine() *Machine {
	return &Machine{state: StateIdle, last: StateIdle}
}

// Begin moves Idle to AwaitingSuggestion. A second request while one is
// outstanding is rejected with ErrBusy.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle {
		return fmt.Errorf("%w (state %s)", ErrBusy, m.state)
	}
	m.state = StateAwaitingSuggestion
	return nil
}

// Resolve records the outcome of the outstanding request and returns to
// Idle. A proposed batch is kept for review until the next outcome
// replaces or clears it; the machine itself never applies it.
func (m *Machine) Resolve(s *types.Suggestion) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAwaitingSuggestion {
		return m.state, ErrNotAwaiting
	}

	outcome := Decide(s)
	switch outcome {
	case StateProposed:
		m.pending = append([]types.FileChange(nil), s.Files...)
	case StateApplied, StateConversational:
		m.pending = nil
	}

	m.last = outcome
	m.state = StateIdle
	return outcome, nil
}

// Fail abandons the outstanding request and returns to Idle
func (m *Machine) Fail() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateIdle
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastOutcome returns the outcome of the most recently resolved request
func (m *Machine) LastOutcome() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Pending returns a copy of the proposed batch awaiting confirmation
func (m *Machine) Pending() []types.FileChange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.FileChange(nil), m.pending...)
}
