package workflow

import (
	"errors"
	"testing"

	"github.com/Project-Sylos/Studio/internal/types"
)

var files = []types.FileChange{{Path: "p/App.js", Content: "x"}}

// TestDecide tests classification of suggestions
func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		suggestion *types.Suggestion
		want       State
	}{
		{name: "nil", suggestion: nil, want: StateConversational},
		{name: "chat only", suggestion: &types.Suggestion{Success: true, Message: "hi"}, want: StateConversational},
		{name: "apply flag without files", suggestion: &types.Suggestion{Success: true, ShouldApplyChanges: true}, want: StateConversational},
		{name: "proposal", suggestion: &types.Suggestion{Success: true, Files: files}, want: StateProposed},
		{name: "apply", suggestion: &types.Suggestion{Success: true, Files: files, ShouldApplyChanges: true}, want: StateApplied},
		{name: "failed with files", suggestion: &types.Suggestion{Success: false, Files: files, ShouldApplyChanges: true}, want: StateConversational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.suggestion); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestMachineProposeThenApply tests the two-step flow
func TestMachineProposeThenApply(t *testing.T) {
	m := NewMachine()

	if err := m.Begin(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.State() != StateAwaitingSuggestion {
		t.Fatalf("Expected awaiting state, got %s", m.State())
	}

	outcome, err := m.Resolve(&types.Suggestion{Success: true, Files: files})
	if err != nil || outcome != StateProposed {
		t.Fatalf("Expected proposed, got %s (%v)", outcome, err)
	}
	if m.State() != StateIdle {
		t.Errorf("Expected idle after resolve, got %s", m.State())
	}
	if len(m.Pending()) != 1 {
		t.Errorf("Expected proposal to be pending")
	}

	if err := m.Begin(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	outcome, err = m.Resolve(&types.Suggestion{Success: true, Files: files, ShouldApplyChanges: true})
	if err != nil || outcome != StateApplied {
		t.Fatalf("Expected applied, got %s (%v)", outcome, err)
	}
	if len(m.Pending()) != 0 {
		t.Errorf("Expected pending proposal to be cleared")
	}
	if m.LastOutcome() != StateApplied {
		t.Errorf("Expected last outcome applied, got %s", m.LastOutcome())
	}
}

// TestMachineRejectsOverlap tests the busy guard
func TestMachineRejectsOverlap(t *testing.T) {
	m := NewMachine()
	if err := m.Begin(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := m.Begin(); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	m.Fail()
	if m.State() != StateIdle {
		t.Errorf("Expected idle after failure, got %s", m.State())
	}
	if err := m.Begin(); err != nil {
		t.Errorf("Expected a new request to start after failure: %v", err)
	}
}

// TestMachineResolveWithoutBegin tests resolving an idle machine
func TestMachineResolveWithoutBegin(t *testing.T) {
	m := NewMachine()
	if _, err := m.Resolve(&types.Suggestion{Success: true}); !errors.Is(err, ErrNotAwaiting) {
		t.Errorf("Expected ErrNotAwaiting, got %v", err)
	}
}

// TestMachineConversationalClearsProposal tests that a reply without files
// drops a proposal left over from an earlier request
func TestMachineConversationalClearsProposal(t *testing.T) {
	m := NewMachine()
	if err := m.Begin(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := m.Resolve(&types.Suggestion{Success: true, Files: files}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := m.Begin(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	outcome, err := m.Resolve(&types.Suggestion{Success: true, Message: "Anything else?"})
	if err != nil || outcome != StateConversational {
		t.Fatalf("Expected conversational, got %s (%v)", outcome, err)
	}
	if len(m.Pending()) != 0 {
		t.Errorf("Expected no pending proposal, got %v", m.Pending())
	}
}
