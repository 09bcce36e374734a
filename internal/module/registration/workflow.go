package registration

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State is the registration workflow state.
type State string

const (
	// StateEditing accepts field edits and member changes.
	StateEditing State = "editing"
	// StateSubmitting has one create call in flight; further submits are rejected.
	StateSubmitting State = "submitting"
	// StateSucceeded is terminal until the auto-reset fires.
	StateSucceeded State = "succeeded"
)

// CreateFunc persists a normalized team. The workflow calls it exactly once
// per successful validation.
type CreateFunc func(ctx context.Context, team *Team) error

// Workflow is the registration form state machine:
//
//	Editing -> Submitting -> Succeeded
//	                      -> Editing (with error, draft preserved)
//
// A succeeded workflow resets itself to a blank Editing draft after a fixed
// display delay. All operations are safe for concurrent use.
type Workflow struct {
	mu        sync.Mutex
	state     State
	draft     *TeamDraft
	lastError string

	rules      Rules
	create     CreateFunc
	resetDelay time.Duration

	// afterFunc is time.AfterFunc, swappable in tests.
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewWorkflow creates a workflow in Editing state with the minimum member slots.
func NewWorkflow(rules Rules, create CreateFunc, resetDelay time.Duration) *Workflow {
	return &Workflow{
		state:      StateEditing,
		draft:      NewTeamDraft(rules.MinMembers),
		rules:      rules,
		create:     create,
		resetDelay: resetDelay,
		afterFunc:  time.AfterFunc,
	}
}

// Snapshot returns the current state, a copy of the draft and the last error.
func (w *Workflow) Snapshot() (State, *TeamDraft, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state, w.draft.Clone(), w.lastError
}

// AddMember appends an empty member slot. Returns ErrTeamFull at the limit.
func (w *Workflow) AddMember() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateEditing {
		return ErrNotEditing
	}
	if len(w.draft.Members) >= w.rules.MaxMembers {
		return ErrTeamFull
	}
	w.draft.Members = append(w.draft.Members, MemberDraft{})
	return nil
}

// RemoveMember removes the member at index. Removal below the minimum roster
// is rejected and leaves the draft unchanged.
func (w *Workflow) RemoveMember(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateEditing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(w.draft.Members) {
		return ErrInvalidMemberIndex
	}
	if len(w.draft.Members) <= w.rules.MinMembers {
		return ErrMinimumRoster
	}
	w.draft.Members = append(w.draft.Members[:index], w.draft.Members[index+1:]...)
	return nil
}

// SetTeamName updates the draft's team name.
func (w *Workflow) SetTeamName(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateEditing {
		return ErrNotEditing
	}
	w.draft.TeamName = name
	return nil
}

// SetCategory updates the draft's category.
func (w *Workflow) SetCategory(category string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateEditing {
		return ErrNotEditing
	}
	w.draft.Category = category
	return nil
}

// EditField updates one attribute of one member in place.
func (w *Workflow) EditField(index int, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateEditing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(w.draft.Members) {
		return ErrInvalidMemberIndex
	}

	m := &w.draft.Members[index]
	switch field {
	case "name":
		m.Name = value
	case "email":
		m.Email = value
	case "phone":
		m.Phone = value
	case "college":
		m.College = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Submit validates the draft and, when valid, persists the normalized team.
// An invalid draft keeps the workflow in Editing with the violation recorded.
// A repository failure also returns to Editing with the draft preserved so
// the user can retry without re-entering data. The Submitting state blocks
// re-entrant submits, so at most one create call is ever in flight.
func (w *Workflow) Submit(ctx context.Context) (*Team, error) {
	w.mu.Lock()
	switch w.state {
	case StateSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateSucceeded:
		w.mu.Unlock()
		return nil, ErrNotEditing
	}

	result := w.rules.Validate(w.draft)
	if !result.Valid {
		w.lastError = result.Message
		w.mu.Unlock()
		return nil, &ValidationError{Field: result.Field, Message: result.Message}
	}

	team := w.draft.Normalize()
	w.state = StateSubmitting
	w.mu.Unlock()

	err := w.create(ctx, team)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.state = StateEditing
		w.lastError = "registration failed, please try again"
		return nil, fmt.Errorf("%w: %v", ErrRepository, err)
	}

	w.state = StateSucceeded
	w.lastError = ""
	w.afterFunc(w.resetDelay, w.reset)
	return team, nil
}

// reset returns a succeeded workflow to a fresh Editing draft.
func (w *Workflow) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSucceeded {
		return
	}
	w.state = StateEditing
	w.draft = NewTeamDraft(w.rules.MinMembers)
	w.lastError = ""
}
