// Package moderation holds the product lifecycle state machine. It is pure:
// callers load the product, ask for a decision, and apply the result.
package moderation

import "fmt"

// State is a product lifecycle state.
type State string

const (
	StateDraft    State = "draft"
	StateNew      State = "new"
	StateRejected State = "rejected"
	StateBanned   State = "banned"
	StateAccepted State = "accepted"
)

// Actor is whoever requested a transition.
type Actor struct {
	ID    string
	Admin bool
}

// Decision is a validated transition ready to be applied.
type Decision struct {
	From State
	To   State
	// Notify is set when the creator must be told about the outcome.
	Notify bool
}

type requirement int

const (
	requireAnyone requirement = iota
	requireAdmin
	requireCreator
)

// transitions is the exhaustive edge set. Any (from, to) pair missing here
// is structurally invalid regardless of actor.
var transitions = map[[2]State]requirement{
	{StateDraft, StateNew}:    requireAnyone,
	{StateNew, StateRejected}: requireAdmin,
	{StateNew, StateBanned}:   requireAdmin,
	{StateNew, StateAccepted}: requireAdmin,
	{StateRejected, StateNew}: requireCreator,
}

// notifiable marks targets whose arrival from "new" triggers a creator
// notification.
var notifiable = map[State]bool{
	StateRejected: true,
	StateBanned:   true,
	StateAccepted: true,
}

// ParseState matches raw case-sensitively against the recognized states.
func ParseState(raw string) (State, bool) {
	switch s := State(raw); s {
	case StateDraft, StateNew, StateRejected, StateBanned, StateAccepted:
		return s, true
	}
	return "", false
}

// Terminal reports whether s permits no outbound transition.
func Terminal(s State) bool {
	return s == StateBanned || s == StateAccepted
}

// AuthorizationError means the transition exists but the actor may not
// perform it. Required names the missing permission.
type AuthorizationError struct {
	Required string
}

func (e *AuthorizationError) Error() string {
	switch e.Required {
	case "admin":
		return "only admins can change products in 'new' state"
	case "creator":
		return "only the creator can move rejected products back to 'new'"
	}
	return fmt.Sprintf("requires %s permission", e.Required)
}

// InvalidTransitionError means the target is not reachable from the current
// state, including attempts from a terminal state or to an unknown value.
type InvalidTransitionError struct {
	From State
	To   string
}

func (e *InvalidTransitionError) Error() string {
	if Terminal(e.From) {
		return "banned and accepted products cannot change state"
	}
	return "invalid state transition"
}

// Decide validates target against the current state, the actor, and the
// product's creator. Structural reachability is checked before
// authorization, so an unlisted pair never reports a permission problem.
// The outcome depends only on its inputs.
func Decide(current State, target string, actor Actor, creatorID string) (Decision, error) {
	to, ok := ParseState(target)
	if !ok {
		return Decision{}, &InvalidTransitionError{From: current, To: target}
	}

	req, ok := transitions[[2]State{current, to}]
	if !ok {
		return Decision{}, &InvalidTransitionError{From: current, To: target}
	}

	switch req {
	case requireAdmin:
		if !actor.Admin {
			return Decision{}, &AuthorizationError{Required: "admin"}
		}
	case requireCreator:
		if actor.ID != creatorID {
			return Decision{}, &AuthorizationError{Required: "creator"}
		}
	}

	return Decision{
		From:   current,
		To:     to,
		Notify: current == StateNew && notifiable[to],
	}, nil
}
