package bid

import "errors"

// Status represents the lifecycle status of a bid.
type Status string

const (
	// StatusPending is the initial state of every bid.
	StatusPending Status = "Pending"

	// Terminal states (no further transitions allowed)
	StatusAccepted Status = "Accepted"
	StatusDeclined Status = "Declined"
)

// ErrInvalidTransition is returned when a status transition is not allowed.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnknownStatus is returned when parsing an unrecognized status value.
var ErrUnknownStatus = errors.New("unknown bid status")

// ValidTransitions defines allowed status transitions.
var ValidTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusDeclined},
	// Terminal states have no valid transitions
	StatusAccepted: {},
	StatusDeclined: {},
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusDeclined:
		return StatusDeclined, nil
	default:
		return "", ErrUnknownStatus
	}
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// CanWithdraw returns true if a bid in this status may be withdrawn.
// Withdrawal is modeled as deletion and is only legal before a decision.
func (s Status) CanWithdraw() bool {
	return s == StatusPending
}

// CanTransitionTo checks if a transition from current status to target status is valid.
func (s Status) CanTransitionTo(target Status) bool {
	validTargets, ok := ValidTransitions[s]
	if !ok {
		return false
	}
	for _, t := range validTargets {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo attempts to transition to the target status and returns error if invalid.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, ErrInvalidTransition
	}
	return target, nil
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}
