package checkout

import "errors"

// Status tracks the checkout payload through payment confirmation.
// Values are lowercase and wire-stable.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusConfirmed  Status = "confirmed"
	StatusFailed     Status = "failed"
)

// ErrInvalidStatusChange is returned for a disallowed status move
var ErrInvalidStatusChange = errors.New("invalid checkout status transition")

// Progress is monotonic except failed, which may return to pending so
// the traveler can resubmit.
var checkoutTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusConfirmed, StatusFailed},
	StatusConfirmed:  {},
	StatusFailed:     {StatusPending},
}

func (s Status) IsValid() bool {
	_, ok := checkoutTransitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range checkoutTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s Status) IsTerminal() bool {
	return len(checkoutTransitions[s]) == 0
}
