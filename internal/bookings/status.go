package bookings

// Status tracks a booking through payment and confirmation
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusFailed     Status = "FAILED"
	StatusCancelled  Status = "CANCELLED"
)

// statusTransitions encodes the allowed moves. Progress is one-way
// except FAILED, which may return to PENDING for a retry.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusConfirmed, StatusFailed},
	StatusConfirmed:  {StatusCancelled},
	StatusFailed:     {StatusPending, StatusCancelled},
	StatusCancelled:  {},
}

func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target is allowed
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s
func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}
