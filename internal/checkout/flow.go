package checkout

import (
	"errors"
	"fmt"
)

// Step identifies a screen in the checkout sequence
type Step string

const (
	StepGuestInfo     Step = "guest-info"
	StepPaymentMethod Step = "payment-method"
	StepCardPayment   Step = "card-payment"
	StepConfirmation  Step = "confirmation"
	StepWaitlistJoin  Step = "waitlist-join"
)

// ErrInvalidStep is returned by GoTo for a step outside the flow's sequence
var ErrInvalidStep = errors.New("invalid step")

// DefaultSteps is the normal checkout sequence. Card payment may be
// skipped at runtime for pay-on-arrival methods, but it stays in the
// sequence so progress navigation can address it.
func DefaultSteps() []Step {
	return []Step{StepGuestInfo, StepPaymentMethod, StepCardPayment, StepConfirmation}
}

// WaitlistSteps is the sequence used when the selected slot is already
// full: the traveler leaves contact info and joins the waitlist instead
// of paying.
func WaitlistSteps() []Step {
	return []Step{StepGuestInfo, StepWaitlistJoin}
}

// Payload accumulates traveler input across steps. Keys are wire-stable.
type Payload map[string]interface{}

// Payload keys
const (
	PayloadExperienceID = "experience_id"
	PayloadSlotID       = "slot_id"
	PayloadSelectedDate = "selected_date"
	PayloadGuestCount   = "guest_count"
	PayloadGuestInfo    = "guest_info"
	PayloadMethod       = "payment_method"
	PayloadStatus       = "status"
	PayloadReference    = "booking_reference"
	PayloadBookingID    = "booking_id"
)

func defaultPayload() Payload {
	return Payload{
		PayloadStatus:     string(StatusPending),
		PayloadGuestCount: 1,
	}
}

// Flow owns an ordered step sequence, a cursor and the payload. All
// payload mutation goes through UpdatePayload so a step always observes
// the fields written by the steps before it.
type Flow struct {
	Steps   []Step  `json:"steps"`
	Cursor  int     `json:"cursor"`
	Payload Payload `json:"payload"`
}

// NewFlow starts a flow at the first step of seq with a default payload
func NewFlow(seq []Step) *Flow {
	if len(seq) == 0 {
		seq = DefaultSteps()
	}
	return &Flow{
		Steps:   seq,
		Cursor:  0,
		Payload: defaultPayload(),
	}
}

// CurrentStep returns the active step identifier
func (f *Flow) CurrentStep() Step {
	if f.Cursor < 0 || f.Cursor >= len(f.Steps) {
		return f.Steps[0]
	}
	return f.Steps[f.Cursor]
}

// GoNext advances the cursor by one. At the last step it is a no-op and
// returns false.
func (f *Flow) GoNext() bool {
	if f.Cursor >= len(f.Steps)-1 {
		return false
	}
	f.Cursor++
	return true
}

// GoBack retreats the cursor by one. At the first step it is a no-op and
// returns false.
func (f *Flow) GoBack() bool {
	if f.Cursor <= 0 {
		return false
	}
	f.Cursor--
	return true
}

// GoTo jumps directly to a step in the configured sequence
func (f *Flow) GoTo(step Step) error {
	for i, s := range f.Steps {
		if s == step {
			f.Cursor = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidStep, step)
}

// UpdatePayload shallow-merges partial into the payload. Fields absent
// from partial are left untouched.
func (f *Flow) UpdatePayload(partial Payload) {
	if f.Payload == nil {
		f.Payload = defaultPayload()
	}
	for k, v := range partial {
		f.Payload[k] = v
	}
}

// Reset restores the cursor to the first step and the payload to its
// default shape
func (f *Flow) Reset() {
	f.Cursor = 0
	f.Payload = defaultPayload()
}

// IsLast reports whether the cursor sits on the final step
func (f *Flow) IsLast() bool {
	return f.Cursor == len(f.Steps)-1
}

// Status reads the payload status, defaulting to pending
func (f *Flow) Status() Status {
	if f.Payload == nil {
		return StatusPending
	}
	if s, ok := f.Payload[PayloadStatus].(string); ok {
		return Status(s)
	}
	return StatusPending
}

// SetStatus validates and applies a payload status transition
func (f *Flow) SetStatus(target Status) error {
	current := f.Status()
	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, current, target)
	}
	f.UpdatePayload(Payload{PayloadStatus: string(target)})
	return nil
}
