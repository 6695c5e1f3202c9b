package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tourflo/internal/bookings"
	"tourflo/internal/payments"
	"tourflo/internal/slots"
	"tourflo/pkg/logger"
)

var (
	ErrWrongStep       = errors.New("operation not allowed at current step")
	ErrMethodRequired  = errors.New("payment method must be selected first")
	ErrSlotUnavailable = errors.New("slot is no longer available")
)

// SlotGateway is the slice of the slot service checkout consumes
type SlotGateway interface {
	GetByID(ctx context.Context, id uuid.UUID) (*slots.SlotResponse, error)
	Availability(ctx context.Context, id uuid.UUID) (*slots.AvailabilityResponse, error)
}

// BookingGateway creates and confirms bookings on the traveler's behalf
type BookingGateway interface {
	Create(ctx context.Context, req bookings.CreateBookingRequest) (*bookings.BookingResponse, error)
	Confirm(ctx context.Context, bookingID uuid.UUID) (*bookings.BookingResponse, error)
	Retry(ctx context.Context, bookingID uuid.UUID) (*bookings.BookingResponse, error)
}

// WaitlistGateway signs a traveler up when their slot is full
type WaitlistGateway interface {
	Join(ctx context.Context, slotID uuid.UUID, userID *uuid.UUID, name, email, phone string) (int, error)
}

type Service interface {
	Start(ctx context.Context, req StartCheckoutRequest) (*SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*SessionResponse, error)
	SubmitGuestInfo(ctx context.Context, sessionID string, info GuestInfo) (*SessionResponse, error)
	SelectPaymentMethod(ctx context.Context, sessionID string, method payments.Method) (*SessionResponse, error)
	SubmitCardPayment(ctx context.Context, sessionID string, card CardDetails) (*SessionResponse, error)
	JoinWaitlist(ctx context.Context, sessionID string) (*SessionResponse, error)
	Back(ctx context.Context, sessionID string) (*SessionResponse, error)
	GoToStep(ctx context.Context, sessionID string, step Step) (*SessionResponse, error)
	Abandon(ctx context.Context, sessionID string) error
}

type service struct {
	sessions SessionStore
	slots    SlotGateway
	bookings BookingGateway
	waitlist WaitlistGateway
}

func NewService(sessions SessionStore, slotGateway SlotGateway, bookingGateway BookingGateway, waitlistGateway WaitlistGateway) Service {
	return &service{
		sessions: sessions,
		slots:    slotGateway,
		bookings: bookingGateway,
		waitlist: waitlistGateway,
	}
}

// Start opens a checkout session for a slot. A full slot gets the
// waitlist sequence instead of the payment sequence.
func (s *service) Start(ctx context.Context, req StartCheckoutRequest) (*SessionResponse, error) {
	slot, err := s.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if !slot.Active {
		return nil, ErrSlotUnavailable
	}

	seq := DefaultSteps()
	if slot.IsFull {
		seq = WaitlistSteps()
	}

	flow := NewFlow(seq)
	flow.UpdatePayload(Payload{
		PayloadExperienceID: slot.ExperienceID.String(),
		PayloadSlotID:       slot.ID.String(),
		PayloadSelectedDate: slot.Date.Format("2006-01-02"),
	})
	if req.GuestCount > 0 {
		flow.UpdatePayload(Payload{PayloadGuestCount: req.GuestCount})
	}

	session := &Session{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		ExperienceID: slot.ExperienceID,
		SlotID:       slot.ID,
		Flow:         flow,
		CreatedAt:    time.Now(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.GetDefault().LogCheckoutStarted(ctx, session.ID, session.ExperienceID.String(), userIDString(session.UserID))

	return s.respond(session, nil, ""), nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(session, nil, ""), nil
}

// SubmitGuestInfo validates and stores the traveler's contact block.
// Validation failures come back as field errors with the cursor
// unchanged; the payload is written before the cursor advances.
func (s *service) SubmitGuestInfo(ctx context.Context, sessionID string, info GuestInfo) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Flow.CurrentStep() != StepGuestInfo {
		return nil, ErrWrongStep
	}

	if fieldErrs := ValidateGuestInfo(info); len(fieldErrs) > 0 {
		return s.respond(session, fieldErrs, ""), nil
	}

	from := session.Flow.CurrentStep()
	session.Flow.UpdatePayload(Payload{
		PayloadGuestInfo: map[string]interface{}{
			"full_name":        info.FullName,
			"email":            info.Email,
			"phone":            info.Phone,
			"whatsapp_opt_in":  info.WhatsappOptIn,
			"special_requests": info.SpecialRequests,
		},
	})
	session.Flow.GoNext()

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.GetDefault().LogCheckoutStep(ctx, session.ID, string(from), string(session.Flow.CurrentStep()))
	return s.respond(session, nil, ""), nil
}

// SelectPaymentMethod stores the method and routes the flow: cash goes
// straight to confirmation, everything else visits the card step.
func (s *service) SelectPaymentMethod(ctx context.Context, sessionID string, method payments.Method) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Flow.CurrentStep() != StepPaymentMethod {
		return nil, ErrWrongStep
	}

	if !method.IsValid() {
		return s.respond(session, map[string]string{"payment_method": "unsupported payment method"}, ""), nil
	}

	from := session.Flow.CurrentStep()
	session.Flow.UpdatePayload(Payload{PayloadMethod: string(method)})

	if method.IsChargedOnline() {
		session.Flow.GoNext()
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		logger.GetDefault().LogCheckoutStep(ctx, session.ID, string(from), string(session.Flow.CurrentStep()))
		return s.respond(session, nil, ""), nil
	}

	// Cash skips the payment step and confirms immediately
	return s.confirm(ctx, session, method)
}

// SubmitCardPayment confirms the booking from the card step. On payment
// failure the cursor stays put and the status moves to failed so the
// traveler can resubmit.
func (s *service) SubmitCardPayment(ctx context.Context, sessionID string, card CardDetails) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Flow.CurrentStep() != StepCardPayment {
		return nil, ErrWrongStep
	}

	raw, ok := session.Flow.Payload[PayloadMethod].(string)
	if !ok || raw == "" {
		return nil, ErrMethodRequired
	}
	method := payments.Method(raw)

	// Wallet methods collect credentials with the provider, so only card
	// entries are shape-checked here
	if method.RequiresCardDetails() {
		if fieldErrs := card.validate(); len(fieldErrs) > 0 {
			return s.respond(session, fieldErrs, ""), nil
		}
	}

	return s.confirm(ctx, session, method)
}

// confirm runs the booking pipeline for the session. A previous failed
// attempt is retried instead of creating a duplicate booking.
func (s *service) confirm(ctx context.Context, session *Session, method payments.Method) (*SessionResponse, error) {
	if session.Flow.Status() == StatusFailed {
		if err := session.Flow.SetStatus(StatusPending); err != nil {
			return nil, err
		}
	}
	if err := session.Flow.SetStatus(StatusProcessing); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	booking, err := s.ensureBooking(ctx, session, method)
	if err == nil {
		booking, err = s.bookings.Confirm(ctx, booking.ID)
	}
	if err != nil {
		if serr := session.Flow.SetStatus(StatusFailed); serr != nil {
			return nil, serr
		}
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		msg := "Payment could not be completed. Please try again."
		if errors.Is(err, slots.ErrSlotFull) {
			msg = "This slot just sold out."
		}
		return s.respond(session, nil, msg), nil
	}

	if err := session.Flow.SetStatus(StatusConfirmed); err != nil {
		return nil, err
	}
	session.Flow.UpdatePayload(Payload{
		PayloadReference: booking.Reference,
		PayloadBookingID: booking.ID.String(),
	})
	if err := session.Flow.GoTo(StepConfirmation); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return s.respond(session, nil, ""), nil
}

// ensureBooking creates the pending booking once per session; a retry
// after failure reuses the stored booking.
func (s *service) ensureBooking(ctx context.Context, session *Session, method payments.Method) (*bookings.BookingResponse, error) {
	if raw, ok := session.Flow.Payload[PayloadBookingID].(string); ok && raw != "" {
		id, err := uuid.Parse(raw)
		if err == nil {
			return s.bookings.Retry(ctx, id)
		}
	}

	info := s.guestInfo(session)
	slot, err := s.slots.GetByID(ctx, session.SlotID)
	if err != nil {
		return nil, err
	}

	guestCount := 1
	if n, ok := toInt(session.Flow.Payload[PayloadGuestCount]); ok && n > 0 {
		guestCount = n
	}

	booking, err := s.bookings.Create(ctx, bookings.CreateBookingRequest{
		UserID:       session.UserID,
		SlotID:       session.SlotID,
		ExperienceID: session.ExperienceID,
		GuestName:    info.FullName,
		GuestEmail:   info.Email,
		GuestPhone:   info.Phone,
		GuestCount:   guestCount,
		Method:       method,
		TotalAmount:  slot.Price * float64(guestCount),
	})
	if err != nil {
		return nil, err
	}
	session.Flow.UpdatePayload(Payload{PayloadBookingID: booking.ID.String()})
	return booking, nil
}

// JoinWaitlist signs the traveler up from the waitlist step of a full
// slot's flow
func (s *service) JoinWaitlist(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Flow.CurrentStep() != StepWaitlistJoin {
		return nil, ErrWrongStep
	}

	info := s.guestInfo(session)
	position, err := s.waitlist.Join(ctx, session.SlotID, session.UserID, info.FullName, info.Email, info.Phone)
	if err != nil {
		return nil, err
	}

	session.Flow.UpdatePayload(Payload{"waitlist_position": position})
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return s.respond(session, nil, fmt.Sprintf("You are number %d on the waitlist.", position)), nil
}

func (s *service) Back(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Flow.GoBack()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.respond(session, nil, ""), nil
}

func (s *service) GoToStep(ctx context.Context, sessionID string, step Step) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Flow.GoTo(step); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.respond(session, nil, ""), nil
}

func (s *service) Abandon(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *service) respond(session *Session, fieldErrors map[string]string, message string) *SessionResponse {
	return &SessionResponse{
		SessionID:   session.ID,
		CurrentStep: session.Flow.CurrentStep(),
		Steps:       session.Flow.Steps,
		Payload:     session.Flow.Payload,
		Status:      session.Flow.Status(),
		FieldErrors: fieldErrors,
		Message:     message,
	}
}

func (s *service) guestInfo(session *Session) GuestInfo {
	raw, _ := session.Flow.Payload[PayloadGuestInfo].(map[string]interface{})
	info := GuestInfo{}
	if raw == nil {
		return info
	}
	if v, ok := raw["full_name"].(string); ok {
		info.FullName = v
	}
	if v, ok := raw["email"].(string); ok {
		info.Email = v
	}
	if v, ok := raw["phone"].(string); ok {
		info.Phone = v
	}
	if v, ok := raw["whatsapp_opt_in"].(bool); ok {
		info.WhatsappOptIn = v
	}
	if v, ok := raw["special_requests"].(string); ok {
		info.SpecialRequests = v
	}
	return info
}

// toInt tolerates JSON round-trips turning ints into float64
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func userIDString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
