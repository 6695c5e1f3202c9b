package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tourflo/internal/bookings"
	"tourflo/internal/payments"
	"tourflo/internal/slots"
)

type memSessionStore struct {
	sessions map[string]*Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*Session)}
}

func (m *memSessionStore) Save(ctx context.Context, s *Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessionStore) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

type fakeSlotGateway struct {
	slot slots.SlotResponse
}

func (f *fakeSlotGateway) GetByID(ctx context.Context, id uuid.UUID) (*slots.SlotResponse, error) {
	if id != f.slot.ID {
		return nil, slots.ErrSlotNotFound
	}
	s := f.slot
	return &s, nil
}

func (f *fakeSlotGateway) Availability(ctx context.Context, id uuid.UUID) (*slots.AvailabilityResponse, error) {
	return &slots.AvailabilityResponse{
		SlotID:    f.slot.ID,
		Capacity:  f.slot.Capacity,
		Booked:    f.slot.Booked,
		SpotsLeft: f.slot.SpotsLeft,
		IsFull:    f.slot.IsFull,
	}, nil
}

type fakeBookingGateway struct {
	confirmErr error
	created    []bookings.CreateBookingRequest
	confirmed  int
	retried    int
}

func (f *fakeBookingGateway) Create(ctx context.Context, req bookings.CreateBookingRequest) (*bookings.BookingResponse, error) {
	f.created = append(f.created, req)
	return &bookings.BookingResponse{
		ID:     uuid.New(),
		Status: bookings.StatusPending,
		Method: req.Method,
	}, nil
}

func (f *fakeBookingGateway) Confirm(ctx context.Context, id uuid.UUID) (*bookings.BookingResponse, error) {
	f.confirmed++
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &bookings.BookingResponse{
		ID:        id,
		Reference: "TF-TEST0001-ABCD",
		Status:    bookings.StatusConfirmed,
	}, nil
}

func (f *fakeBookingGateway) Retry(ctx context.Context, id uuid.UUID) (*bookings.BookingResponse, error) {
	f.retried++
	return &bookings.BookingResponse{ID: id, Status: bookings.StatusPending}, nil
}

type fakeWaitlistGateway struct {
	joined   int
	position int
}

func (f *fakeWaitlistGateway) Join(ctx context.Context, slotID uuid.UUID, userID *uuid.UUID, name, email, phone string) (int, error) {
	f.joined++
	if f.position == 0 {
		f.position = 1
	}
	return f.position, nil
}

func openSlot() slots.SlotResponse {
	return slots.SlotResponse{
		ID:           uuid.New(),
		ExperienceID: uuid.New(),
		Date:         time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		Capacity:     8,
		Booked:       2,
		SpotsLeft:    6,
		Price:        120,
		Active:       true,
	}
}

func fullSlot() slots.SlotResponse {
	s := openSlot()
	s.Booked = 8
	s.SpotsLeft = 0
	s.IsFull = true
	return s
}

type testEnv struct {
	svc      Service
	store    *memSessionStore
	bookings *fakeBookingGateway
	waitlist *fakeWaitlistGateway
}

func newTestEnv(slot slots.SlotResponse) *testEnv {
	store := newMemSessionStore()
	bg := &fakeBookingGateway{}
	wg := &fakeWaitlistGateway{}
	svc := NewService(store, &fakeSlotGateway{slot: slot}, bg, wg)
	return &testEnv{svc: svc, store: store, bookings: bg, waitlist: wg}
}

func startSession(t *testing.T, env *testEnv, slotID uuid.UUID) *SessionResponse {
	t.Helper()
	resp, err := env.svc.Start(context.Background(), StartCheckoutRequest{SlotID: slotID, GuestCount: 2})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return resp
}

func submitValidGuestInfo(t *testing.T, env *testEnv, sessionID string) *SessionResponse {
	t.Helper()
	resp, err := env.svc.SubmitGuestInfo(context.Background(), sessionID, GuestInfo{
		FullName: "Amara Clarke",
		Email:    "amara@example.com",
		Phone:    "876-555-0123",
	})
	if err != nil {
		t.Fatalf("SubmitGuestInfo() error = %v", err)
	}
	return resp
}

func TestEndToEndGuestInfoStep(t *testing.T) {
	slot := openSlot()
	env := newTestEnv(slot)
	started := startSession(t, env, slot.ID)

	if started.CurrentStep != StepGuestInfo {
		t.Fatalf("start step = %s, want guest-info", started.CurrentStep)
	}

	// Single-word name: cursor unchanged, error surfaced
	resp, err := env.svc.SubmitGuestInfo(context.Background(), started.SessionID, GuestInfo{
		FullName: "Amara",
		Email:    "amara@example.com",
		Phone:    "876-555-0123",
	})
	if err != nil {
		t.Fatalf("SubmitGuestInfo() error = %v", err)
	}
	if resp.CurrentStep != StepGuestInfo {
		t.Fatalf("cursor advanced on invalid input to %s", resp.CurrentStep)
	}
	if _, ok := resp.FieldErrors["full_name"]; !ok {
		t.Fatalf("expected full_name error, got %v", resp.FieldErrors)
	}

	// Valid resubmission advances and stores the guest info
	resp = submitValidGuestInfo(t, env, started.SessionID)
	if resp.CurrentStep != StepPaymentMethod {
		t.Fatalf("cursor = %s, want payment-method", resp.CurrentStep)
	}
	info, ok := resp.Payload[PayloadGuestInfo].(map[string]interface{})
	if !ok {
		t.Fatal("payload missing guest_info")
	}
	if info["full_name"] != "Amara Clarke" {
		t.Fatalf("guest_info full_name = %v", info["full_name"])
	}
}

func TestOnlineMethodsRouteToCardStep(t *testing.T) {
	for _, method := range []payments.Method{payments.MethodCard, payments.MethodLynk, payments.MethodWiPay, payments.MethodApplePay, payments.MethodGooglePay} {
		slot := openSlot()
		env := newTestEnv(slot)
		started := startSession(t, env, slot.ID)
		submitValidGuestInfo(t, env, started.SessionID)

		resp, err := env.svc.SelectPaymentMethod(context.Background(), started.SessionID, method)
		if err != nil {
			t.Fatalf("SelectPaymentMethod(%s) error = %v", method, err)
		}
		if resp.CurrentStep != StepCardPayment {
			t.Fatalf("cursor after %s = %s, want card-payment", method, resp.CurrentStep)
		}
		if len(env.bookings.created) != 0 {
			t.Fatalf("%s selection must not create a booking yet", method)
		}
	}
}

func TestWalletMethodConfirmsWithoutCardFields(t *testing.T) {
	slot := openSlot()
	env := newTestEnv(slot)
	started := startSession(t, env, slot.ID)
	submitValidGuestInfo(t, env, started.SessionID)

	if _, err := env.svc.SelectPaymentMethod(context.Background(), started.SessionID, payments.MethodLynk); err != nil {
		t.Fatalf("SelectPaymentMethod() error = %v", err)
	}

	// Wallets authorize with the provider, so empty card fields pass
	resp, err := env.svc.SubmitCardPayment(context.Background(), started.SessionID, CardDetails{})
	if err != nil {
		t.Fatalf("SubmitCardPayment() error = %v", err)
	}
	if resp.CurrentStep != StepConfirmation {
		t.Fatalf("cursor = %s, want confirmation", resp.CurrentStep)
	}
	if resp.Status != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", resp.Status)
	}
}

func TestCashBypassesCardStep(t *testing.T) {
	slot := openSlot()
	env := newTestEnv(slot)
	started := startSession(t, env, slot.ID)
	submitValidGuestInfo(t, env, started.SessionID)

	resp, err := env.svc.SelectPaymentMethod(context.Background(), started.SessionID, payments.MethodCash)
	if err != nil {
		t.Fatalf("SelectPaymentMethod() error = %v", err)
	}
	if resp.CurrentStep != StepConfirmation {
		t.Fatalf("cursor = %s, want confirmation (card step skipped)", resp.CurrentStep)
	}
	if resp.Status != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", resp.Status)
	}
	if resp.Payload[PayloadReference] == nil {
		t.Fatal("booking reference missing after cash confirmation")
	}
	if len(env.bookings.created) != 1 || env.bookings.created[0].Method != payments.MethodCash {
		t.Fatal("expected one cash booking created")
	}
}

func TestCardPaymentConfirms(t *testing.T) {
	slot := openSlot()
	env := newTestEnv(slot)
	started := startSession(t, env, slot.ID)
	submitValidGuestInfo(t, env, started.SessionID)
	if _, err := env.svc.SelectPaymentMethod(context.Background(), started.SessionID, payments.MethodCard); err != nil {
		t.Fatalf("SelectPaymentMethod() error = %v", err)
	}

	resp, err := env.svc.SubmitCardPayment(context.Background(), started.SessionID, CardDetails{
		Number:     "4111111111111111",
		HolderName: "Amara Clarke",
		Expiry:     "12/28",
		CVC:        "123",
	})
	if err != nil {
		t.Fatalf("SubmitCardPayment() error = %v", err)
	}
	if resp.Status != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", resp.Status)
	}
	if resp.CurrentStep != StepConfirmation {
		t.Fatalf("cursor = %s, want confirmation", resp.CurrentStep)
	}
	// Amount is slot price times the party size
	if got := env.bookings.created[0].TotalAmount; got != 240 {
		t.Fatalf("total amount = %v, want 240", got)
	}
}

func TestPaymentFailureKeepsCursorForRetry(t *testing.T) {
	slot := openSlot()
	env := newTestEnv(slot)
	env.bookings.confirmErr = errors.New("gateway unavailable")

	started := startSession(t, env, slot.ID)
	submitValidGuestInfo(t, env, started.SessionID)
	if _, err := env.svc.SelectPaymentMethod(context.Background(), started.SessionID, payments.MethodCard); err != nil {
		t.Fatalf("SelectPaymentMethod() error = %v", err)
	}

	card := CardDetails{Number: "4111111111111111", HolderName: "Amara Clarke", Expiry: "12/28", CVC: "123"}
	resp, err := env.svc.SubmitCardPayment(context.Background(), started.SessionID, card)
	if err != nil {
		t.Fatalf("SubmitCardPayment() error = %v", err)
	}
	if resp.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", resp.Status)
	}
	if resp.CurrentStep != StepCardPayment {
		t.Fatalf("cursor = %s, want card-payment so the user can retry", resp.CurrentStep)
	}
	if resp.Message == "" {
		t.Fatal("expected a user-facing failure message")
	}

	// Retry after the gateway recovers reuses the booking
	env.bookings.confirmErr = nil
	resp, err = env.svc.SubmitCardPayment(context.Background(), started.SessionID, card)
	if err != nil {
		t.Fatalf("retry SubmitCardPayment() error = %v", err)
	}
	if resp.Status != StatusConfirmed {
		t.Fatalf("status after retry = %s, want confirmed", resp.Status)
	}
	if env.bookings.retried != 1 {
		t.Fatalf("retried %d times, want 1 (no duplicate booking)", env.bookings.retried)
	}
	if len(env.bookings.created) != 1 {
		t.Fatalf("created %d bookings, want 1", len(env.bookings.created))
	}
}

func TestStartRejectsDeactivatedSlot(t *testing.T) {
	slot := openSlot()
	slot.Active = false
	env := newTestEnv(slot)

	_, err := env.svc.Start(context.Background(), StartCheckoutRequest{SlotID: slot.ID})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("Start() on a cancelled departure error = %v, want ErrSlotUnavailable", err)
	}
}

func TestFullSlotRoutesToWaitlist(t *testing.T) {
	slot := fullSlot()
	env := newTestEnv(slot)
	started := startSession(t, env, slot.ID)

	if len(started.Steps) != 2 || started.Steps[1] != StepWaitlistJoin {
		t.Fatalf("steps = %v, want guest-info then waitlist-join", started.Steps)
	}

	submitValidGuestInfo(t, env, started.SessionID)

	resp, err := env.svc.JoinWaitlist(context.Background(), started.SessionID)
	if err != nil {
		t.Fatalf("JoinWaitlist() error = %v", err)
	}
	if env.waitlist.joined != 1 {
		t.Fatalf("waitlist joins = %d, want 1", env.waitlist.joined)
	}
	if resp.Payload["waitlist_position"] != 1 {
		t.Fatalf("waitlist_position = %v, want 1", resp.Payload["waitlist_position"])
	}
	if len(env.bookings.created) != 0 {
		t.Fatal("full slot must not create a booking")
	}
}

func TestOperationsRejectWrongStep(t *testing.T) {
	slot := openSlot()
	env := newTestEnv(slot)
	started := startSession(t, env, slot.ID)

	if _, err := env.svc.SelectPaymentMethod(context.Background(), started.SessionID, payments.MethodCard); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("SelectPaymentMethod on guest-info step error = %v, want ErrWrongStep", err)
	}
	if _, err := env.svc.SubmitCardPayment(context.Background(), started.SessionID, CardDetails{}); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("SubmitCardPayment on guest-info step error = %v, want ErrWrongStep", err)
	}
	if _, err := env.svc.JoinWaitlist(context.Background(), started.SessionID); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("JoinWaitlist on open-slot flow error = %v, want ErrWrongStep", err)
	}
}

func TestAbandonDeletesSession(t *testing.T) {
	slot := openSlot()
	env := newTestEnv(slot)
	started := startSession(t, env, slot.ID)

	if err := env.svc.Abandon(context.Background(), started.SessionID); err != nil {
		t.Fatalf("Abandon() error = %v", err)
	}
	if _, err := env.svc.Get(context.Background(), started.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get() after abandon error = %v, want ErrSessionNotFound", err)
	}
}
