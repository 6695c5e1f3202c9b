package cancellation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"tourflo/internal/bookings"
)

type fakeRepo struct {
	records map[uuid.UUID]*SlotCancellation
	bySlot  map[uuid.UUID]*SlotCancellation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		records: make(map[uuid.UUID]*SlotCancellation),
		bySlot:  make(map[uuid.UUID]*SlotCancellation),
	}
}

func (r *fakeRepo) Create(ctx context.Context, c *SlotCancellation) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clone := *c
	r.records[c.ID] = &clone
	r.bySlot[c.SlotID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*SlotCancellation, error) {
	c, ok := r.records[id]
	if !ok {
		return nil, ErrCancellationNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeRepo) GetBySlot(ctx context.Context, slotID uuid.UUID) (*SlotCancellation, error) {
	c, ok := r.bySlot[slotID]
	if !ok {
		return nil, ErrCancellationNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeRepo) ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]SlotCancellation, error) {
	var out []SlotCancellation
	for _, c := range r.records {
		if c.OperatorID == operatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeBookingCanceller struct {
	bookings  []bookings.Booking
	cancelled []uuid.UUID
}

func (f *fakeBookingCanceller) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]bookings.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingCanceller) Cancel(ctx context.Context, bookingID uuid.UUID, userID *uuid.UUID) (*bookings.BookingResponse, error) {
	f.cancelled = append(f.cancelled, bookingID)
	return &bookings.BookingResponse{ID: bookingID, Status: bookings.StatusCancelled}, nil
}

type fakeSlotDeactivator struct {
	deactivated []uuid.UUID
}

func (f *fakeSlotDeactivator) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

type fakeWaitlistCloser struct {
	closedSlots []uuid.UUID
	perSlot     int
}

func (f *fakeWaitlistCloser) CancelSlotEntries(ctx context.Context, slotID uuid.UUID) (int, error) {
	f.closedSlots = append(f.closedSlots, slotID)
	return f.perSlot, nil
}

type fakeWaitlistNotifier struct{ count int }

func (f *fakeWaitlistNotifier) NotifySlotCancelled(ctx context.Context, slotID uuid.UUID) (int, error) {
	return f.count, nil
}

type fakeGuideNotifier struct{ count int }

func (f *fakeGuideNotifier) NotifyGuides(ctx context.Context, slotID uuid.UUID, reason string) (int, error) {
	return f.count, nil
}

func slotBooking(status bookings.Status, amount float64) bookings.Booking {
	return bookings.Booking{
		ID:          uuid.New(),
		Status:      status,
		TotalAmount: amount,
	}
}

func TestCancelSlotCancelsBookingsAndTalliesRefund(t *testing.T) {
	repo := newFakeRepo()
	bc := &fakeBookingCanceller{bookings: []bookings.Booking{
		slotBooking(bookings.StatusConfirmed, 120),
		slotBooking(bookings.StatusConfirmed, 240),
		slotBooking(bookings.StatusPending, 80),
		slotBooking(bookings.StatusCancelled, 50), // already terminal, skipped
	}}
	svc := NewService(repo, bc, &fakeSlotDeactivator{}, &fakeWaitlistCloser{}, &fakeWaitlistNotifier{count: 3}, &fakeGuideNotifier{count: 2})

	operatorID := uuid.New()
	resp, err := svc.CancelSlot(context.Background(), operatorID, CancelSlotRequest{
		SlotID:          uuid.New(),
		Reason:          ReasonWeather,
		RefundRequested: true,
	})
	if err != nil {
		t.Fatalf("CancelSlot() error = %v", err)
	}

	if len(bc.cancelled) != 3 {
		t.Fatalf("cancelled %d bookings, want 3", len(bc.cancelled))
	}
	// Refunds only cover confirmed bookings that were actually charged
	if resp.RefundAmount != 360 {
		t.Fatalf("refund amount = %v, want 360", resp.RefundAmount)
	}
	if resp.NotifiedCounts.Guests != 3 {
		t.Fatalf("notified guests = %d, want 3", resp.NotifiedCounts.Guests)
	}
	if resp.NotifiedCounts.Waitlist != 3 {
		t.Fatalf("notified waitlist = %d, want 3", resp.NotifiedCounts.Waitlist)
	}
	if resp.NotifiedCounts.Guides != 2 {
		t.Fatalf("notified guides = %d, want 2", resp.NotifiedCounts.Guides)
	}
}

func TestCancelSlotTakesSlotOffSaleAndClosesQueue(t *testing.T) {
	repo := newFakeRepo()
	bc := &fakeBookingCanceller{bookings: []bookings.Booking{
		slotBooking(bookings.StatusConfirmed, 120),
	}}
	deactivator := &fakeSlotDeactivator{}
	closer := &fakeWaitlistCloser{perSlot: 2}
	svc := NewService(repo, bc, deactivator, closer, nil, nil)

	slotID := uuid.New()
	if _, err := svc.CancelSlot(context.Background(), uuid.New(), CancelSlotRequest{
		SlotID: slotID,
		Reason: ReasonWeather,
	}); err != nil {
		t.Fatalf("CancelSlot() error = %v", err)
	}

	if len(deactivator.deactivated) != 1 || deactivator.deactivated[0] != slotID {
		t.Fatalf("deactivated slots = %v, want [%s]", deactivator.deactivated, slotID)
	}
	if len(closer.closedSlots) != 1 || closer.closedSlots[0] != slotID {
		t.Fatalf("closed queues = %v, want [%s]", closer.closedSlots, slotID)
	}
}

func TestCancelSlotWithoutRefund(t *testing.T) {
	repo := newFakeRepo()
	bc := &fakeBookingCanceller{bookings: []bookings.Booking{
		slotBooking(bookings.StatusConfirmed, 120),
	}}
	svc := NewService(repo, bc, &fakeSlotDeactivator{}, &fakeWaitlistCloser{}, nil, nil)

	resp, err := svc.CancelSlot(context.Background(), uuid.New(), CancelSlotRequest{
		SlotID: uuid.New(),
		Reason: ReasonLowBookings,
	})
	if err != nil {
		t.Fatalf("CancelSlot() error = %v", err)
	}
	if resp.RefundAmount != 0 {
		t.Fatalf("refund amount = %v, want 0 when refund not requested", resp.RefundAmount)
	}
}

func TestCancelSlotRejectsUnknownReason(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeBookingCanceller{}, &fakeSlotDeactivator{}, &fakeWaitlistCloser{}, nil, nil)

	_, err := svc.CancelSlot(context.Background(), uuid.New(), CancelSlotRequest{
		SlotID: uuid.New(),
		Reason: Reason("vibes"),
	})
	if !errors.Is(err, ErrInvalidReason) {
		t.Fatalf("error = %v, want ErrInvalidReason", err)
	}
}

func TestCancelSlotIsTerminal(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeBookingCanceller{}, &fakeSlotDeactivator{}, &fakeWaitlistCloser{}, nil, nil)
	slotID := uuid.New()

	if _, err := svc.CancelSlot(context.Background(), uuid.New(), CancelSlotRequest{
		SlotID: slotID,
		Reason: ReasonEquipment,
	}); err != nil {
		t.Fatalf("first CancelSlot() error = %v", err)
	}

	_, err := svc.CancelSlot(context.Background(), uuid.New(), CancelSlotRequest{
		SlotID: slotID,
		Reason: ReasonOther,
	})
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("second CancelSlot() error = %v, want ErrAlreadyCancelled", err)
	}
}

func TestAllReasonsAreValid(t *testing.T) {
	for _, r := range AllReasons() {
		if !r.IsValid() {
			t.Fatalf("reason %s should be valid", r)
		}
	}
}
