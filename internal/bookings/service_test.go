package bookings

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"

	"tourflo/internal/payments"
)

type fakeRepo struct {
	bookings map[uuid.UUID]*Booking
	payments []Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *fakeRepo) Create(ctx context.Context, b *Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) GetByReference(ctx context.Context, ref string) ([]Booking, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.Reference == ref {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.SlotID == slotID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, b *Booking) error {
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) CreatePayment(ctx context.Context, p *Payment) error {
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakeRepo) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]Payment, error) {
	var out []Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeReserver struct {
	reserved map[uuid.UUID]int
	failNext error
}

func newFakeReserver() *fakeReserver {
	return &fakeReserver{reserved: make(map[uuid.UUID]int)}
}

func (f *fakeReserver) Reserve(ctx context.Context, slotID uuid.UUID, count int) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.reserved[slotID] += count
	return nil
}

func (f *fakeReserver) Release(ctx context.Context, slotID uuid.UUID, count int) error {
	f.reserved[slotID] -= count
	return nil
}

type failingProcessor struct{ err error }

func (p failingProcessor) Process(ctx context.Context, req payments.ChargeRequest) (*payments.ChargeResult, error) {
	return nil, p.err
}

type recordingNotifier struct {
	confirmed []uuid.UUID
	cancelled []uuid.UUID
}

func (n *recordingNotifier) NotifyBookingConfirmed(ctx context.Context, b *Booking) error {
	n.confirmed = append(n.confirmed, b.ID)
	return nil
}

func (n *recordingNotifier) NotifyBookingCancelled(ctx context.Context, b *Booking) error {
	n.cancelled = append(n.cancelled, b.ID)
	return nil
}

type fakeWaitlistOpener struct {
	openings map[uuid.UUID]int
}

func (f *fakeWaitlistOpener) ProcessSlotOpening(ctx context.Context, slotID uuid.UUID, freed int) (int, error) {
	if f.openings == nil {
		f.openings = make(map[uuid.UUID]int)
	}
	f.openings[slotID] += freed
	return freed, nil
}

func newTestService(repo *fakeRepo, reserver *fakeReserver, proc payments.Processor, notifier *recordingNotifier) Service {
	return newTestServiceWithWaitlist(repo, reserver, proc, notifier, nil)
}

func newTestServiceWithWaitlist(repo *fakeRepo, reserver *fakeReserver, proc payments.Processor, notifier *recordingNotifier, opener *fakeWaitlistOpener) Service {
	if proc == nil {
		proc = payments.NewSimulatedProcessor(nil, 0)
	}
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	var w WaitlistOpener
	if opener != nil {
		w = opener
	}
	return NewService(repo, reserver, proc, n, w, "TF")
}

func createPending(t *testing.T, svc Service) *BookingResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), CreateBookingRequest{
		SlotID:       uuid.New(),
		ExperienceID: uuid.New(),
		GuestName:    "Amara Clarke",
		GuestEmail:   "amara@example.com",
		GuestPhone:   "+1 876 555 0123",
		GuestCount:   2,
		Method:       payments.MethodCard,
		TotalAmount:  240.00,
		Currency:     "USD",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return resp
}

func TestReferenceIssuedOnConfirmOnly(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeReserver(), nil, nil)
	resp := createPending(t, svc)

	if resp.Status != StatusPending {
		t.Fatalf("status = %s, want PENDING", resp.Status)
	}
	if resp.Reference != "" {
		t.Fatalf("pending booking carries reference %q, want none", resp.Reference)
	}

	confirmed, err := svc.Confirm(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	pattern := regexp.MustCompile(`^[A-Z]+-[0-9A-Z]+-[0-9A-Z]{4}$`)
	if !pattern.MatchString(confirmed.Reference) {
		t.Fatalf("reference %q does not match expected format", confirmed.Reference)
	}
}

func TestFailedBookingHasNoReference(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeReserver(), failingProcessor{err: errors.New("declined")}, nil)

	created := createPending(t, svc)
	_, _ = svc.Confirm(context.Background(), created.ID)

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Reference != "" {
		t.Fatalf("failed booking carries reference %q, want none", stored.Reference)
	}
}

func TestConfirmHappyPath(t *testing.T) {
	repo := newFakeRepo()
	reserver := newFakeReserver()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, reserver, nil, notifier)

	created := createPending(t, svc)

	confirmed, err := svc.Confirm(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", confirmed.Status)
	}
	if confirmed.ConfirmedAt == nil {
		t.Fatal("expected ConfirmedAt to be set")
	}
	if got := reserver.reserved[created.SlotID]; got != 2 {
		t.Fatalf("reserved %d spots, want 2", got)
	}
	if len(repo.payments) != 1 {
		t.Fatalf("recorded %d payments, want 1", len(repo.payments))
	}
	if len(notifier.confirmed) != 1 {
		t.Fatalf("published %d confirmations, want 1", len(notifier.confirmed))
	}
}

func TestConfirmPaymentFailureReleasesSlot(t *testing.T) {
	repo := newFakeRepo()
	reserver := newFakeReserver()
	procErr := errors.New("gateway unavailable")
	svc := newTestService(repo, reserver, failingProcessor{err: procErr}, nil)

	created := createPending(t, svc)

	_, err := svc.Confirm(context.Background(), created.ID)
	if !errors.Is(err, procErr) {
		t.Fatalf("Confirm() error = %v, want gateway error", err)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Status != StatusFailed {
		t.Fatalf("status = %s, want FAILED", stored.Status)
	}
	if got := reserver.reserved[created.SlotID]; got != 0 {
		t.Fatalf("slot still holds %d spots after failed payment", got)
	}
}

func TestRetryAfterFailure(t *testing.T) {
	repo := newFakeRepo()
	reserver := newFakeReserver()
	svc := newTestService(repo, reserver, failingProcessor{err: errors.New("declined")}, nil)

	created := createPending(t, svc)
	_, _ = svc.Confirm(context.Background(), created.ID)

	retried, err := svc.Retry(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if retried.Status != StatusPending {
		t.Fatalf("status = %s, want PENDING", retried.Status)
	}

	// A second confirm with a working processor succeeds
	svc2 := newTestService(repo, reserver, nil, nil)
	confirmed, err := svc2.Confirm(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Confirm() after retry error = %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", confirmed.Status)
	}
}

func TestRetryRejectsNonFailed(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeReserver(), nil, nil)
	created := createPending(t, svc)

	_, err := svc.Retry(context.Background(), created.ID)
	if !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("Retry() on pending booking error = %v, want ErrInvalidStatusChange", err)
	}
}

func TestCancelConfirmedReleasesSlot(t *testing.T) {
	repo := newFakeRepo()
	reserver := newFakeReserver()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, reserver, nil, notifier)

	created := createPending(t, svc)
	if _, err := svc.Confirm(context.Background(), created.ID); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), created.ID, nil)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", cancelled.Status)
	}
	if got := reserver.reserved[created.SlotID]; got != 0 {
		t.Fatalf("slot still holds %d spots after cancel", got)
	}
	if len(notifier.cancelled) != 1 {
		t.Fatalf("published %d cancellations, want 1", len(notifier.cancelled))
	}
}

func TestCancelConfirmedOpensSlotToWaitlist(t *testing.T) {
	repo := newFakeRepo()
	reserver := newFakeReserver()
	opener := &fakeWaitlistOpener{}
	svc := newTestServiceWithWaitlist(repo, reserver, nil, nil, opener)

	created := createPending(t, svc)
	if _, err := svc.Confirm(context.Background(), created.ID); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if _, err := svc.Cancel(context.Background(), created.ID, nil); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if got := opener.openings[created.SlotID]; got != 2 {
		t.Fatalf("waitlist offered %d freed spots, want 2", got)
	}
}

func TestCancelPendingDoesNotOpenWaitlist(t *testing.T) {
	repo := newFakeRepo()
	opener := &fakeWaitlistOpener{}
	svc := newTestServiceWithWaitlist(repo, newFakeReserver(), nil, nil, opener)

	created := createPending(t, svc)
	if _, err := svc.Cancel(context.Background(), created.ID, nil); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	// Pending bookings never held a spot, so no capacity was freed
	if len(opener.openings) != 0 {
		t.Fatalf("waitlist opened for a pending booking: %v", opener.openings)
	}
}

func TestCancelRejectsOtherUsersBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeReserver(), nil, nil)

	owner := uuid.New()
	resp, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       &owner,
		SlotID:       uuid.New(),
		ExperienceID: uuid.New(),
		GuestName:    "Devon Lee",
		GuestEmail:   "devon@example.com",
		GuestPhone:   "876-555-0199",
		Method:       payments.MethodCash,
		TotalAmount:  80,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	stranger := uuid.New()
	if _, err := svc.Cancel(context.Background(), resp.ID, &stranger); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("Cancel() by stranger error = %v, want ErrBookingNotFound", err)
	}
}
