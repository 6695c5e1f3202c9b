package waitlist

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	entries map[uuid.UUID]*WaitlistEntry
	queues  map[uuid.UUID][]uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		entries: make(map[uuid.UUID]*WaitlistEntry),
		queues:  make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *fakeRepo) Create(ctx context.Context, e *WaitlistEntry) error {
	clone := *e
	r.entries[e.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*WaitlistEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *fakeRepo) FindActiveByContact(ctx context.Context, slotID uuid.UUID, email string) (*WaitlistEntry, error) {
	for _, e := range r.entries {
		if e.SlotID == slotID && e.GuestEmail == email && (e.Status == StatusActive || e.Status == StatusNotified) {
			clone := *e
			return &clone, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (r *fakeRepo) ListBySlot(ctx context.Context, slotID uuid.UUID, statuses []Status) ([]WaitlistEntry, error) {
	var out []WaitlistEntry
	for _, e := range r.entries {
		if e.SlotID != slotID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if e.Status == st {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeRepo) NextActive(ctx context.Context, slotID uuid.UUID) (*WaitlistEntry, error) {
	list, _ := r.ListBySlot(ctx, slotID, []Status{StatusActive})
	if len(list) == 0 {
		return nil, ErrEntryNotFound
	}
	clone := list[0]
	return &clone, nil
}

func (r *fakeRepo) CountActive(ctx context.Context, slotID uuid.UUID) (int64, error) {
	list, _ := r.ListBySlot(ctx, slotID, []Status{StatusActive})
	return int64(len(list)), nil
}

func (r *fakeRepo) SlotsWithNotified(ctx context.Context) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, e := range r.entries {
		if e.Status == StatusNotified && !seen[e.SlotID] {
			seen[e.SlotID] = true
			out = append(out, e.SlotID)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, e *WaitlistEntry) error {
	clone := *e
	r.entries[e.ID] = &clone
	return nil
}

func (r *fakeRepo) PushQueue(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) (int64, error) {
	r.queues[slotID] = append(r.queues[slotID], entryID)
	return int64(len(r.queues[slotID])), nil
}

func (r *fakeRepo) RemoveFromQueue(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) error {
	q := r.queues[slotID]
	for i, id := range q {
		if id == entryID {
			r.queues[slotID] = append(q[:i], q[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRepo) QueuePosition(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) (int64, error) {
	for i, id := range r.queues[slotID] {
		if id == entryID {
			return int64(i + 1), nil
		}
	}
	return 0, ErrEntryNotFound
}

type fakeNotifier struct {
	notified []uuid.UUID
}

func (n *fakeNotifier) NotifySpotAvailable(ctx context.Context, e *WaitlistEntry) error {
	n.notified = append(n.notified, e.ID)
	return nil
}

func TestJoinAssignsSequentialPositions(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	slotID := uuid.New()

	p1, err := svc.Join(context.Background(), slotID, nil, "Amara Clarke", "amara@example.com", "8765550100")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	p2, err := svc.Join(context.Background(), slotID, nil, "Devon Lee", "devon@example.com", "8765550101")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if p1 != 1 || p2 != 2 {
		t.Fatalf("positions = %d, %d; want 1, 2", p1, p2)
	}
}

func TestJoinIsIdempotentPerEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	slotID := uuid.New()

	p1, _ := svc.Join(context.Background(), slotID, nil, "Amara Clarke", "amara@example.com", "8765550100")
	p2, err := svc.Join(context.Background(), slotID, nil, "Amara Clarke", "amara@example.com", "8765550100")
	if err != nil {
		t.Fatalf("second Join() error = %v", err)
	}
	if p1 != p2 {
		t.Fatalf("second join position = %d, want %d", p2, p1)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("created %d entries, want 1", len(repo.entries))
	}
}

func TestProcessSlotOpeningNotifiesInOrder(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)
	slotID := uuid.New()

	svc.Join(context.Background(), slotID, nil, "First Guest", "first@example.com", "8765550100")
	svc.Join(context.Background(), slotID, nil, "Second Guest", "second@example.com", "8765550101")
	svc.Join(context.Background(), slotID, nil, "Third Guest", "third@example.com", "8765550102")

	notified, err := svc.ProcessSlotOpening(context.Background(), slotID, 2)
	if err != nil {
		t.Fatalf("ProcessSlotOpening() error = %v", err)
	}
	if notified != 2 {
		t.Fatalf("notified = %d, want 2", notified)
	}
	if len(notifier.notified) != 2 {
		t.Fatalf("notifier calls = %d, want 2", len(notifier.notified))
	}

	first, _ := repo.FindActiveByContact(context.Background(), slotID, "first@example.com")
	if first.Status != StatusNotified {
		t.Fatalf("first entry status = %s, want NOTIFIED", first.Status)
	}
	if first.ExpiresAt == nil {
		t.Fatal("notified entry should have a claim window")
	}

	third, _ := repo.FindActiveByContact(context.Background(), slotID, "third@example.com")
	if third.Status != StatusActive {
		t.Fatalf("third entry status = %s, want ACTIVE", third.Status)
	}
}

func TestConvertRequiresNotifiedStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	slotID := uuid.New()

	svc.Join(context.Background(), slotID, nil, "Amara Clarke", "amara@example.com", "8765550100")
	entry, _ := repo.FindActiveByContact(context.Background(), slotID, "amara@example.com")

	if err := svc.Convert(context.Background(), entry.ID); !errors.Is(err, ErrNothingToClaim) {
		t.Fatalf("Convert() on active entry error = %v, want ErrNothingToClaim", err)
	}

	if _, err := svc.ProcessSlotOpening(context.Background(), slotID, 1); err != nil {
		t.Fatalf("ProcessSlotOpening() error = %v", err)
	}
	entry, _ = repo.GetByID(context.Background(), entry.ID)
	if err := svc.Convert(context.Background(), entry.ID); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	entry, _ = repo.GetByID(context.Background(), entry.ID)
	if entry.Status != StatusConverted {
		t.Fatalf("status = %s, want CONVERTED", entry.Status)
	}
}

func TestExpireOverdue(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	slotID := uuid.New()

	past := time.Now().Add(-time.Minute)
	entry := &WaitlistEntry{
		ID:         uuid.New(),
		SlotID:     slotID,
		GuestName:  "Late Guest",
		GuestEmail: "late@example.com",
		Position:   1,
		Status:     StatusNotified,
		JoinedAt:   time.Now().Add(-time.Hour),
		ExpiresAt:  &past,
	}
	repo.Create(context.Background(), entry)

	expired, err := svc.ExpireOverdue(context.Background(), slotID)
	if err != nil {
		t.Fatalf("ExpireOverdue() error = %v", err)
	}
	if expired != 1 {
		t.Fatalf("expired = %d, want 1", expired)
	}

	got, _ := repo.GetByID(context.Background(), entry.ID)
	if got.Status != StatusExpired {
		t.Fatalf("status = %s, want EXPIRED", got.Status)
	}
}

func TestExpireOverduePassesSpotDownTheQueue(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)
	slotID := uuid.New()

	past := time.Now().Add(-time.Minute)
	lapsed := &WaitlistEntry{
		ID:         uuid.New(),
		SlotID:     slotID,
		GuestName:  "Late Guest",
		GuestEmail: "late@example.com",
		Position:   1,
		Status:     StatusNotified,
		JoinedAt:   time.Now().Add(-time.Hour),
		ExpiresAt:  &past,
	}
	repo.Create(context.Background(), lapsed)
	svc.Join(context.Background(), slotID, nil, "Next Guest", "next@example.com", "8765550103")

	if _, err := svc.ExpireOverdue(context.Background(), slotID); err != nil {
		t.Fatalf("ExpireOverdue() error = %v", err)
	}

	next, _ := repo.FindActiveByContact(context.Background(), slotID, "next@example.com")
	if next.Status != StatusNotified {
		t.Fatalf("next entry status = %s, want NOTIFIED after a window lapses", next.Status)
	}
	if len(notifier.notified) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(notifier.notified))
	}
}

func TestCancelSlotEntriesClosesQueue(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)
	slotID := uuid.New()

	svc.Join(context.Background(), slotID, nil, "First Guest", "first@example.com", "8765550100")
	svc.Join(context.Background(), slotID, nil, "Second Guest", "second@example.com", "8765550101")
	if _, err := svc.ProcessSlotOpening(context.Background(), slotID, 1); err != nil {
		t.Fatalf("ProcessSlotOpening() error = %v", err)
	}

	closed, err := svc.CancelSlotEntries(context.Background(), slotID)
	if err != nil {
		t.Fatalf("CancelSlotEntries() error = %v", err)
	}
	if closed != 2 {
		t.Fatalf("closed = %d, want 2", closed)
	}

	list, _ := repo.ListBySlot(context.Background(), slotID, nil)
	for _, e := range list {
		if e.Status != StatusCancelled {
			t.Fatalf("entry %s status = %s, want CANCELLED", e.GuestEmail, e.Status)
		}
	}
	if len(repo.queues[slotID]) != 0 {
		t.Fatalf("queue still holds %d entries after closing", len(repo.queues[slotID]))
	}

	// A closed queue produces no spot offers when capacity frees later
	notified, err := svc.ProcessSlotOpening(context.Background(), slotID, 2)
	if err != nil {
		t.Fatalf("ProcessSlotOpening() after close error = %v", err)
	}
	if notified != 0 {
		t.Fatalf("notified = %d after queue closed, want 0", notified)
	}
}

func TestLeaveCancelsEntry(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	slotID := uuid.New()

	svc.Join(context.Background(), slotID, nil, "Amara Clarke", "amara@example.com", "8765550100")
	entry, _ := repo.FindActiveByContact(context.Background(), slotID, "amara@example.com")

	if err := svc.Leave(context.Background(), entry.ID); err != nil {
		t.Fatalf("Leave() error = %v", err)
	}
	got, _ := repo.GetByID(context.Background(), entry.ID)
	if got.Status != StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", got.Status)
	}
	if len(repo.queues[slotID]) != 0 {
		t.Fatal("entry still in queue after leaving")
	}
}
