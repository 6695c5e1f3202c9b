package slots

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"tourflo/pkg/cache"
)

type fakeRepo struct {
	slots map[uuid.UUID]*Slot
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: make(map[uuid.UUID]*Slot)}
}

func (f *fakeRepo) Create(ctx context.Context, slot *Slot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	clone := *slot
	f.slots[slot.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeRepo) ListByExperience(ctx context.Context, experienceID uuid.UUID, from, to time.Time) ([]Slot, error) {
	var out []Slot
	for _, s := range f.slots {
		if s.ExperienceID == experienceID && s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, slot *Slot) error {
	clone := *slot
	f.slots[slot.ID] = &clone
	return nil
}

func (f *fakeRepo) IncrementBooked(ctx context.Context, id uuid.UUID, count int) error {
	s, ok := f.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	if !s.Active {
		return ErrSlotInactive
	}
	if s.Booked+count > s.Capacity {
		return ErrSlotFull
	}
	s.Booked += count
	return nil
}

func (f *fakeRepo) DecrementBooked(ctx context.Context, id uuid.UUID, count int) error {
	s, ok := f.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	s.Booked -= count
	if s.Booked < 0 {
		s.Booked = 0
	}
	return nil
}

// memCache is a map-backed stand-in for the Redis cache service
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memCache) DeletePattern(ctx context.Context, pattern string) error {
	m.entries = make(map[string][]byte)
	return nil
}

func (m *memCache) Exists(ctx context.Context, key string) bool {
	_, ok := m.entries[key]
	return ok
}

func (m *memCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memCache) Ping(ctx context.Context) error { return nil }

func seedSlot(t *testing.T, svc Service) *SlotResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), CreateSlotRequest{
		ExperienceID: uuid.New(),
		Date:         time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "06:00",
		Capacity:     8,
		Price:        120,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return resp
}

func TestDeactivateTakesSlotOffSale(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newMemCache())
	created := seedSlot(t, svc)

	if err := svc.Deactivate(context.Background(), created.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Active {
		t.Fatal("slot still active after Deactivate")
	}

	if err := svc.Reserve(context.Background(), created.ID, 1); err != ErrSlotInactive {
		t.Fatalf("Reserve() on deactivated slot error = %v, want ErrSlotInactive", err)
	}

	// Deactivating twice is a no-op
	if err := svc.Deactivate(context.Background(), created.ID); err != nil {
		t.Fatalf("second Deactivate() error = %v", err)
	}
}

func TestDeactivateRefreshesAvailability(t *testing.T) {
	repo := newFakeRepo()
	cacheSvc := newMemCache()
	svc := NewService(repo, cacheSvc)
	created := seedSlot(t, svc)

	if _, err := svc.Availability(context.Background(), created.ID); err != nil {
		t.Fatalf("Availability() error = %v", err)
	}
	if len(cacheSvc.entries) == 0 {
		t.Fatal("availability read did not populate the cache")
	}

	if err := svc.Deactivate(context.Background(), created.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if len(cacheSvc.entries) != 0 {
		t.Fatal("deactivation left stale availability in the cache")
	}
}

func TestDeactivateUnknownSlot(t *testing.T) {
	svc := NewService(newFakeRepo(), newMemCache())

	if err := svc.Deactivate(context.Background(), uuid.New()); err != ErrSlotNotFound {
		t.Fatalf("Deactivate() error = %v, want ErrSlotNotFound", err)
	}
}
