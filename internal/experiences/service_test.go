package experiences

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"tourflo/pkg/cache"
)

type fakeRepo struct {
	experiences map[uuid.UUID]*Experience
	saved       map[uuid.UUID]map[uuid.UUID]bool
	getCalls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		experiences: make(map[uuid.UUID]*Experience),
		saved:       make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeRepo) Create(ctx context.Context, experience *Experience) error {
	if experience.ID == uuid.Nil {
		experience.ID = uuid.New()
	}
	f.experiences[experience.ID] = experience
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Experience, error) {
	f.getCalls++
	exp, ok := f.experiences[id]
	if !ok || !exp.Active {
		return nil, ErrExperienceNotFound
	}
	return exp, nil
}

func (f *fakeRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Experience, error) {
	var out []Experience
	for _, id := range ids {
		if exp, ok := f.experiences[id]; ok {
			out = append(out, *exp)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]Experience, int64, error) {
	var out []Experience
	for _, exp := range f.experiences {
		if !exp.Active {
			continue
		}
		if filter.Region != "" && exp.Region != filter.Region {
			continue
		}
		out = append(out, *exp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(ctx context.Context, experience *Experience) error {
	f.experiences[experience.ID] = experience
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if exp, ok := f.experiences[id]; ok {
		exp.Active = false
	}
	return nil
}

func (f *fakeRepo) SaveForUser(ctx context.Context, userID, experienceID uuid.UUID) error {
	if f.saved[userID] == nil {
		f.saved[userID] = make(map[uuid.UUID]bool)
	}
	if f.saved[userID][experienceID] {
		return ErrAlreadySaved
	}
	f.saved[userID][experienceID] = true
	return nil
}

func (f *fakeRepo) UnsaveForUser(ctx context.Context, userID, experienceID uuid.UUID) error {
	if !f.saved[userID][experienceID] {
		return ErrNotSaved
	}
	delete(f.saved[userID], experienceID)
	return nil
}

func (f *fakeRepo) IsSavedByUser(ctx context.Context, userID, experienceID uuid.UUID) (bool, error) {
	return f.saved[userID][experienceID], nil
}

func (f *fakeRepo) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]Experience, error) {
	var out []Experience
	for id := range f.saved[userID] {
		if exp, ok := f.experiences[id]; ok {
			out = append(out, *exp)
		}
	}
	return out, nil
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

func seedExperience(repo *fakeRepo) *Experience {
	exp := &Experience{
		ID:         uuid.New(),
		OperatorID: uuid.New(),
		Title:      "Blue Mountain Sunrise Hike",
		Location:   "Blue Mountains",
		Region:     "Saint Andrew",
		Category:   "hiking",
		Price:      120,
		Currency:   "USD",
		Active:     true,
	}
	repo.experiences[exp.ID] = exp
	return exp
}

func TestGetByIDServesSecondReadFromCache(t *testing.T) {
	repo := newFakeRepo()
	exp := seedExperience(repo)
	svc := NewService(repo, newMemCache())
	ctx := context.Background()

	first, err := svc.GetByID(ctx, exp.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if first.Title != exp.Title {
		t.Errorf("title = %q, want %q", first.Title, exp.Title)
	}

	callsAfterFirst := repo.getCalls
	if _, err := svc.GetByID(ctx, exp.ID); err != nil {
		t.Fatalf("GetByID() second call error = %v", err)
	}
	if repo.getCalls != callsAfterFirst {
		t.Errorf("second read hit the repository %d extra times, want cache hit", repo.getCalls-callsAfterFirst)
	}
}

func TestGetByIDUnknownExperience(t *testing.T) {
	svc := NewService(newFakeRepo(), newMemCache())

	if _, err := svc.GetByID(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown experience")
	}
}

func TestToggleSavedFlips(t *testing.T) {
	repo := newFakeRepo()
	exp := seedExperience(repo)
	svc := NewService(repo, newMemCache())
	ctx := context.Background()
	userID := uuid.New()

	resp, err := svc.ToggleSaved(ctx, userID, exp.ID)
	if err != nil {
		t.Fatalf("ToggleSaved() error = %v", err)
	}
	if !resp.Saved {
		t.Fatal("first toggle should save")
	}

	resp, err = svc.ToggleSaved(ctx, userID, exp.ID)
	if err != nil {
		t.Fatalf("ToggleSaved() error = %v", err)
	}
	if resp.Saved {
		t.Fatal("second toggle should unsave")
	}

	saved, err := svc.ListSaved(ctx, userID)
	if err != nil {
		t.Fatalf("ListSaved() error = %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("saved list has %d entries after unsave, want 0", len(saved))
	}
}

func TestDeleteHidesFromCatalog(t *testing.T) {
	repo := newFakeRepo()
	exp := seedExperience(repo)
	svc := NewService(repo, newMemCache())
	ctx := context.Background()

	if err := svc.Delete(ctx, exp.OperatorID, exp.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	list, err := svc.List(ctx, ListFilter{Region: exp.Region})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list.Experiences) != 0 {
		t.Fatalf("catalog lists %d experiences after delete, want 0", len(list.Experiences))
	}
}
