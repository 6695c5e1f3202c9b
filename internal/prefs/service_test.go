package prefs

import (
	"context"
	"testing"
)

type memStore struct {
	hashes map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{hashes: make(map[string]map[string]string)}
}

func (m *memStore) Load(ctx context.Context, userID string) (Preferences, bool, error) {
	fields, ok := m.hashes[userID]
	if !ok {
		return Preferences{}, false, nil
	}
	return fromHash(fields), true, nil
}

func (m *memStore) Save(ctx context.Context, userID string, prefs Preferences) error {
	m.hashes[userID] = make(map[string]string)
	for k, v := range prefs.toHash() {
		m.hashes[userID][k] = v.(string)
	}
	return nil
}

func (m *memStore) SetFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	if m.hashes[userID] == nil {
		m.hashes[userID] = make(map[string]string)
	}
	for k, v := range fields {
		m.hashes[userID][k] = v.(string)
	}
	return nil
}

func (m *memStore) Clear(ctx context.Context, userID string) error {
	delete(m.hashes, userID)
	return nil
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestGetDefaultsForNewUser(t *testing.T) {
	svc := NewService(newMemStore(), "USD")

	prefs, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if prefs.Visited || prefs.Onboarded || prefs.HasSwiped {
		t.Error("new user should have all flags unset")
	}
	if prefs.Currency != "USD" {
		t.Errorf("currency = %q, want default USD", prefs.Currency)
	}
}

func TestPartialUpdateLeavesOtherFlags(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, "USD")
	ctx := context.Background()

	if _, err := svc.Update(ctx, "user-1", UpdatePreferencesRequest{Visited: boolPtr(true), Currency: strPtr("jmd")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	prefs, err := svc.Update(ctx, "user-1", UpdatePreferencesRequest{Onboarded: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !prefs.Visited {
		t.Error("visited flag should survive an unrelated update")
	}
	if !prefs.Onboarded {
		t.Error("onboarded flag should be set")
	}
	if prefs.HasSwiped {
		t.Error("has_swiped was never set")
	}
	if prefs.Currency != "JMD" {
		t.Errorf("currency = %q, want JMD uppercased", prefs.Currency)
	}
}

func TestHashFieldNamesAreWireStable(t *testing.T) {
	hash := Preferences{Visited: true, HasSwiped: true, Currency: "JMD"}.toHash()

	for _, field := range []string{"visited", "onboarded", "has_swiped", "currency"} {
		if _, ok := hash[field]; !ok {
			t.Errorf("hash missing field %q", field)
		}
	}
	if hash["visited"] != "1" || hash["onboarded"] != "0" {
		t.Error("boolean flags should serialize as 1/0")
	}

	back := fromHash(map[string]string{"visited": "1", "has_swiped": "1", "currency": "JMD"})
	if !back.Visited || !back.HasSwiped || back.Onboarded || back.Currency != "JMD" {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestResetClearsFlags(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, "USD")
	ctx := context.Background()

	if _, err := svc.Update(ctx, "user-1", UpdatePreferencesRequest{Visited: boolPtr(true)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := svc.Reset(ctx, "user-1"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	prefs, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if prefs.Visited {
		t.Error("reset should clear the visited flag")
	}
}
