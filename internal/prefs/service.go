package prefs

import (
	"context"
	"strings"
)

type Service interface {
	// Get returns the user's flags, falling back to defaults for users
	// who have never written any
	Get(ctx context.Context, userID string) (Preferences, error)

	// Update applies only the fields present in the request
	Update(ctx context.Context, userID string, req UpdatePreferencesRequest) (Preferences, error)

	Reset(ctx context.Context, userID string) error
}

type service struct {
	store           Store
	defaultCurrency string
}

func NewService(store Store, defaultCurrency string) Service {
	return &service{store: store, defaultCurrency: defaultCurrency}
}

func (s *service) Get(ctx context.Context, userID string) (Preferences, error) {
	prefs, found, err := s.store.Load(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	if !found || prefs.Currency == "" {
		prefs.Currency = s.defaultCurrency
	}
	return prefs, nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdatePreferencesRequest) (Preferences, error) {
	fields := make(map[string]interface{})
	if req.Visited != nil {
		fields[fieldVisited] = boolField(*req.Visited)
	}
	if req.Onboarded != nil {
		fields[fieldOnboarded] = boolField(*req.Onboarded)
	}
	if req.HasSwiped != nil {
		fields[fieldHasSwiped] = boolField(*req.HasSwiped)
	}
	if req.Currency != nil {
		fields[fieldCurrency] = strings.ToUpper(*req.Currency)
	}

	if err := s.store.SetFields(ctx, userID, fields); err != nil {
		return Preferences{}, err
	}
	return s.Get(ctx, userID)
}

func (s *service) Reset(ctx context.Context, userID string) error {
	return s.store.Clear(ctx, userID)
}
