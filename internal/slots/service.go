package slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tourflo/internal/shared/constants"
	"tourflo/pkg/cache"
	"tourflo/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, req CreateSlotRequest) (*SlotResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SlotResponse, error)
	ListByExperience(ctx context.Context, experienceID uuid.UUID, from, to time.Time) ([]SlotResponse, error)

	// Availability returns the capacity snapshot for a slot. Callers must
	// treat it as advisory: the authoritative check happens when a booking
	// is confirmed.
	Availability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error)

	Reserve(ctx context.Context, id uuid.UUID, count int) error
	Release(ctx context.Context, id uuid.UUID, count int) error

	// Deactivate takes a slot off sale. The record stays for history but
	// no new checkout or reservation can touch it.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) Create(ctx context.Context, req CreateSlotRequest) (*SlotResponse, error) {
	slot := &Slot{
		ExperienceID: req.ExperienceID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		Capacity:     req.Capacity,
		Price:        req.Price,
		Active:       true,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	s.invalidateSlotCache(ctx, slot)
	resp := toSlotResponse(slot)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*SlotResponse, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSlotResponse(slot)
	return &resp, nil
}

func (s *service) ListByExperience(ctx context.Context, experienceID uuid.UUID, from, to time.Time) ([]SlotResponse, error) {
	list, err := s.repo.ListByExperience(ctx, experienceID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]SlotResponse, 0, len(list))
	for i := range list {
		items = append(items, toSlotResponse(&list[i]))
	}
	return items, nil
}

func (s *service) Availability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	key := constants.CACHE_KEY_SLOT_DETAIL + id.String()

	err := s.cache.GetOrSet(ctx, key, constants.TTL_SLOT_AVAILABILITY, func() (interface{}, error) {
		slot, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return toAvailabilityResponse(slot), nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) Reserve(ctx context.Context, id uuid.UUID, count int) error {
	if err := s.repo.IncrementBooked(ctx, id, count); err != nil {
		return err
	}
	s.invalidateByID(ctx, id)
	return nil
}

func (s *service) Release(ctx context.Context, id uuid.UUID, count int) error {
	if err := s.repo.DecrementBooked(ctx, id, count); err != nil {
		return err
	}
	s.invalidateByID(ctx, id)
	return nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !slot.Active {
		return nil
	}

	slot.Active = false
	if err := s.repo.Update(ctx, slot); err != nil {
		return err
	}

	s.invalidateByID(ctx, id)
	s.invalidateSlotCache(ctx, slot)

	logger.GetDefault().Info("slot deactivated", "slot_id", id, "experience_id", slot.ExperienceID)
	return nil
}

func (s *service) invalidateByID(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_SLOT_DETAIL+id.String()); err != nil {
		logger.GetDefault().Warn("failed to invalidate slot cache", "slot_id", id, "error", err)
	}
}

func (s *service) invalidateSlotCache(ctx context.Context, slot *Slot) {
	key := constants.BuildSlotAvailabilityKey(slot.ExperienceID.String(), slot.Date.Format("2006-01-02"))
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.GetDefault().Warn("failed to invalidate slot listing cache", "experience_id", slot.ExperienceID, "error", err)
	}
}
