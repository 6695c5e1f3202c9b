package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tourflo/pkg/logger"
)

// Notifier tells a queued traveler a spot opened up
type Notifier interface {
	NotifySpotAvailable(ctx context.Context, entry *WaitlistEntry) error
}

type Service interface {
	// Join queues a traveler for a full slot and returns their 1-based
	// position. The signature doubles as the checkout flow's gateway.
	Join(ctx context.Context, slotID uuid.UUID, userID *uuid.UUID, name, email, phone string) (int, error)
	Leave(ctx context.Context, entryID uuid.UUID) error
	Position(ctx context.Context, entryID uuid.UUID) (*PositionResponse, error)
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]EntryResponse, error)

	// ProcessSlotOpening notifies up to freedSpots queued travelers that
	// they can book, giving each a claim window. Returns how many were
	// notified.
	ProcessSlotOpening(ctx context.Context, slotID uuid.UUID, freedSpots int) (int, error)

	// Convert marks a notified entry as having claimed its spot
	Convert(ctx context.Context, entryID uuid.UUID) error

	// ExpireOverdue moves notified entries past their claim window to
	// EXPIRED and offers their spots to the next in line. Called from
	// the background sweeper.
	ExpireOverdue(ctx context.Context, slotID uuid.UUID) (int, error)

	// CancelSlotEntries closes the queue for a cancelled departure,
	// moving ACTIVE and NOTIFIED entries to CANCELLED so no further
	// spot offers go out. Returns how many entries were closed.
	CancelSlotEntries(ctx context.Context, slotID uuid.UUID) (int, error)
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) Join(ctx context.Context, slotID uuid.UUID, userID *uuid.UUID, name, email, phone string) (int, error) {
	if email == "" {
		return 0, fmt.Errorf("waitlist join requires an email")
	}

	if existing, err := s.repo.FindActiveByContact(ctx, slotID, email); err == nil {
		// Idempotent: re-joining returns the existing position
		return existing.Position, nil
	} else if !errors.Is(err, ErrEntryNotFound) {
		return 0, err
	}

	active, err := s.repo.CountActive(ctx, slotID)
	if err != nil {
		return 0, err
	}
	if active >= MaxQueueLength {
		return 0, ErrQueueFull
	}

	entry := &WaitlistEntry{
		ID:         uuid.New(),
		SlotID:     slotID,
		UserID:     userID,
		GuestName:  name,
		GuestEmail: email,
		GuestPhone: phone,
		Status:     StatusActive,
		JoinedAt:   time.Now(),
	}

	position, err := s.repo.PushQueue(ctx, slotID, entry.ID)
	if err != nil {
		return 0, err
	}
	entry.Position = int(position)

	if err := s.repo.Create(ctx, entry); err != nil {
		if remErr := s.repo.RemoveFromQueue(ctx, slotID, entry.ID); remErr != nil {
			logger.GetDefault().Error("failed to roll back queue push", "entry_id", entry.ID, "error", remErr)
		}
		return 0, err
	}

	logger.GetDefault().Info("waitlist joined",
		"slot_id", slotID,
		"entry_id", entry.ID,
		"position", entry.Position,
	)
	return entry.Position, nil
}

func (s *service) Leave(ctx context.Context, entryID uuid.UUID) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !entry.Status.CanTransitionTo(StatusCancelled) {
		return fmt.Errorf("%w: %s -> CANCELLED", ErrInvalidStatus, entry.Status)
	}

	entry.Status = StatusCancelled
	if err := s.repo.Update(ctx, entry); err != nil {
		return err
	}
	return s.repo.RemoveFromQueue(ctx, entry.SlotID, entry.ID)
}

func (s *service) Position(ctx context.Context, entryID uuid.UUID) (*PositionResponse, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	position := int64(entry.Position)
	if live, err := s.repo.QueuePosition(ctx, entry.SlotID, entry.ID); err == nil {
		position = live
	}

	return &PositionResponse{
		EntryID:  entry.ID,
		SlotID:   entry.SlotID,
		Position: int(position),
		Status:   entry.Status,
	}, nil
}

func (s *service) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]EntryResponse, error) {
	list, err := s.repo.ListBySlot(ctx, slotID, nil)
	if err != nil {
		return nil, err
	}
	items := make([]EntryResponse, 0, len(list))
	for i := range list {
		items = append(items, toEntryResponse(&list[i]))
	}
	return items, nil
}

func (s *service) ProcessSlotOpening(ctx context.Context, slotID uuid.UUID, freedSpots int) (int, error) {
	notified := 0
	for notified < freedSpots {
		entry, err := s.repo.NextActive(ctx, slotID)
		if err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				break
			}
			return notified, err
		}

		expires := time.Now().Add(BookingWindowDuration)
		entry.Status = StatusNotified
		now := time.Now()
		entry.NotifiedAt = &now
		entry.ExpiresAt = &expires
		if err := s.repo.Update(ctx, entry); err != nil {
			return notified, err
		}
		if err := s.repo.RemoveFromQueue(ctx, slotID, entry.ID); err != nil {
			logger.GetDefault().Warn("failed to trim waitlist queue", "entry_id", entry.ID, "error", err)
		}

		if s.notifier != nil {
			if err := s.notifier.NotifySpotAvailable(ctx, entry); err != nil {
				logger.GetDefault().Warn("failed to notify waitlisted traveler", "entry_id", entry.ID, "error", err)
			}
		}
		notified++
	}
	return notified, nil
}

func (s *service) Convert(ctx context.Context, entryID uuid.UUID) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != StatusNotified {
		return ErrNothingToClaim
	}
	if entry.IsExpired() {
		entry.Status = StatusExpired
		if err := s.repo.Update(ctx, entry); err != nil {
			return err
		}
		return ErrNothingToClaim
	}

	entry.Status = StatusConverted
	return s.repo.Update(ctx, entry)
}

func (s *service) ExpireOverdue(ctx context.Context, slotID uuid.UUID) (int, error) {
	list, err := s.repo.ListBySlot(ctx, slotID, []Status{StatusNotified})
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range list {
		entry := &list[i]
		if entry.ExpiresAt == nil || time.Now().Before(*entry.ExpiresAt) {
			continue
		}
		entry.Status = StatusExpired
		if err := s.repo.Update(ctx, entry); err != nil {
			return expired, err
		}
		expired++
	}

	// A lapsed claim window does not shrink capacity, so the spot moves
	// down the queue
	if expired > 0 {
		if _, err := s.ProcessSlotOpening(ctx, slotID, expired); err != nil {
			logger.GetDefault().Warn("failed to pass expired spots down the queue", "slot_id", slotID, "error", err)
		}
	}
	return expired, nil
}

func (s *service) CancelSlotEntries(ctx context.Context, slotID uuid.UUID) (int, error) {
	list, err := s.repo.ListBySlot(ctx, slotID, []Status{StatusActive, StatusNotified})
	if err != nil {
		return 0, err
	}

	closed := 0
	for i := range list {
		entry := &list[i]
		entry.Status = StatusCancelled
		if err := s.repo.Update(ctx, entry); err != nil {
			return closed, err
		}
		if err := s.repo.RemoveFromQueue(ctx, slotID, entry.ID); err != nil {
			logger.GetDefault().Warn("failed to trim waitlist queue", "entry_id", entry.ID, "error", err)
		}
		closed++
	}
	return closed, nil
}
