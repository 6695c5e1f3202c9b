package cancellation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tourflo/internal/bookings"
	"tourflo/pkg/logger"
)

// BookingCanceller is the slice of the bookings service this package
// needs to tear down a slot's bookings
type BookingCanceller interface {
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]bookings.Booking, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, userID *uuid.UUID) (*bookings.BookingResponse, error)
}

// SlotDeactivator takes the cancelled departure off sale
type SlotDeactivator interface {
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// WaitlistNotifier tells queued travelers the departure is off
type WaitlistNotifier interface {
	NotifySlotCancelled(ctx context.Context, slotID uuid.UUID) (int, error)
}

// WaitlistCloser shuts down the cancelled slot's queue so released
// capacity cannot trigger spot offers
type WaitlistCloser interface {
	CancelSlotEntries(ctx context.Context, slotID uuid.UUID) (int, error)
}

// GuideNotifier reaches the operator's guides assigned to the slot
type GuideNotifier interface {
	NotifyGuides(ctx context.Context, slotID uuid.UUID, reason string) (int, error)
}

type Service interface {
	// CancelSlot takes the slot off sale, closes its waitlist, cancels
	// every booking, tallies refunds if requested, and notifies guests,
	// guides and the waitlist. The record is terminal once written.
	CancelSlot(ctx context.Context, operatorID uuid.UUID, req CancelSlotRequest) (*CancellationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CancellationResponse, error)
	ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]CancellationResponse, error)
}

type service struct {
	repo          Repository
	bookings      BookingCanceller
	slots         SlotDeactivator
	waitlistQueue WaitlistCloser
	waitlist      WaitlistNotifier
	guides        GuideNotifier
}

func NewService(repo Repository, bookingCanceller BookingCanceller, slotDeactivator SlotDeactivator, waitlistCloser WaitlistCloser, waitlistNotifier WaitlistNotifier, guideNotifier GuideNotifier) Service {
	return &service{
		repo:          repo,
		bookings:      bookingCanceller,
		slots:         slotDeactivator,
		waitlistQueue: waitlistCloser,
		waitlist:      waitlistNotifier,
		guides:        guideNotifier,
	}
}

func (s *service) CancelSlot(ctx context.Context, operatorID uuid.UUID, req CancelSlotRequest) (*CancellationResponse, error) {
	if !req.Reason.IsValid() {
		return nil, ErrInvalidReason
	}

	if _, err := s.repo.GetBySlot(ctx, req.SlotID); err == nil {
		return nil, ErrAlreadyCancelled
	} else if !errors.Is(err, ErrCancellationNotFound) {
		return nil, err
	}

	// The slot comes off sale before anything else happens: a cancelled
	// departure must not accept new checkouts or reservations
	if err := s.slots.Deactivate(ctx, req.SlotID); err != nil {
		return nil, err
	}

	// Queued travelers hear the departure is off, then the queue closes
	// so the capacity released below cannot produce spot offers
	notifiedWaitlist := 0
	if s.waitlist != nil {
		n, err := s.waitlist.NotifySlotCancelled(ctx, req.SlotID)
		if err != nil {
			logger.GetDefault().Warn("failed to notify waitlist of slot cancellation", "slot_id", req.SlotID, "error", err)
		} else {
			notifiedWaitlist = n
		}
	}
	if _, err := s.waitlistQueue.CancelSlotEntries(ctx, req.SlotID); err != nil {
		return nil, err
	}

	slotBookings, err := s.bookings.ListBySlot(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}

	notifiedGuests := 0
	refundAmount := 0.0
	for i := range slotBookings {
		b := &slotBookings[i]
		if !b.Status.CanTransitionTo(bookings.StatusCancelled) {
			continue
		}
		wasConfirmed := b.Status == bookings.StatusConfirmed
		if _, err := s.bookings.Cancel(ctx, b.ID, nil); err != nil {
			logger.GetDefault().Error("failed to cancel booking during slot cancellation",
				"booking_id", b.ID, "slot_id", req.SlotID, "error", err)
			continue
		}
		notifiedGuests++
		if req.RefundRequested && wasConfirmed {
			refundAmount += b.TotalAmount
		}
	}

	notifiedGuides := 0
	if s.guides != nil {
		n, err := s.guides.NotifyGuides(ctx, req.SlotID, string(req.Reason))
		if err != nil {
			logger.GetDefault().Warn("failed to notify guides of slot cancellation", "slot_id", req.SlotID, "error", err)
		} else {
			notifiedGuides = n
		}
	}

	record := &SlotCancellation{
		SlotID:           req.SlotID,
		OperatorID:       operatorID,
		Reason:           req.Reason,
		Note:             req.Note,
		RefundRequested:  req.RefundRequested,
		RefundAmount:     refundAmount,
		NotifiedGuests:   notifiedGuests,
		NotifiedGuides:   notifiedGuides,
		NotifiedWaitlist: notifiedWaitlist,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	logger.GetDefault().LogSlotCancellation(ctx, req.SlotID.String(), operatorID.String(), string(req.Reason))

	resp := toCancellationResponse(record)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*CancellationResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCancellationResponse(record)
	return &resp, nil
}

func (s *service) ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]CancellationResponse, error) {
	list, err := s.repo.ListByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	items := make([]CancellationResponse, 0, len(list))
	for i := range list {
		items = append(items, toCancellationResponse(&list[i]))
	}
	return items, nil
}
