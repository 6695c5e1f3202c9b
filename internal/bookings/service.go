package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tourflo/internal/payments"
	"tourflo/pkg/logger"
	"tourflo/pkg/reference"
)

// SlotReserver is the slice of the slot service bookings needs.
// Declared here to avoid an import cycle with the slots package wiring.
type SlotReserver interface {
	Reserve(ctx context.Context, slotID uuid.UUID, count int) error
	Release(ctx context.Context, slotID uuid.UUID, count int) error
}

// Notifier publishes booking lifecycle events
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking *Booking) error
	NotifyBookingCancelled(ctx context.Context, booking *Booking) error
}

// WaitlistOpener hands capacity freed by a cancellation to the slot's
// waitlist queue
type WaitlistOpener interface {
	ProcessSlotOpening(ctx context.Context, slotID uuid.UUID, freedSpots int) (int, error)
}

type Service interface {
	Create(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error)
	Confirm(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error)
	Retry(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, userID *uuid.UUID) (*BookingResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingResponse, error)
	GetByReference(ctx context.Context, ref string) ([]BookingResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*BookingListResponse, error)

	// ListBySlot returns raw records for internal collaborators such as
	// the operator cancellation flow
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]Booking, error)
}

type service struct {
	repo            Repository
	slotReserver    SlotReserver
	processor       payments.Processor
	notifier        Notifier
	waitlist        WaitlistOpener
	referencePrefix string
}

func NewService(repo Repository, slotReserver SlotReserver, processor payments.Processor, notifier Notifier, waitlistOpener WaitlistOpener, referencePrefix string) Service {
	return &service{
		repo:            repo,
		slotReserver:    slotReserver,
		processor:       processor,
		notifier:        notifier,
		waitlist:        waitlistOpener,
		referencePrefix: referencePrefix,
	}
}

func (s *service) Create(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	guestCount := req.GuestCount
	if guestCount < 1 {
		guestCount = 1
	}

	booking := &Booking{
		UserID:       req.UserID,
		SlotID:       req.SlotID,
		ExperienceID: req.ExperienceID,
		GuestName:    req.GuestName,
		GuestEmail:   req.GuestEmail,
		GuestPhone:   req.GuestPhone,
		GuestCount:   guestCount,
		Status:       StatusPending,
		Method:       req.Method,
		TotalAmount:  req.TotalAmount,
		Currency:     req.Currency,
	}
	if booking.Currency == "" {
		booking.Currency = "USD"
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

// Confirm runs the payment pipeline for a pending booking: reserve the
// slot, charge, record the payment, then mark confirmed. The shareable
// reference is issued with the CONFIRMED row, so earlier states carry
// none. A failed charge releases the slot and leaves the booking FAILED
// so it can be retried.
func (s *service) Confirm(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, booking, StatusProcessing); err != nil {
		return nil, err
	}

	if err := s.slotReserver.Reserve(ctx, booking.SlotID, booking.GuestCount); err != nil {
		if ferr := s.transition(ctx, booking, StatusFailed); ferr != nil {
			logger.GetDefault().Error("failed to mark booking failed", "booking_id", booking.ID, "error", ferr)
		}
		return nil, err
	}

	result, err := s.processor.Process(ctx, payments.ChargeRequest{
		BookingID: booking.ID,
		Method:    booking.Method,
		Amount:    booking.TotalAmount,
		Currency:  booking.Currency,
	})
	if err != nil {
		if relErr := s.slotReserver.Release(ctx, booking.SlotID, booking.GuestCount); relErr != nil {
			logger.GetDefault().Error("failed to release slot after payment failure", "booking_id", booking.ID, "error", relErr)
		}
		if ferr := s.transition(ctx, booking, StatusFailed); ferr != nil {
			logger.GetDefault().Error("failed to mark booking failed", "booking_id", booking.ID, "error", ferr)
		}
		return nil, err
	}

	payment := &Payment{
		BookingID:     booking.ID,
		TransactionID: result.TransactionID,
		Method:        result.Method,
		Amount:        result.Amount,
		Currency:      result.Currency,
		Succeeded:     true,
		ProcessedAt:   result.ProcessedAt,
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		logger.GetDefault().Error("failed to record payment", "booking_id", booking.ID, "error", err)
	}

	// Retried bookings keep the reference issued on their first confirm
	if booking.Reference == "" {
		ref, err := reference.Generate(s.referencePrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to generate booking reference: %w", err)
		}
		booking.Reference = ref
	}

	now := time.Now()
	booking.ConfirmedAt = &now
	if err := s.transition(ctx, booking, StatusConfirmed); err != nil {
		return nil, err
	}

	logger.GetDefault().LogBookingConfirmed(ctx, booking.ID.String(), booking.Reference, userIDString(booking.UserID))

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingConfirmed(ctx, booking); err != nil {
			logger.GetDefault().Warn("failed to publish booking confirmation", "booking_id", booking.ID, "error", err)
		}
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

// Retry moves a failed booking back to pending so Confirm can run again
func (s *service) Retry(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, booking, StatusPending); err != nil {
		return nil, err
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *service) Cancel(ctx context.Context, bookingID uuid.UUID, userID *uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != nil && (booking.UserID == nil || *booking.UserID != *userID) {
		return nil, ErrBookingNotFound
	}

	if !booking.Status.CanTransitionTo(StatusCancelled) {
		return nil, ErrBookingNotCancelable
	}

	wasConfirmed := booking.Status == StatusConfirmed

	now := time.Now()
	booking.CancelledAt = &now
	if err := s.transition(ctx, booking, StatusCancelled); err != nil {
		return nil, err
	}

	// Only confirmed bookings hold spots
	if wasConfirmed {
		if err := s.slotReserver.Release(ctx, booking.SlotID, booking.GuestCount); err != nil {
			logger.GetDefault().Error("failed to release slot on cancel", "booking_id", booking.ID, "error", err)
		} else if s.waitlist != nil {
			// Freed capacity goes to queued travelers first
			notified, err := s.waitlist.ProcessSlotOpening(ctx, booking.SlotID, booking.GuestCount)
			if err != nil {
				logger.GetDefault().Warn("failed to open slot to waitlist", "slot_id", booking.SlotID, "error", err)
			} else if notified > 0 {
				logger.GetDefault().Info("waitlist notified of freed spots",
					"slot_id", booking.SlotID, "freed", booking.GuestCount, "notified", notified)
			}
		}
	}

	logger.GetDefault().LogBookingCancelled(ctx, booking.ID.String(), booking.ExperienceID.String(), userIDString(booking.UserID))

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCancelled(ctx, booking); err != nil {
			logger.GetDefault().Warn("failed to publish booking cancellation", "booking_id", booking.ID, "error", err)
		}
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *service) GetByReference(ctx context.Context, ref string) ([]BookingResponse, error) {
	list, err := s.repo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	items := make([]BookingResponse, 0, len(list))
	for i := range list {
		items = append(items, toBookingResponse(&list[i]))
	}
	return items, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*BookingListResponse, error) {
	list, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	items := make([]BookingResponse, 0, len(list))
	for i := range list {
		items = append(items, toBookingResponse(&list[i]))
	}
	return &BookingListResponse{Bookings: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *service) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]Booking, error) {
	return s.repo.ListBySlot(ctx, slotID)
}

func userIDString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func (s *service) transition(ctx context.Context, booking *Booking, target Status) error {
	if !booking.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, booking.Status, target)
	}
	booking.Status = target
	if err := s.repo.Update(ctx, booking); err != nil {
		return err
	}
	return nil
}
