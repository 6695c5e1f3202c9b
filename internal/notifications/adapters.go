package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tourflo/internal/bookings"
	"tourflo/internal/experiences"
	"tourflo/internal/slots"
	"tourflo/internal/waitlist"
)

// The adapters below satisfy the notifier interfaces the feature packages
// declare for themselves, so none of them has to import this package.

type ExperienceTitler interface {
	GetByID(ctx context.Context, id uuid.UUID) (*experiences.ExperienceResponse, error)
}

type SlotGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*slots.SlotResponse, error)
}

type WaitlistLister interface {
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]waitlist.EntryResponse, error)
}

// UserDirectory resolves an account to contact details. Satisfied by
// auth.UserServiceAdapter.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error)
}

// BookingNotifier publishes confirmation and cancellation emails for the
// bookings service
type BookingNotifier struct {
	notifications NotificationService
	experiences   ExperienceTitler
	slots         SlotGetter
}

func NewBookingNotifier(notifications NotificationService, experiences ExperienceTitler, slotGetter SlotGetter) *BookingNotifier {
	return &BookingNotifier{
		notifications: notifications,
		experiences:   experiences,
		slots:         slotGetter,
	}
}

func (n *BookingNotifier) NotifyBookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	data := n.bookingTemplateData(ctx, booking)

	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(booking.GuestEmail, booking.GuestName).
		WithUser(booking.UserID).
		WithBookingContext(booking.ID).
		WithSlotContext(booking.SlotID).
		WithExperienceContext(booking.ExperienceID).
		WithTemplateData(data).
		Build()

	return n.notifications.Publish(ctx, notification)
}

func (n *BookingNotifier) NotifyBookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	data := n.bookingTemplateData(ctx, booking)
	if booking.Status == bookings.StatusCancelled && booking.ConfirmedAt != nil {
		// Only confirmed bookings were charged, so only they mention a refund
		data["RefundAmount"] = fmt.Sprintf("%.2f", booking.TotalAmount)
	}

	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingCancelled).
		WithRecipient(booking.GuestEmail, booking.GuestName).
		WithUser(booking.UserID).
		WithBookingContext(booking.ID).
		WithSlotContext(booking.SlotID).
		WithExperienceContext(booking.ExperienceID).
		WithTemplateData(data).
		Build()

	return n.notifications.Publish(ctx, notification)
}

func (n *BookingNotifier) bookingTemplateData(ctx context.Context, booking *bookings.Booking) map[string]interface{} {
	data := map[string]interface{}{
		"Reference":       booking.Reference,
		"GuestCount":      booking.GuestCount,
		"TotalAmount":     fmt.Sprintf("%.2f", booking.TotalAmount),
		"Currency":        booking.Currency,
		"ExperienceTitle": "your experience",
		"Date":            "",
	}
	if exp, err := n.experiences.GetByID(ctx, booking.ExperienceID); err == nil {
		data["ExperienceTitle"] = exp.Title
	}
	if slot, err := n.slots.GetByID(ctx, booking.SlotID); err == nil {
		data["Date"] = slot.Date.Format("Monday, January 2 2006") + " at " + slot.StartTime
	}
	return data
}

// WaitlistSpotNotifier tells the next traveler in line their spot opened up
type WaitlistSpotNotifier struct {
	notifications NotificationService
	experiences   ExperienceTitler
	slots         SlotGetter
}

func NewWaitlistSpotNotifier(notifications NotificationService, experiences ExperienceTitler, slotGetter SlotGetter) *WaitlistSpotNotifier {
	return &WaitlistSpotNotifier{
		notifications: notifications,
		experiences:   experiences,
		slots:         slotGetter,
	}
}

func (n *WaitlistSpotNotifier) NotifySpotAvailable(ctx context.Context, entry *waitlist.WaitlistEntry) error {
	data := map[string]interface{}{
		"ExperienceTitle": "your experience",
		"ExpiresAt":       "",
		"ClaimURL":        "",
	}
	if entry.ExpiresAt != nil {
		data["ExpiresAt"] = entry.ExpiresAt.Format(time.Kitchen + " on January 2")
	}
	if slot, err := n.slots.GetByID(ctx, entry.SlotID); err == nil {
		if exp, err := n.experiences.GetByID(ctx, slot.ExperienceID); err == nil {
			data["ExperienceTitle"] = exp.Title
		}
	}

	notification := NewNotificationBuilder().
		WithType(NotificationTypeWaitlistSpotAvailable).
		WithRecipient(entry.GuestEmail, entry.GuestName).
		WithUser(entry.UserID).
		WithWaitlistContext(entry.ID).
		WithSlotContext(entry.SlotID).
		WithExpiration(entry.ExpiresAt).
		WithTemplateData(data).
		Build()

	return n.notifications.Publish(ctx, notification)
}

// SlotCancellationNotifier fans a slot cancellation out to everyone queued
// on its waitlist and to the operator. Used by the cancellation service.
type SlotCancellationNotifier struct {
	notifications NotificationService
	waitlist      WaitlistLister
	slots         SlotGetter
	experiences   ExperienceTitler
	users         UserDirectory
}

func NewSlotCancellationNotifier(
	notifications NotificationService,
	waitlistLister WaitlistLister,
	slotGetter SlotGetter,
	experiences ExperienceTitler,
	users UserDirectory,
) *SlotCancellationNotifier {
	return &SlotCancellationNotifier{
		notifications: notifications,
		waitlist:      waitlistLister,
		slots:         slotGetter,
		experiences:   experiences,
		users:         users,
	}
}

func (n *SlotCancellationNotifier) NotifySlotCancelled(ctx context.Context, slotID uuid.UUID) (int, error) {
	entries, err := n.waitlist.ListBySlot(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("failed to list waitlist for slot %s: %w", slotID, err)
	}

	title, date := n.slotContext(ctx, slotID)

	batch := make([]*EmailNotification, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		if entry.Status != waitlist.StatusActive && entry.Status != waitlist.StatusNotified {
			continue
		}
		batch = append(batch, NewNotificationBuilder().
			WithType(NotificationTypeSlotCancelled).
			WithRecipient(entry.GuestEmail, entry.GuestName).
			WithWaitlistContext(entry.ID).
			WithSlotContext(slotID).
			WithTemplateData(map[string]interface{}{
				"ExperienceTitle": title,
				"Date":            date,
				"Reason":          "the operator cancelled this date",
			}).
			Build())
	}

	if len(batch) == 0 {
		return 0, nil
	}
	if err := n.notifications.PublishBatch(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// NotifyGuides reaches the experience's operator so they can stand their
// guides down. Guides have no accounts of their own, the operator is the
// contact point.
func (n *SlotCancellationNotifier) NotifyGuides(ctx context.Context, slotID uuid.UUID, reason string) (int, error) {
	slot, err := n.slots.GetByID(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("failed to load slot %s: %w", slotID, err)
	}

	exp, err := n.experiences.GetByID(ctx, slot.ExperienceID)
	if err != nil {
		return 0, fmt.Errorf("failed to load experience %s: %w", slot.ExperienceID, err)
	}

	email, firstName, lastName, err := n.users.GetUserByID(ctx, exp.OperatorID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve operator %s: %w", exp.OperatorID, err)
	}

	notification := NewNotificationBuilder().
		WithType(NotificationTypeSlotCancelled).
		WithRecipient(email, firstName+" "+lastName).
		WithUser(&exp.OperatorID).
		WithSlotContext(slotID).
		WithExperienceContext(exp.ID).
		WithTemplateData(map[string]interface{}{
			"ExperienceTitle": exp.Title,
			"Date":            slot.Date.Format("Monday, January 2 2006") + " at " + slot.StartTime,
			"Reason":          reason,
		}).
		Build()

	if err := n.notifications.Publish(ctx, notification); err != nil {
		return 0, err
	}
	return 1, nil
}

func (n *SlotCancellationNotifier) slotContext(ctx context.Context, slotID uuid.UUID) (title, date string) {
	title = "your experience"
	if slot, err := n.slots.GetByID(ctx, slotID); err == nil {
		date = slot.Date.Format("Monday, January 2 2006") + " at " + slot.StartTime
		if exp, err := n.experiences.GetByID(ctx, slot.ExperienceID); err == nil {
			title = exp.Title
		}
	}
	return title, date
}
