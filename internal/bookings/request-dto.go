package bookings

import (
	"github.com/google/uuid"

	"tourflo/internal/payments"
)

type CreateBookingRequest struct {
	UserID       *uuid.UUID      `json:"user_id"`
	SlotID       uuid.UUID       `json:"slot_id" validate:"required"`
	ExperienceID uuid.UUID       `json:"experience_id" validate:"required"`
	GuestName    string          `json:"guest_name" validate:"required"`
	GuestEmail   string          `json:"guest_email" validate:"required,email"`
	GuestPhone   string          `json:"guest_phone" validate:"required"`
	GuestCount   int             `json:"guest_count" validate:"omitempty,gt=0"`
	Method       payments.Method `json:"method" validate:"required"`
	TotalAmount  float64         `json:"total_amount" validate:"required,gt=0"`
	Currency     string          `json:"currency" validate:"omitempty,len=3"`
}
