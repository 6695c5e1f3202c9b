package waitlist

import "github.com/google/uuid"

type JoinWaitlistRequest struct {
	SlotID     uuid.UUID `json:"slot_id" validate:"required"`
	GuestName  string    `json:"guest_name" validate:"required"`
	GuestEmail string    `json:"guest_email" validate:"required,email"`
	GuestPhone string    `json:"guest_phone"`
}
