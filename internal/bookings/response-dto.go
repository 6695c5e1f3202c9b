package bookings

import (
	"time"

	"github.com/google/uuid"

	"tourflo/internal/payments"
)

type BookingResponse struct {
	ID           uuid.UUID       `json:"id"`
	Reference    string          `json:"reference"`
	SlotID       uuid.UUID       `json:"slot_id"`
	ExperienceID uuid.UUID       `json:"experience_id"`
	GuestName    string          `json:"guest_name"`
	GuestEmail   string          `json:"guest_email"`
	GuestPhone   string          `json:"guest_phone"`
	GuestCount   int             `json:"guest_count"`
	Status       Status          `json:"status"`
	Method       payments.Method `json:"method"`
	TotalAmount  float64         `json:"total_amount"`
	Currency     string          `json:"currency"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func toBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		Reference:    b.Reference,
		SlotID:       b.SlotID,
		ExperienceID: b.ExperienceID,
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
		GuestPhone:   b.GuestPhone,
		GuestCount:   b.GuestCount,
		Status:       b.Status,
		Method:       b.Method,
		TotalAmount:  b.TotalAmount,
		Currency:     b.Currency,
		ConfirmedAt:  b.ConfirmedAt,
		CancelledAt:  b.CancelledAt,
		CreatedAt:    b.CreatedAt,
	}
}
