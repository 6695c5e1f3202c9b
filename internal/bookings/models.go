package bookings

import (
	"time"

	"github.com/google/uuid"

	"tourflo/internal/payments"
)

// Booking holds a traveler's confirmed or in-flight reservation on a slot.
// Reference is the human-facing booking code; it is not a primary key and
// carries no uniqueness guarantee.
type Booking struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Reference    string          `gorm:"index;not null" json:"reference"`
	UserID       *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	SlotID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"slot_id"`
	ExperienceID uuid.UUID       `gorm:"type:uuid;index;not null" json:"experience_id"`
	GuestName    string          `gorm:"not null" json:"guest_name"`
	GuestEmail   string          `gorm:"not null" json:"guest_email"`
	GuestPhone   string          `gorm:"not null" json:"guest_phone"`
	GuestCount   int             `gorm:"not null;default:1" json:"guest_count"`
	Status       Status          `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Method       payments.Method `gorm:"type:varchar(20)" json:"method"`
	TotalAmount  float64         `gorm:"not null" json:"total_amount"`
	Currency     string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Payment records a charge attempt against a booking
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"booking_id"`
	TransactionID uuid.UUID       `gorm:"type:uuid" json:"transaction_id"`
	Method        payments.Method `gorm:"type:varchar(20);not null" json:"method"`
	Amount        float64         `gorm:"not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Succeeded     bool            `gorm:"not null" json:"succeeded"`
	ProcessedAt   time.Time       `json:"processed_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (Payment) TableName() string {
	return "payments"
}
