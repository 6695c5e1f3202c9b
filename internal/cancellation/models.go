package cancellation

import (
	"time"

	"github.com/google/uuid"
)

// Reason is why an operator called off a departure
type Reason string

const (
	ReasonWeather          Reason = "weather"
	ReasonLowBookings      Reason = "low-bookings"
	ReasonGuideUnavailable Reason = "guide-unavailable"
	ReasonEquipment        Reason = "equipment"
	ReasonOther            Reason = "other"
)

func AllReasons() []Reason {
	return []Reason{ReasonWeather, ReasonLowBookings, ReasonGuideUnavailable, ReasonEquipment, ReasonOther}
}

func (r Reason) IsValid() bool {
	switch r {
	case ReasonWeather, ReasonLowBookings, ReasonGuideUnavailable, ReasonEquipment, ReasonOther:
		return true
	}
	return false
}

// SlotCancellation records an operator cancelling a whole departure.
// Terminal once submitted; there is no undo.
type SlotCancellation struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SlotID          uuid.UUID `gorm:"type:uuid;index;not null" json:"slot_id"`
	OperatorID      uuid.UUID `gorm:"type:uuid;index;not null" json:"operator_id"`
	Reason          Reason    `gorm:"type:varchar(30);not null" json:"reason"`
	Note            string    `gorm:"type:text" json:"note"`
	RefundRequested bool      `gorm:"not null" json:"refund_requested"`
	RefundAmount    float64   `gorm:"not null;default:0" json:"refund_amount"`
	NotifiedGuests  int       `gorm:"not null;default:0" json:"notified_guests"`
	NotifiedGuides  int       `gorm:"not null;default:0" json:"notified_guides"`
	NotifiedWaitlist int      `gorm:"not null;default:0" json:"notified_waitlist"`
	CreatedAt       time.Time `json:"created_at"`
}

func (SlotCancellation) TableName() string {
	return "slot_cancellations"
}
