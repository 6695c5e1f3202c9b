package slots

import (
	"time"

	"github.com/google/uuid"
)

// LowCapacityThreshold is the number of remaining spots at or below
// which a slot is surfaced as "almost full".
const LowCapacityThreshold = 3

// Slot is a scheduled departure of an experience with a fixed capacity.
// Booked is a snapshot counter; availability derived from it is advisory
// and confirmed bookings re-check it inside a transaction.
type Slot struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ExperienceID uuid.UUID `gorm:"type:uuid;index;not null" json:"experience_id"`
	Date         time.Time `gorm:"index;not null" json:"date"`
	StartTime    string    `gorm:"type:varchar(5);not null" json:"start_time"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	Booked       int       `gorm:"not null;default:0" json:"booked"`
	Price        float64   `json:"price"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}

// SpotsLeft returns the remaining capacity, never negative
func (s *Slot) SpotsLeft() int {
	left := s.Capacity - s.Booked
	if left < 0 {
		return 0
	}
	return left
}

func (s *Slot) IsFull() bool {
	return s.Capacity-s.Booked <= 0
}

// IsLowCapacity reports whether the slot has spots left but is close to
// selling out
func (s *Slot) IsLowCapacity() bool {
	left := s.Capacity - s.Booked
	return left > 0 && left <= LowCapacityThreshold
}
