package slots

import (
	"time"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID            uuid.UUID `json:"id"`
	ExperienceID  uuid.UUID `json:"experience_id"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"`
	Capacity      int       `json:"capacity"`
	Booked        int       `json:"booked"`
	SpotsLeft     int       `json:"spots_left"`
	IsFull        bool      `json:"is_full"`
	IsLowCapacity bool      `json:"is_low_capacity"`
	Price         float64   `json:"price"`
	Active        bool      `json:"active"`
}

type AvailabilityResponse struct {
	SlotID        uuid.UUID `json:"slot_id"`
	Capacity      int       `json:"capacity"`
	Booked        int       `json:"booked"`
	SpotsLeft     int       `json:"spots_left"`
	IsFull        bool      `json:"is_full"`
	IsLowCapacity bool      `json:"is_low_capacity"`
}

func toSlotResponse(s *Slot) SlotResponse {
	return SlotResponse{
		ID:            s.ID,
		ExperienceID:  s.ExperienceID,
		Date:          s.Date,
		StartTime:     s.StartTime,
		Capacity:      s.Capacity,
		Booked:        s.Booked,
		SpotsLeft:     s.SpotsLeft(),
		IsFull:        s.IsFull(),
		IsLowCapacity: s.IsLowCapacity(),
		Price:         s.Price,
		Active:        s.Active,
	}
}

func toAvailabilityResponse(s *Slot) AvailabilityResponse {
	return AvailabilityResponse{
		SlotID:        s.ID,
		Capacity:      s.Capacity,
		Booked:        s.Booked,
		SpotsLeft:     s.SpotsLeft(),
		IsFull:        s.IsFull(),
		IsLowCapacity: s.IsLowCapacity(),
	}
}
