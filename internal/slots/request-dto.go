package slots

import (
	"time"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	ExperienceID uuid.UUID `json:"experience_id" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	StartTime    string    `json:"start_time" validate:"required,len=5"`
	Capacity     int       `json:"capacity" validate:"required,gt=0"`
	Price        float64   `json:"price" validate:"omitempty,gt=0"`
}
