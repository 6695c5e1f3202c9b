package experiences

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceResponse struct {
	ID              uuid.UUID `json:"id"`
	OperatorID      uuid.UUID `json:"operator_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Region          string    `json:"region"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	ImageURL        string    `json:"image_url"`
	DurationMinutes int       `json:"duration_minutes"`
	ContactPhone    string    `json:"contact_phone"`
	Rating          float64   `json:"rating"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"created_at"`
}

type ExperienceListResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

type SavedToggleResponse struct {
	ExperienceID uuid.UUID `json:"experience_id"`
	Saved        bool      `json:"saved"`
}

func toExperienceResponse(e *Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:              e.ID,
		OperatorID:      e.OperatorID,
		Title:           e.Title,
		Description:     e.Description,
		Location:        e.Location,
		Region:          e.Region,
		Category:        e.Category,
		Price:           e.Price,
		Currency:        e.Currency,
		ImageURL:        e.ImageURL,
		DurationMinutes: e.DurationMinutes,
		ContactPhone:    e.ContactPhone,
		Rating:          e.Rating,
		Featured:        e.Featured,
		CreatedAt:       e.CreatedAt,
	}
}
