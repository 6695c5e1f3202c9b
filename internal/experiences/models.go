package experiences

import (
	"time"

	"github.com/google/uuid"
)

// Experience defines a bookable tour/activity offered by an operator
type Experience struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OperatorID      uuid.UUID `gorm:"type:uuid;index;not null" json:"operator_id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Location        string    `gorm:"not null" json:"location"`
	Region          string    `gorm:"index" json:"region"`
	Category        string    `gorm:"type:varchar(50);index" json:"category"`
	Price           float64   `gorm:"not null" json:"price"`
	Currency        string    `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	ImageURL        string    `json:"image_url"`
	DurationMinutes int       `json:"duration_minutes"`
	ContactPhone    string    `json:"contact_phone"`
	Rating          float64   `gorm:"default:0" json:"rating"`
	Featured        bool      `gorm:"default:false" json:"featured"`
	Active          bool      `gorm:"default:true" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SavedExperience is a traveler's bookmark on an experience
type SavedExperience struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index:idx_saved_user_experience,unique;not null" json:"user_id"`
	ExperienceID uuid.UUID `gorm:"type:uuid;index:idx_saved_user_experience,unique;not null" json:"experience_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName sets the table name for Experience
func (Experience) TableName() string {
	return "experiences"
}

// TableName sets the table name for SavedExperience
func (SavedExperience) TableName() string {
	return "saved_experiences"
}
