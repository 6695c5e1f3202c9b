package experiences

type CreateExperienceRequest struct {
	Title           string  `json:"title" validate:"required,min=3,max=200"`
	Description     string  `json:"description" validate:"max=5000"`
	Location        string  `json:"location" validate:"required"`
	Region          string  `json:"region"`
	Category        string  `json:"category" validate:"required"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"omitempty,len=3"`
	ImageURL        string  `json:"image_url" validate:"omitempty,url"`
	DurationMinutes int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	ContactPhone    string  `json:"contact_phone"`
	Featured        bool    `json:"featured"`
}

type UpdateExperienceRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description     *string  `json:"description" validate:"omitempty,max=5000"`
	Location        *string  `json:"location"`
	Region          *string  `json:"region"`
	Category        *string  `json:"category"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
	ImageURL        *string  `json:"image_url" validate:"omitempty,url"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	ContactPhone    *string  `json:"contact_phone"`
	Featured        *bool    `json:"featured"`
}
