package database

import (
	"tourflo/internal/bookings"
	"tourflo/internal/cancellation"
	"tourflo/internal/experiences"
	"tourflo/internal/slots"
	"tourflo/internal/users"
	"tourflo/internal/waitlist"

	"gorm.io/gorm"
)

// Migrate runs auto-migrations for all registered models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&experiences.Experience{},
		&experiences.SavedExperience{},
		&slots.Slot{},
		&bookings.Booking{},
		&bookings.Payment{},
		&cancellation.SlotCancellation{},
		&waitlist.WaitlistEntry{},
	)
}
