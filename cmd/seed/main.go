package main

import (
	"fmt"
	"log"
	"time"

	"tourflo/internal/experiences"
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/database"
	"tourflo/internal/slots"
	"tourflo/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting TourFlo Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"slot_cancellations",
		"waitlist_entries",
		"payments",
		"bookings",
		"slots",
		"saved_experiences",
		"experiences",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			// Table may not exist on a fresh database
			fmt.Printf("    ⚠️  Could not truncate %s: %v\n", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	userIDs, err := s.SeedUsers()
	if err != nil {
		return err
	}

	experienceIDs, err := s.SeedExperiences(userIDs["operator"])
	if err != nil {
		return err
	}

	if err := s.SeedSlots(experienceIDs); err != nil {
		return err
	}

	return nil
}

func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// All seed accounts share the password "qwerty"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@tourflo.com", users.RoleAdmin},
		{"operator", "Marcia", "Campbell", "marcia@islandtours.jm", users.RoleOperator},
		{"traveler1", "Jordan", "Reid", "jordan.reid@gmail.com", users.RoleTraveler},
		{"traveler2", "Alex", "Morgan", "alex.morgan@gmail.com", users.RoleTraveler},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

func (s *Seeder) SeedExperiences(operatorID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🏝️  Seeding experiences...")

	experiencesData := []experiences.Experience{
		{
			Title:           "Blue Mountain Sunrise Hike",
			Description:     "Summit Jamaica's highest peak in time for sunrise, with coffee tasting on the way down.",
			Location:        "Blue Mountains",
			Region:          "Saint Andrew",
			Category:        "hiking",
			Price:           120,
			Currency:        "USD",
			ImageURL:        "https://images.tourflo.com/blue-mountain-hike.jpg",
			DurationMinutes: 360,
			ContactPhone:    "+1 876 555 0101",
			Rating:          4.8,
			Featured:        true,
		},
		{
			Title:           "Luminous Lagoon Night Swim",
			Description:     "Glide through bioluminescent waters in Falmouth after dark.",
			Location:        "Falmouth",
			Region:          "Trelawny",
			Category:        "water",
			Price:           65,
			Currency:        "USD",
			ImageURL:        "https://images.tourflo.com/luminous-lagoon.jpg",
			DurationMinutes: 90,
			ContactPhone:    "+1 876 555 0102",
			Rating:          4.9,
			Featured:        true,
		},
		{
			Title:           "Dunn's River Falls Climb",
			Description:     "Climb the terraced falls with a licensed guide, beach entry included.",
			Location:        "Ocho Rios",
			Region:          "Saint Ann",
			Category:        "water",
			Price:           45,
			Currency:        "USD",
			ImageURL:        "https://images.tourflo.com/dunns-river.jpg",
			DurationMinutes: 150,
			ContactPhone:    "+1 876 555 0103",
			Rating:          4.6,
		},
		{
			Title:           "Kingston Food Walk",
			Description:     "Jerk pits, patty shops and rum bars across downtown Kingston.",
			Location:        "Kingston",
			Region:          "Kingston",
			Category:        "food",
			Price:           80,
			Currency:        "USD",
			ImageURL:        "https://images.tourflo.com/kingston-food.jpg",
			DurationMinutes: 240,
			ContactPhone:    "+1 876 555 0104",
			Rating:          4.7,
		},
	}

	ids := make([]uuid.UUID, 0, len(experiencesData))
	for i := range experiencesData {
		exp := &experiencesData[i]
		exp.ID = uuid.New()
		exp.OperatorID = operatorID
		exp.Active = true
		exp.CreatedAt = time.Now()
		exp.UpdatedAt = time.Now()

		if err := s.db.PostgreSQL.Create(exp).Error; err != nil {
			return nil, fmt.Errorf("failed to create experience %s: %w", exp.Title, err)
		}

		ids = append(ids, exp.ID)
		fmt.Printf("    ✅ Created experience: %s\n", exp.Title)
	}

	return ids, nil
}

// SeedSlots creates two weeks of departures per experience, with one slot
// left nearly full so the waitlist path is easy to exercise
func (s *Seeder) SeedSlots(experienceIDs []uuid.UUID) error {
	fmt.Println("  📅 Seeding slots...")

	startTimes := []string{"06:00", "10:00", "14:00"}

	for expIndex, experienceID := range experienceIDs {
		var exp experiences.Experience
		if err := s.db.PostgreSQL.First(&exp, "id = ?", experienceID).Error; err != nil {
			return fmt.Errorf("failed to load experience %s: %w", experienceID, err)
		}

		for day := 1; day <= 14; day++ {
			date := time.Now().AddDate(0, 0, day).Truncate(24 * time.Hour)

			slot := slots.Slot{
				ID:           uuid.New(),
				ExperienceID: experienceID,
				Date:         date,
				StartTime:    startTimes[day%len(startTimes)],
				Capacity:     8,
				Booked:       0,
				Price:        exp.Price,
				Active:       true,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}

			// First experience, first departure: one spot left. Second
			// departure: sold out, so checkout routes to the waitlist.
			if expIndex == 0 && day == 1 {
				slot.Booked = 7
			}
			if expIndex == 0 && day == 2 {
				slot.Booked = 8
			}

			if err := s.db.PostgreSQL.Create(&slot).Error; err != nil {
				return fmt.Errorf("failed to create slot for %s: %w", exp.Title, err)
			}
		}

		fmt.Printf("    ✅ Created 14 slots for: %s\n", exp.Title)
	}

	return nil
}
