package waitlist

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle of a waitlist entry
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusNotified  Status = "NOTIFIED"
	StatusExpired   Status = "EXPIRED"
	StatusConverted Status = "CONVERTED"
	StatusCancelled Status = "CANCELLED"
)

var statusTransitions = map[Status][]Status{
	StatusActive:    {StatusNotified, StatusCancelled},
	StatusNotified:  {StatusConverted, StatusExpired, StatusCancelled},
	StatusExpired:   {StatusCancelled},
	StatusConverted: {},
	StatusCancelled: {},
}

func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// WaitlistEntry is a traveler queued for a spot on a full slot. Guests
// can join without an account, so contact fields live on the entry.
type WaitlistEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SlotID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"slot_id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	GuestName  string     `gorm:"not null" json:"guest_name"`
	GuestEmail string     `gorm:"index;not null" json:"guest_email"`
	GuestPhone string     `json:"guest_phone"`
	Position   int        `gorm:"not null;index" json:"position"`
	Status     Status     `gorm:"type:varchar(20);not null;index" json:"status"`
	JoinedAt   time.Time  `gorm:"not null" json:"joined_at"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}

func (we *WaitlistEntry) IsActive() bool {
	return we.Status == StatusActive
}

// IsExpired reports whether the booking window has closed
func (we *WaitlistEntry) IsExpired() bool {
	return we.Status == StatusExpired ||
		(we.ExpiresAt != nil && time.Now().After(*we.ExpiresAt))
}

const (
	// BookingWindowDuration is how long a notified traveler has to claim
	// a freed spot before it moves down the queue
	BookingWindowDuration = 15 * time.Minute

	// MaxQueueLength caps one slot's waitlist
	MaxQueueLength = 500
)
