package waitlist

import (
	"time"

	"github.com/google/uuid"
)

type EntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	SlotID     uuid.UUID  `json:"slot_id"`
	GuestName  string     `json:"guest_name"`
	GuestEmail string     `json:"guest_email"`
	Position   int        `json:"position"`
	Status     Status     `json:"status"`
	JoinedAt   time.Time  `json:"joined_at"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type PositionResponse struct {
	EntryID  uuid.UUID `json:"entry_id"`
	SlotID   uuid.UUID `json:"slot_id"`
	Position int       `json:"position"`
	Status   Status    `json:"status"`
}

type JoinWaitlistResponse struct {
	Position int `json:"position"`
}

func toEntryResponse(e *WaitlistEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		SlotID:     e.SlotID,
		GuestName:  e.GuestName,
		GuestEmail: e.GuestEmail,
		Position:   e.Position,
		Status:     e.Status,
		JoinedAt:   e.JoinedAt,
		NotifiedAt: e.NotifiedAt,
		ExpiresAt:  e.ExpiresAt,
	}
}
