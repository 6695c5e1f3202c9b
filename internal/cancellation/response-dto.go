package cancellation

import (
	"time"

	"github.com/google/uuid"
)

type NotifiedCounts struct {
	Guests   int `json:"guests"`
	Guides   int `json:"guides"`
	Waitlist int `json:"waitlist"`
}

type CancellationResponse struct {
	ID              uuid.UUID      `json:"id"`
	SlotID          uuid.UUID      `json:"slot_id"`
	OperatorID      uuid.UUID      `json:"operator_id"`
	Reason          Reason         `json:"reason"`
	Note            string         `json:"note,omitempty"`
	RefundRequested bool           `json:"refund_requested"`
	RefundAmount    float64        `json:"refund_amount"`
	NotifiedCounts  NotifiedCounts `json:"notified_counts"`
	CreatedAt       time.Time      `json:"created_at"`
}

func toCancellationResponse(c *SlotCancellation) CancellationResponse {
	return CancellationResponse{
		ID:              c.ID,
		SlotID:          c.SlotID,
		OperatorID:      c.OperatorID,
		Reason:          c.Reason,
		Note:            c.Note,
		RefundRequested: c.RefundRequested,
		RefundAmount:    c.RefundAmount,
		NotifiedCounts: NotifiedCounts{
			Guests:   c.NotifiedGuests,
			Guides:   c.NotifiedGuides,
			Waitlist: c.NotifiedWaitlist,
		},
		CreatedAt: c.CreatedAt,
	}
}
