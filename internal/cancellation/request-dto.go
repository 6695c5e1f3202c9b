package cancellation

import "github.com/google/uuid"

type CancelSlotRequest struct {
	SlotID          uuid.UUID `json:"slot_id" validate:"required"`
	Reason          Reason    `json:"reason" validate:"required"`
	Note            string    `json:"note" validate:"max=500"`
	RefundRequested bool      `json:"refund_requested"`
}
