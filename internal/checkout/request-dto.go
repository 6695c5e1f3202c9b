package checkout

import (
	"strings"

	"github.com/google/uuid"
)

type StartCheckoutRequest struct {
	SlotID     uuid.UUID  `json:"slot_id" validate:"required"`
	GuestCount int        `json:"guest_count" validate:"omitempty,gt=0"`
	UserID     *uuid.UUID `json:"-"`
}

type GuestInfoRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	WhatsappOptIn   bool   `json:"whatsapp_opt_in"`
	SpecialRequests string `json:"special_requests"`
}

type PaymentMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// CardDetails carries card entry from the card step. Only shape checks
// happen here; the charge itself is simulated downstream.
type CardDetails struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

func (c CardDetails) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(c.Number) == "" {
		errs["number"] = "card number is required"
	}
	if strings.TrimSpace(c.HolderName) == "" {
		errs["holder_name"] = "cardholder name is required"
	}
	if strings.TrimSpace(c.Expiry) == "" {
		errs["expiry"] = "expiry is required"
	}
	if strings.TrimSpace(c.CVC) == "" {
		errs["cvc"] = "security code is required"
	}
	return errs
}

type GoToStepRequest struct {
	Step string `json:"step" validate:"required"`
}
