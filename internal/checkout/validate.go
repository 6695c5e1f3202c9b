package checkout

import "strings"

// GuestInfo is the traveler contact block collected on the first step
type GuestInfo struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	WhatsappOptIn   bool   `json:"whatsapp_opt_in"`
	SpecialRequests string `json:"special_requests"`
}

// ValidateGuestInfo checks the contact block and returns a field to
// message map. An empty map means the info is acceptable. Errors are
// returned, never raised, so callers can surface them inline.
func ValidateGuestInfo(info GuestInfo) map[string]string {
	errs := make(map[string]string)

	// Single-word names are rejected: travelers must give at least a
	// first and last name.
	name := strings.TrimSpace(info.FullName)
	if name == "" {
		errs["full_name"] = "full name is required"
	} else if len(strings.Fields(name)) < 2 {
		errs["full_name"] = "please enter your first and last name"
	}

	if !validEmail(info.Email) {
		errs["email"] = "please enter a valid email address"
	}

	if !validPhone(info.Phone) {
		errs["phone"] = "please enter a valid phone number with at least 10 digits"
	}

	return errs
}

// validEmail accepts a local@domain.tld shape: at least one @ with a
// dot somewhere after the last @
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

func validPhone(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return false
	}
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10
}
