package checkout

import "testing"

func validInfo() GuestInfo {
	return GuestInfo{
		FullName: "Amara Clarke",
		Email:    "amara@example.com",
		Phone:    "+1 (876) 555-0123",
	}
}

func TestValidateGuestInfoAccepts(t *testing.T) {
	if errs := ValidateGuestInfo(validInfo()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateFullName(t *testing.T) {
	cases := []struct {
		name string
		full string
		ok   bool
	}{
		{"two tokens", "Amara Clarke", true},
		{"three tokens", "Amara J Clarke", true},
		{"surrounding whitespace", "  Amara Clarke  ", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		// Single-word names are rejected; documented quirk of the rule.
		{"single word", "Amara", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := validInfo()
			info.FullName = tc.full
			errs := ValidateGuestInfo(info)
			_, failed := errs["full_name"]
			if failed == tc.ok {
				t.Fatalf("full_name %q: failed=%v, want ok=%v", tc.full, failed, tc.ok)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"amara@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.example.com", true},
		{"no-at-sign.com", false},
		{"missing@domaindot", false},
		{"dot.before@nodot", false},
		{"", false},
	}
	for _, tc := range cases {
		info := validInfo()
		info.Email = tc.email
		errs := ValidateGuestInfo(info)
		_, failed := errs["email"]
		if failed == tc.ok {
			t.Errorf("email %q: failed=%v, want ok=%v", tc.email, failed, tc.ok)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"8765550123", true},
		{"+1 (876) 555-0123", true},
		{"876-555-0123", true},
		{"555-0123", false},     // only 7 digits
		{"876555012a", false},   // letter not allowed
		{"876.555.0123", false}, // dot not allowed
		{"", false},
	}
	for _, tc := range cases {
		info := validInfo()
		info.Phone = tc.phone
		errs := ValidateGuestInfo(info)
		_, failed := errs["phone"]
		if failed == tc.ok {
			t.Errorf("phone %q: failed=%v, want ok=%v", tc.phone, failed, tc.ok)
		}
	}
}

func TestPartialValidityDoesNotPass(t *testing.T) {
	info := GuestInfo{
		FullName: "Amara Clarke",
		Email:    "amara@example.com",
		Phone:    "123", // invalid
	}
	errs := ValidateGuestInfo(info)
	if len(errs) == 0 {
		t.Fatal("expected phone error")
	}
	if _, ok := errs["phone"]; !ok {
		t.Fatalf("expected phone in errors, got %v", errs)
	}
	if _, ok := errs["full_name"]; ok {
		t.Fatal("valid full_name should not be in errors")
	}
}
