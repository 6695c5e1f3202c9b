package bookings

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusConfirmed, false},
		{StatusProcessing, StatusConfirmed, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusPending, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusProcessing, false},
		{StatusFailed, StatusPending, true},
		{StatusFailed, StatusCancelled, true},
		{StatusFailed, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if !StatusCancelled.IsTerminal() {
		t.Fatal("CANCELLED should be terminal")
	}
	for _, s := range []Status{StatusPending, StatusProcessing, StatusConfirmed, StatusFailed} {
		if s.IsTerminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusConfirmed, StatusFailed, StatusCancelled} {
		if !s.IsValid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("SHIPPED").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
}
