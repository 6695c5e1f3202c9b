package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// fakeClock hands out a controllable After channel so tests never sleep
type fakeClock struct {
	now   time.Time
	after chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:   time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		after: make(chan time.Time, 1),
	}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time { return c.after }

func (c *fakeClock) fire() { c.after <- c.now }

func TestProcessApprovesCardAfterDelay(t *testing.T) {
	clock := newFakeClock()
	clock.fire()
	p := NewSimulatedProcessor(clock, 2*time.Second)

	result, err := p.Process(context.Background(), ChargeRequest{
		BookingID: uuid.New(),
		Method:    MethodCard,
		Amount:    150.00,
		Currency:  "USD",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.TransactionID == uuid.Nil {
		t.Fatal("expected a transaction ID")
	}
	if result.Method != MethodCard {
		t.Fatalf("result method = %s, want card", result.Method)
	}
	if !result.ProcessedAt.Equal(clock.now) {
		t.Fatalf("ProcessedAt = %v, want %v", result.ProcessedAt, clock.now)
	}
}

func TestProcessCashSkipsDelay(t *testing.T) {
	clock := newFakeClock()
	// never fire the clock; cash must not wait on it
	p := NewSimulatedProcessor(clock, 2*time.Second)

	done := make(chan struct{})
	var result *ChargeResult
	var err error
	go func() {
		result, err = p.Process(context.Background(), ChargeRequest{
			BookingID: uuid.New(),
			Method:    MethodCash,
			Amount:    80.00,
			Currency:  "USD",
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cash charge blocked on processing delay")
	}
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Method != MethodCash {
		t.Fatalf("result method = %s, want cash", result.Method)
	}
}

func TestProcessCancelledContext(t *testing.T) {
	clock := newFakeClock()
	p := NewSimulatedProcessor(clock, 2*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, ChargeRequest{
		BookingID: uuid.New(),
		Method:    MethodCard,
		Amount:    150.00,
		Currency:  "USD",
	})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled in chain", err)
	}
}

func TestProcessRejectsInvalidMethod(t *testing.T) {
	p := NewSimulatedProcessor(newFakeClock(), 0)

	_, err := p.Process(context.Background(), ChargeRequest{
		BookingID: uuid.New(),
		Method:    Method("bitcoin"),
		Amount:    10,
	})
	if !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("error = %v, want ErrInvalidMethod", err)
	}
}

func TestProcessRejectsZeroAmount(t *testing.T) {
	p := NewSimulatedProcessor(newFakeClock(), 0)

	_, err := p.Process(context.Background(), ChargeRequest{
		BookingID: uuid.New(),
		Method:    MethodCard,
		Amount:    0,
	})
	if !errors.Is(err, ErrZeroAmount) {
		t.Fatalf("error = %v, want ErrZeroAmount", err)
	}
}

func TestMethodValidity(t *testing.T) {
	for _, m := range AllMethods() {
		if !m.IsValid() {
			t.Fatalf("method %s should be valid", m)
		}
	}
	if Method("venmo").IsValid() {
		t.Fatal("unknown method should be invalid")
	}
	if !MethodCard.RequiresCardDetails() {
		t.Fatal("card should require card details")
	}
	for _, m := range []Method{MethodLynk, MethodWiPay, MethodApplePay, MethodGooglePay, MethodCash} {
		if m.RequiresCardDetails() {
			t.Fatalf("method %s should not require card details", m)
		}
	}
	if !MethodCash.IsPayOnArrival() {
		t.Fatal("cash should be pay on arrival")
	}
	if MethodCash.IsChargedOnline() {
		t.Fatal("cash should not be charged online")
	}
	for _, m := range []Method{MethodCard, MethodLynk, MethodWiPay, MethodApplePay, MethodGooglePay} {
		if !m.IsChargedOnline() {
			t.Fatalf("method %s should be charged online", m)
		}
	}
}
