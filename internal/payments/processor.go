package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tourflo/pkg/logger"
)

var (
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrZeroAmount    = errors.New("charge amount must be positive")
)

// ChargeRequest describes a payment to run against the simulated gateway
type ChargeRequest struct {
	BookingID uuid.UUID
	Method    Method
	Amount    float64
	Currency  string
}

// ChargeResult is the gateway outcome for a charge
type ChargeResult struct {
	TransactionID uuid.UUID
	Method        Method
	Amount        float64
	Currency      string
	ProcessedAt   time.Time
}

// Processor runs charges. The production implementation simulates a
// gateway round trip with a fixed processing delay; swapping in a real
// gateway only needs a new Processor.
type Processor interface {
	Process(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type simulatedProcessor struct {
	clock Clock
	delay time.Duration
}

// NewSimulatedProcessor builds a Processor that approves every valid
// charge after delay. Cancelling the context aborts the wait.
func NewSimulatedProcessor(clock Clock, delay time.Duration) Processor {
	if clock == nil {
		clock = NewRealClock()
	}
	return &simulatedProcessor{clock: clock, delay: delay}
}

func (p *simulatedProcessor) Process(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if !req.Method.IsValid() {
		return nil, ErrInvalidMethod
	}
	// Cash settles on arrival so no charge is run, but amount still has
	// to be sane for the booking record.
	if req.Amount <= 0 {
		return nil, ErrZeroAmount
	}

	if !req.Method.IsPayOnArrival() && p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("payment processing cancelled: %w", ctx.Err())
		case <-p.clock.After(p.delay):
		}
	}

	result := &ChargeResult{
		TransactionID: uuid.New(),
		Method:        req.Method,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ProcessedAt:   p.clock.Now(),
	}

	logger.GetDefault().Info("payment processed",
		"booking_id", req.BookingID,
		"method", req.Method,
		"amount", req.Amount,
		"transaction_id", result.TransactionID,
	)
	return result, nil
}
