package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidStatusChange  = errors.New("invalid booking status transition")
	ErrBookingNotCancelable = errors.New("booking cannot be cancelled")
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByReference(ctx context.Context, reference string) ([]Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Booking, int64, error)
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]Booking, error)
	Update(ctx context.Context, booking *Booking) error

	CreatePayment(ctx context.Context, payment *Payment) error
	ListPayments(ctx context.Context, bookingID uuid.UUID) ([]Payment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetByReference returns every booking carrying the reference. References
// are not unique so callers get a list.
func (r *repository) GetByReference(ctx context.Context, reference string) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by reference: %w", err)
	}
	return list, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var list []Booking
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return list, total, nil
}

func (r *repository) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by slot: %w", err)
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, booking *Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

func (r *repository) CreatePayment(ctx context.Context, payment *Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}
	return nil
}

func (r *repository) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]Payment, error) {
	var list []Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return list, nil
}
