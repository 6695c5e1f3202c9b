package cancellation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCancellationNotFound = errors.New("cancellation not found")
	ErrAlreadyCancelled     = errors.New("slot already cancelled")
	ErrInvalidReason        = errors.New("invalid cancellation reason")
)

type Repository interface {
	Create(ctx context.Context, cancellation *SlotCancellation) error
	GetByID(ctx context.Context, id uuid.UUID) (*SlotCancellation, error)
	GetBySlot(ctx context.Context, slotID uuid.UUID) (*SlotCancellation, error)
	ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]SlotCancellation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cancellation *SlotCancellation) error {
	if err := r.db.WithContext(ctx).Create(cancellation).Error; err != nil {
		return fmt.Errorf("failed to create slot cancellation: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SlotCancellation, error) {
	var cancellation SlotCancellation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cancellation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCancellationNotFound
		}
		return nil, fmt.Errorf("failed to get cancellation: %w", err)
	}
	return &cancellation, nil
}

func (r *repository) GetBySlot(ctx context.Context, slotID uuid.UUID) (*SlotCancellation, error) {
	var cancellation SlotCancellation
	err := r.db.WithContext(ctx).Where("slot_id = ?", slotID).First(&cancellation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCancellationNotFound
		}
		return nil, fmt.Errorf("failed to get cancellation by slot: %w", err)
	}
	return &cancellation, nil
}

func (r *repository) ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]SlotCancellation, error) {
	var list []SlotCancellation
	err := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cancellations: %w", err)
	}
	return list, nil
}
