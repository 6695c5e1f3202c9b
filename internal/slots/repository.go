package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSlotNotFound = errors.New("slot not found")
	ErrSlotFull     = errors.New("slot is full")
	ErrSlotInactive = errors.New("slot is not open for booking")
)

type Repository interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id uuid.UUID) (*Slot, error)
	ListByExperience(ctx context.Context, experienceID uuid.UUID, from, to time.Time) ([]Slot, error)
	Update(ctx context.Context, slot *Slot) error

	// IncrementBooked atomically reserves count spots, failing with
	// ErrSlotFull when the slot cannot hold them.
	IncrementBooked(ctx context.Context, id uuid.UUID, count int) error
	// DecrementBooked releases count spots, flooring at zero.
	DecrementBooked(ctx context.Context, id uuid.UUID, count int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, slot *Slot) error {
	if err := r.db.WithContext(ctx).Create(slot).Error; err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	var slot Slot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *repository) ListByExperience(ctx context.Context, experienceID uuid.UUID, from, to time.Time) ([]Slot, error) {
	query := r.db.WithContext(ctx).
		Where("experience_id = ?", experienceID).
		Where("active = ?", true)

	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}

	var list []Slot
	if err := query.Order("date ASC, start_time ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, slot *Slot) error {
	if err := r.db.WithContext(ctx).Save(slot).Error; err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}
	return nil
}

func (r *repository) IncrementBooked(ctx context.Context, id uuid.UUID, count int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot Slot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&slot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("failed to lock slot: %w", err)
		}

		if !slot.Active {
			return ErrSlotInactive
		}
		if slot.Booked+count > slot.Capacity {
			return ErrSlotFull
		}

		err = tx.Model(&Slot{}).
			Where("id = ?", id).
			Update("booked", gorm.Expr("booked + ?", count)).Error
		if err != nil {
			return fmt.Errorf("failed to increment booked count: %w", err)
		}
		return nil
	})
}

func (r *repository) DecrementBooked(ctx context.Context, id uuid.UUID, count int) error {
	err := r.db.WithContext(ctx).Model(&Slot{}).
		Where("id = ?", id).
		Update("booked", gorm.Expr("GREATEST(booked - ?, 0)", count)).Error
	if err != nil {
		return fmt.Errorf("failed to decrement booked count: %w", err)
	}
	return nil
}
