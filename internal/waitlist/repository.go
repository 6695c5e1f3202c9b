package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tourflo/internal/shared/constants"
)

var (
	ErrEntryNotFound  = errors.New("waitlist entry not found")
	ErrAlreadyQueued  = errors.New("already on the waitlist for this slot")
	ErrQueueFull      = errors.New("waitlist is full")
	ErrInvalidStatus  = errors.New("invalid waitlist status transition")
	ErrNothingToClaim = errors.New("no notified entry to convert")
)

type Repository interface {
	Create(ctx context.Context, entry *WaitlistEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*WaitlistEntry, error)
	FindActiveByContact(ctx context.Context, slotID uuid.UUID, email string) (*WaitlistEntry, error)
	ListBySlot(ctx context.Context, slotID uuid.UUID, statuses []Status) ([]WaitlistEntry, error)
	NextActive(ctx context.Context, slotID uuid.UUID) (*WaitlistEntry, error)
	CountActive(ctx context.Context, slotID uuid.UUID) (int64, error)
	SlotsWithNotified(ctx context.Context) ([]uuid.UUID, error)
	Update(ctx context.Context, entry *WaitlistEntry) error

	// Redis queue mirror for O(1) position reads
	PushQueue(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) (int64, error)
	RemoveFromQueue(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) error
	QueuePosition(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) (int64, error)
}

type repository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewRepository(db *gorm.DB, redisClient *redis.Client) Repository {
	return &repository{db: db, redis: redisClient}
}

func (r *repository) Create(ctx context.Context, entry *WaitlistEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}
	return &entry, nil
}

func (r *repository) FindActiveByContact(ctx context.Context, slotID uuid.UUID, email string) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Where("guest_email = ?", email).
		Where("status IN ?", []Status{StatusActive, StatusNotified}).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to look up waitlist entry: %w", err)
	}
	return &entry, nil
}

func (r *repository) ListBySlot(ctx context.Context, slotID uuid.UUID, statuses []Status) ([]WaitlistEntry, error) {
	query := r.db.WithContext(ctx).Where("slot_id = ?", slotID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var list []WaitlistEntry
	if err := query.Order("position ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}
	return list, nil
}

func (r *repository) NextActive(ctx context.Context, slotID uuid.UUID) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Where("status = ?", StatusActive).
		Order("position ASC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get next active entry: %w", err)
	}
	return &entry, nil
}

func (r *repository) CountActive(ctx context.Context, slotID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&WaitlistEntry{}).
		Where("slot_id = ?", slotID).
		Where("status = ?", StatusActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	return count, nil
}

func (r *repository) SlotsWithNotified(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&WaitlistEntry{}).
		Where("status = ?", StatusNotified).
		Distinct("slot_id").
		Pluck("slot_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list slots with notified entries: %w", err)
	}
	return ids, nil
}

func (r *repository) Update(ctx context.Context, entry *WaitlistEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("failed to update waitlist entry: %w", err)
	}
	return nil
}

func (r *repository) PushQueue(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) (int64, error) {
	key := constants.BuildWaitlistQueueKey(slotID.String())
	length, err := r.redis.RPush(ctx, key, entryID.String()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to push waitlist queue: %w", err)
	}
	r.redis.Expire(ctx, key, constants.TTL_STATIC_LONG)
	return length, nil
}

func (r *repository) RemoveFromQueue(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) error {
	key := constants.BuildWaitlistQueueKey(slotID.String())
	if err := r.redis.LRem(ctx, key, 1, entryID.String()).Err(); err != nil {
		return fmt.Errorf("failed to remove from waitlist queue: %w", err)
	}
	return nil
}

func (r *repository) QueuePosition(ctx context.Context, slotID uuid.UUID, entryID uuid.UUID) (int64, error) {
	key := constants.BuildWaitlistQueueKey(slotID.String())
	pos, err := r.redis.LPos(ctx, key, entryID.String(), redis.LPosArgs{}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrEntryNotFound
		}
		return 0, fmt.Errorf("failed to read queue position: %w", err)
	}
	return pos + 1, nil
}
