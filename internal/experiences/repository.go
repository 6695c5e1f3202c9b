package experiences

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExperienceNotFound = errors.New("experience not found")
	ErrAlreadySaved       = errors.New("experience already saved")
	ErrNotSaved           = errors.New("experience not saved")
)

type Repository interface {
	Create(ctx context.Context, experience *Experience) error
	GetByID(ctx context.Context, id uuid.UUID) (*Experience, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Experience, error)
	List(ctx context.Context, filter ListFilter) ([]Experience, int64, error)
	Update(ctx context.Context, experience *Experience) error
	Delete(ctx context.Context, id uuid.UUID) error

	SaveForUser(ctx context.Context, userID, experienceID uuid.UUID) error
	UnsaveForUser(ctx context.Context, userID, experienceID uuid.UUID) error
	IsSavedByUser(ctx context.Context, userID, experienceID uuid.UUID) (bool, error)
	ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]Experience, error)
}

// ListFilter narrows and pages the catalog listing
type ListFilter struct {
	Region   string
	Category string
	Featured *bool
	Page     int
	PageSize int
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, experience *Experience) error {
	if err := r.db.WithContext(ctx).Create(experience).Error; err != nil {
		return fmt.Errorf("failed to create experience: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Experience, error) {
	var experience Experience
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&experience).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}
	return &experience, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Experience, error) {
	if len(ids) == 0 {
		return []Experience{}, nil
	}
	var list []Experience
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get experiences: %w", err)
	}
	return list, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Experience, int64, error) {
	query := r.db.WithContext(ctx).Model(&Experience{}).Where("active = ?", true)

	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count experiences: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var list []Experience
	err := query.Order("featured DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list experiences: %w", err)
	}
	return list, total, nil
}

func (r *repository) Update(ctx context.Context, experience *Experience) error {
	if err := r.db.WithContext(ctx).Save(experience).Error; err != nil {
		return fmt.Errorf("failed to update experience: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Experience{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to delete experience: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

func (r *repository) SaveForUser(ctx context.Context, userID, experienceID uuid.UUID) error {
	saved := SavedExperience{
		UserID:       userID,
		ExperienceID: experienceID,
	}
	if err := r.db.WithContext(ctx).Create(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadySaved
		}
		return fmt.Errorf("failed to save experience: %w", err)
	}
	return nil
}

func (r *repository) UnsaveForUser(ctx context.Context, userID, experienceID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("experience_id = ?", experienceID).
		Delete(&SavedExperience{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsave experience: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotSaved
	}
	return nil
}

func (r *repository) IsSavedByUser(ctx context.Context, userID, experienceID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SavedExperience{}).
		Where("user_id = ?", userID).
		Where("experience_id = ?", experienceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check saved experience: %w", err)
	}
	return count > 0, nil
}

func (r *repository) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]Experience, error) {
	var list []Experience
	err := r.db.WithContext(ctx).
		Joins("JOIN saved_experiences ON saved_experiences.experience_id = experiences.id").
		Where("saved_experiences.user_id = ?", userID).
		Order("saved_experiences.created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved experiences: %w", err)
	}
	return list, nil
}
