package experiences

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tourflo/internal/shared/constants"
	"tourflo/pkg/cache"
	"tourflo/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, operatorID uuid.UUID, req CreateExperienceRequest) (*ExperienceResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ExperienceResponse, error)
	List(ctx context.Context, filter ListFilter) (*ExperienceListResponse, error)
	Update(ctx context.Context, operatorID, id uuid.UUID, req UpdateExperienceRequest) (*ExperienceResponse, error)
	Delete(ctx context.Context, operatorID, id uuid.UUID) error

	ToggleSaved(ctx context.Context, userID, experienceID uuid.UUID) (*SavedToggleResponse, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]ExperienceResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) Create(ctx context.Context, operatorID uuid.UUID, req CreateExperienceRequest) (*ExperienceResponse, error) {
	experience := &Experience{
		OperatorID:      operatorID,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Region:          req.Region,
		Category:        req.Category,
		Price:           req.Price,
		Currency:        req.Currency,
		ImageURL:        req.ImageURL,
		DurationMinutes: req.DurationMinutes,
		ContactPhone:    req.ContactPhone,
		Featured:        req.Featured,
		Active:          true,
	}
	if experience.Currency == "" {
		experience.Currency = "USD"
	}

	if err := s.repo.Create(ctx, experience); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := toExperienceResponse(experience)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ExperienceResponse, error) {
	var resp ExperienceResponse
	key := constants.BuildExperienceDetailKey(id.String())

	err := s.cache.GetOrSet(ctx, key, constants.TTL_EXPERIENCE_DETAIL, func() (interface{}, error) {
		experience, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		r := toExperienceResponse(experience)
		return r, nil
	}, &resp)
	if err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ExperienceListResponse, error) {
	// Only cache the unfiltered listing; filtered queries go straight through
	if filter.Region == "" && filter.Category == "" && filter.Featured == nil {
		var resp ExperienceListResponse
		key := constants.BuildExperienceListKey(filter.Page, filter.PageSize)
		err := s.cache.GetOrSet(ctx, key, constants.TTL_EXPERIENCE_LIST, func() (interface{}, error) {
			return s.listFromRepo(ctx, filter)
		}, &resp)
		if err != nil {
			return nil, err
		}
		return &resp, nil
	}

	return s.listFromRepo(ctx, filter)
}

func (s *service) listFromRepo(ctx context.Context, filter ListFilter) (*ExperienceListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ExperienceResponse, 0, len(list))
	for i := range list {
		items = append(items, toExperienceResponse(&list[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &ExperienceListResponse{
		Experiences: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func (s *service) Update(ctx context.Context, operatorID, id uuid.UUID, req UpdateExperienceRequest) (*ExperienceResponse, error) {
	experience, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if experience.OperatorID != operatorID {
		return nil, ErrExperienceNotFound
	}

	if req.Title != nil {
		experience.Title = *req.Title
	}
	if req.Description != nil {
		experience.Description = *req.Description
	}
	if req.Location != nil {
		experience.Location = *req.Location
	}
	if req.Region != nil {
		experience.Region = *req.Region
	}
	if req.Category != nil {
		experience.Category = *req.Category
	}
	if req.Price != nil {
		experience.Price = *req.Price
	}
	if req.ImageURL != nil {
		experience.ImageURL = *req.ImageURL
	}
	if req.DurationMinutes != nil {
		experience.DurationMinutes = *req.DurationMinutes
	}
	if req.ContactPhone != nil {
		experience.ContactPhone = *req.ContactPhone
	}
	if req.Featured != nil {
		experience.Featured = *req.Featured
	}

	if err := s.repo.Update(ctx, experience); err != nil {
		return nil, err
	}

	s.invalidateExperienceCache(ctx, id)

	resp := toExperienceResponse(experience)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, operatorID, id uuid.UUID) error {
	experience, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if experience.OperatorID != operatorID {
		return ErrExperienceNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateExperienceCache(ctx, id)
	return nil
}

// ToggleSaved bookmarks the experience for the user, or removes the
// bookmark if one already exists. Returns the resulting saved state.
func (s *service) ToggleSaved(ctx context.Context, userID, experienceID uuid.UUID) (*SavedToggleResponse, error) {
	if _, err := s.repo.GetByID(ctx, experienceID); err != nil {
		return nil, err
	}

	saved, err := s.repo.IsSavedByUser(ctx, userID, experienceID)
	if err != nil {
		return nil, err
	}

	if saved {
		if err := s.repo.UnsaveForUser(ctx, userID, experienceID); err != nil && !errors.Is(err, ErrNotSaved) {
			return nil, err
		}
		return &SavedToggleResponse{ExperienceID: experienceID, Saved: false}, nil
	}

	if err := s.repo.SaveForUser(ctx, userID, experienceID); err != nil && !errors.Is(err, ErrAlreadySaved) {
		return nil, err
	}
	return &SavedToggleResponse{ExperienceID: experienceID, Saved: true}, nil
}

func (s *service) ListSaved(ctx context.Context, userID uuid.UUID) ([]ExperienceResponse, error) {
	list, err := s.repo.ListSavedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]ExperienceResponse, 0, len(list))
	for i := range list {
		items = append(items, toExperienceResponse(&list[i]))
	}
	return items, nil
}

func (s *service) invalidateExperienceCache(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, constants.BuildExperienceDetailKey(id.String())); err != nil {
		logger.GetDefault().Warn("failed to invalidate experience cache", "experience_id", id, "error", err)
	}
	s.invalidateListCache(ctx)
}

func (s *service) invalidateListCache(ctx context.Context) {
	pattern := fmt.Sprintf("%s*", constants.CACHE_KEY_EXPERIENCES_LIST)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		logger.GetDefault().Warn("failed to invalidate experience list cache", "error", err)
	}
}
