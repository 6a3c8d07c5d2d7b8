package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/cache"
	"dailydiet/internal/errors"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

// MealInput is the full set of mutable meal fields.
type MealInput struct {
	Name        string
	Description string
	DateTime    time.Time
	IsOnDiet    bool
}

// MealPatch carries only the fields supplied by the caller; nil means absent.
type MealPatch struct {
	Name        *string
	Description *string
	DateTime    *time.Time
	IsOnDiet    *bool
}

// Columns returns the column assignments for the supplied fields only.
func (p MealPatch) Columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Description != nil {
		columns["description"] = *p.Description
	}
	if p.DateTime != nil {
		columns["date_time"] = p.DateTime.UTC()
	}
	if p.IsOnDiet != nil {
		columns["is_on_diet"] = *p.IsOnDiet
	}
	return columns
}

func (in MealInput) columns() map[string]interface{} {
	return map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"date_time":   in.DateTime.UTC(),
		"is_on_diet":  in.IsOnDiet,
	}
}

// MealService manages meals owned by a session.
type MealService interface {
	Create(ctx context.Context, sessionID string, in MealInput) (*model.Meal, error)
	List(ctx context.Context, sessionID string) ([]model.Meal, error)
	Get(ctx context.Context, sessionID string, id uuid.UUID) (*model.Meal, error)
	Replace(ctx context.Context, sessionID string, id uuid.UUID, in MealInput) (*model.Meal, error)
	Patch(ctx context.Context, sessionID string, id uuid.UUID, patch MealPatch) (*model.Meal, error)
	Delete(ctx context.Context, sessionID string, id uuid.UUID) error
}

type mealService struct {
	repo  repository.MealRepository
	cache *cache.Client
}

// NewMealService creates a new meal service. cache may be nil.
func NewMealService(repo repository.MealRepository, cache *cache.Client) MealService {
	return &mealService{repo: repo, cache: cache}
}

func (s *mealService) Create(ctx context.Context, sessionID string, in MealInput) (*model.Meal, error) {
	meal := &model.Meal{
		Name:        in.Name,
		Description: in.Description,
		DateTime:    in.DateTime.UTC(),
		IsOnDiet:    in.IsOnDiet,
		SessionID:   sessionID,
	}
	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	s.invalidate(ctx, sessionID)
	return meal, nil
}

func (s *mealService) List(ctx context.Context, sessionID string) ([]model.Meal, error) {
	meals, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (s *mealService) Get(ctx context.Context, sessionID string, id uuid.UUID) (*model.Meal, error) {
	meal, err := s.repo.FindOwned(ctx, sessionID, id)
	if err != nil {
		return nil, mapMealError("get meal", err)
	}
	return meal, nil
}

func (s *mealService) Replace(ctx context.Context, sessionID string, id uuid.UUID, in MealInput) (*model.Meal, error) {
	meal, err := s.repo.UpdateOwned(ctx, sessionID, id, in.columns())
	if err != nil {
		return nil, mapMealError("replace meal", err)
	}
	s.invalidate(ctx, sessionID)
	return meal, nil
}

func (s *mealService) Patch(ctx context.Context, sessionID string, id uuid.UUID, patch MealPatch) (*model.Meal, error) {
	meal, err := s.repo.UpdateOwned(ctx, sessionID, id, patch.Columns())
	if err != nil {
		return nil, mapMealError("patch meal", err)
	}
	s.invalidate(ctx, sessionID)
	return meal, nil
}

func (s *mealService) Delete(ctx context.Context, sessionID string, id uuid.UUID) error {
	if err := s.repo.DeleteOwned(ctx, sessionID, id); err != nil {
		return mapMealError("delete meal", err)
	}
	s.invalidate(ctx, sessionID)
	return nil
}

func (s *mealService) invalidate(ctx context.Context, sessionID string) {
	s.cache.Incr(ctx, metricsGenerationKey(sessionID))
}

func mapMealError(op string, err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrMealNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
