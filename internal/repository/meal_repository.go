package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/model"
)

// MealRepository defines meal persistence operations. Every lookup is
// scoped to a session: a meal owned by another session is reported as
// gorm.ErrRecordNotFound, exactly like a missing one.
type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	ListBySession(ctx context.Context, sessionID string) ([]model.Meal, error)
	ListBySessionChronological(ctx context.Context, sessionID string) ([]model.Meal, error)
	FindOwned(ctx context.Context, sessionID string, id uuid.UUID) (*model.Meal, error)
	UpdateOwned(ctx context.Context, sessionID string, id uuid.UUID, columns map[string]interface{}) (*model.Meal, error)
	DeleteOwned(ctx context.Context, sessionID string, id uuid.UUID) error
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository.
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

// Create creates a new meal.
func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

// ListBySession lists a session's meals in storage order.
func (r *mealRepository) ListBySession(ctx context.Context, sessionID string) ([]model.Meal, error) {
	meals := []model.Meal{}
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// ListBySessionChronological lists a session's meals by date_time ascending.
func (r *mealRepository) ListBySessionChronological(ctx context.Context, sessionID string) ([]model.Meal, error) {
	meals := []model.Meal{}
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("date_time ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// FindOwned finds a meal by ID within a session.
func (r *mealRepository) FindOwned(ctx context.Context, sessionID string, id uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// UpdateOwned writes only the given columns of a session's meal and returns
// the stored result.
func (r *mealRepository) UpdateOwned(ctx context.Context, sessionID string, id uuid.UUID, columns map[string]interface{}) (*model.Meal, error) {
	meal, err := r.FindOwned(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return meal, nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Meal{}).
		Where("id = ? AND session_id = ?", id, sessionID).
		Updates(columns).Error; err != nil {
		return nil, err
	}
	return r.FindOwned(ctx, sessionID, id)
}

// DeleteOwned permanently removes a session's meal.
func (r *mealRepository) DeleteOwned(ctx context.Context, sessionID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&model.Meal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
