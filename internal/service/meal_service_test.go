package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dailydiet/internal/errors"
	"dailydiet/internal/model"
)

func TestMealPatch_Columns(t *testing.T) {
	name := "Dinner"
	empty := ""
	off := false
	at := time.Date(2024, 5, 1, 19, 0, 0, 0, time.FixedZone("BRT", -3*3600))

	tests := []struct {
		name     string
		patch    MealPatch
		expected map[string]interface{}
	}{
		{
			name:     "nothing supplied",
			patch:    MealPatch{},
			expected: map[string]interface{}{},
		},
		{
			name:     "only description, even when empty",
			patch:    MealPatch{Description: &empty},
			expected: map[string]interface{}{"description": ""},
		},
		{
			name:     "false is a supplied value",
			patch:    MealPatch{IsOnDiet: &off},
			expected: map[string]interface{}{"is_on_diet": false},
		},
		{
			name:  "every field",
			patch: MealPatch{Name: &name, Description: &empty, DateTime: &at, IsOnDiet: &off},
			expected: map[string]interface{}{
				"name":        "Dinner",
				"description": "",
				"date_time":   at.UTC(),
				"is_on_diet":  false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.patch.Columns())
		})
	}
}

func TestMealService_Create(t *testing.T) {
	mockRepo := new(MockMealRepository)
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Meal) bool {
		return m.SessionID == "session-1" && m.Name == "Breakfast" && m.IsOnDiet && m.DateTime.Equal(at)
	})).Return(nil)

	svc := NewMealService(mockRepo, nil)
	meal, err := svc.Create(context.Background(), "session-1", MealInput{
		Name:        "Breakfast",
		Description: "Eggs",
		DateTime:    at,
		IsOnDiet:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Eggs", meal.Description)
	mockRepo.AssertExpectations(t)
}

func TestMealService_NotOwnedIsNotFound(t *testing.T) {
	id := uuid.New()
	ctx := context.Background()

	mockRepo := new(MockMealRepository)
	mockRepo.On("FindOwned", mock.Anything, "intruder", id).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("UpdateOwned", mock.Anything, "intruder", id, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("DeleteOwned", mock.Anything, "intruder", id).Return(gorm.ErrRecordNotFound)

	svc := NewMealService(mockRepo, nil)

	_, err := svc.Get(ctx, "intruder", id)
	assert.ErrorIs(t, err, apperrors.ErrMealNotFound)

	_, err = svc.Replace(ctx, "intruder", id, MealInput{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrMealNotFound)

	desc := "y"
	_, err = svc.Patch(ctx, "intruder", id, MealPatch{Description: &desc})
	assert.ErrorIs(t, err, apperrors.ErrMealNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "intruder", id), apperrors.ErrMealNotFound)

	mockRepo.AssertExpectations(t)
}

func TestMealService_ReplaceWritesEveryField(t *testing.T) {
	id := uuid.New()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := MealInput{Name: "Lunch Updated", Description: "Beans", DateTime: at, IsOnDiet: false}
	updated := &model.Meal{ID: id, Name: in.Name, Description: in.Description, DateTime: at, SessionID: "s1"}

	mockRepo := new(MockMealRepository)
	mockRepo.On("UpdateOwned", mock.Anything, "s1", id, map[string]interface{}{
		"name":        "Lunch Updated",
		"description": "Beans",
		"date_time":   at,
		"is_on_diet":  false,
	}).Return(updated, nil)

	svc := NewMealService(mockRepo, nil)
	meal, err := svc.Replace(context.Background(), "s1", id, in)

	require.NoError(t, err)
	assert.Equal(t, updated, meal)
	mockRepo.AssertExpectations(t)
}

func TestMealService_PatchSendsOnlySuppliedColumns(t *testing.T) {
	id := uuid.New()
	desc := "Beans and salad"
	patched := &model.Meal{ID: id, Name: "Lunch", Description: desc, SessionID: "s1"}

	mockRepo := new(MockMealRepository)
	mockRepo.On("UpdateOwned", mock.Anything, "s1", id, map[string]interface{}{"description": desc}).Return(patched, nil)

	svc := NewMealService(mockRepo, nil)
	meal, err := svc.Patch(context.Background(), "s1", id, MealPatch{Description: &desc})

	require.NoError(t, err)
	assert.Equal(t, "Lunch", meal.Name)
	mockRepo.AssertExpectations(t)
}

func TestMealService_ListWrapsStorageErrors(t *testing.T) {
	mockRepo := new(MockMealRepository)
	mockRepo.On("ListBySession", mock.Anything, "s1").Return(nil, errors.New("disk full"))

	svc := NewMealService(mockRepo, nil)
	meals, err := svc.List(context.Background(), "s1")

	assert.Nil(t, meals)
	assert.EqualError(t, err, "list meals: disk full")
	assert.NotErrorIs(t, err, apperrors.ErrMealNotFound)
}
