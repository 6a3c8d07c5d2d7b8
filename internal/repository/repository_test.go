package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dailydiet/internal/db"
	"dailydiet/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func newMeal(session, name string, at time.Time, onDiet bool) *model.Meal {
	return &model.Meal{
		Name:        name,
		Description: name + " description",
		DateTime:    at,
		IsOnDiet:    onDiet,
		SessionID:   session,
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &model.User{ID: "session-a", Name: "John Doe", Password: "hash"}))

	byName, err := repo.FindByName(ctx, "John Doe")
	require.NoError(t, err)
	assert.Equal(t, "session-a", byName.ID)

	byID, err := repo.FindByID(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", byID.Name)

	_, err = repo.FindByName(ctx, "Jane")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	t.Run("duplicate name", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{ID: "session-b", Name: "John Doe", Password: "hash"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{ID: "session-a", Name: "Someone Else", Password: "hash"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}

func TestMealRepository_CreateAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestDB(t))

	meal := newMeal("s1", "Breakfast", time.Now().UTC(), true)
	require.NoError(t, repo.Create(ctx, meal))

	assert.NotEqual(t, uuid.Nil, meal.ID)
}

func TestMealRepository_SessionScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestDB(t))
	now := time.Now().UTC()

	mine := newMeal("s1", "Mine", now, true)
	theirs := newMeal("s2", "Theirs", now, false)
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirs))

	meals, err := repo.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Mine", meals[0].Name)

	empty, err := repo.ListBySession(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = repo.FindOwned(ctx, "s1", theirs.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.UpdateOwned(ctx, "s1", theirs.ID, map[string]interface{}{"name": "Stolen"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.DeleteOwned(ctx, "s1", theirs.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	stillTheirs, err := repo.FindOwned(ctx, "s2", theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Theirs", stillTheirs.Name)
}

func TestMealRepository_ListChronological(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestDB(t))
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newMeal("s1", "dinner", base.Add(10*time.Hour), true)))
	require.NoError(t, repo.Create(ctx, newMeal("s1", "breakfast", base, true)))
	require.NoError(t, repo.Create(ctx, newMeal("s1", "lunch", base.Add(4*time.Hour), false)))

	meals, err := repo.ListBySessionChronological(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, "breakfast", meals[0].Name)
	assert.Equal(t, "lunch", meals[1].Name)
	assert.Equal(t, "dinner", meals[2].Name)
}

func TestMealRepository_UpdateOwnedOnlyTouchesGivenColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestDB(t))
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	meal := newMeal("s1", "Lunch", at, true)
	require.NoError(t, repo.Create(ctx, meal))

	updated, err := repo.UpdateOwned(ctx, "s1", meal.ID, map[string]interface{}{"is_on_diet": false})
	require.NoError(t, err)
	assert.False(t, updated.IsOnDiet)
	assert.Equal(t, "Lunch", updated.Name)
	assert.Equal(t, "Lunch description", updated.Description)
	assert.True(t, at.Equal(updated.DateTime))

	unchanged, err := repo.UpdateOwned(ctx, "s1", meal.ID, map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, unchanged.IsOnDiet)
}

func TestMealRepository_DeleteOwned(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestDB(t))

	meal := newMeal("s1", "Snack", time.Now().UTC(), false)
	require.NoError(t, repo.Create(ctx, meal))

	require.NoError(t, repo.DeleteOwned(ctx, "s1", meal.ID))

	_, err := repo.FindOwned(ctx, "s1", meal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.DeleteOwned(ctx, "s1", meal.ID), gorm.ErrRecordNotFound)
}
