package db

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydiet/internal/model"
)

func memoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	db, err := Open("oracle", "whatever")
	assert.Nil(t, db)
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestOpen_SQLiteMigrateAndReset(t *testing.T) {
	gormDB, err := Open(DriverSQLite, memoryDSN())
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB))
	assert.True(t, gormDB.Migrator().HasTable(&model.User{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.Meal{}))

	require.NoError(t, Reset(gormDB))
	assert.False(t, gormDB.Migrator().HasTable(&model.User{}))
	assert.False(t, gormDB.Migrator().HasTable(&model.Meal{}))

	// dropping twice is harmless
	require.NoError(t, Reset(gormDB))
}
