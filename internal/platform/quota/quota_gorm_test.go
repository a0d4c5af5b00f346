package quota

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nutrilens_backend/internal/feature/auth/domain/entity"
)

func setupTestDB(t *testing.T) (*gorm.DB, *entity.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&entity.User{}), "failed to migrate table")

	user := &entity.User{Username: "alice", Password: "hash"}
	require.NoError(t, db.Create(user).Error, "failed to create test user")

	return db, user
}

func TestScanCounterGorm_CountAndIncrement(t *testing.T) {
	db, user := setupTestDB(t)
	counter := NewScanCounterGorm(db)
	ctx := context.Background()

	n, err := counter.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "new user starts at zero")

	n, err = counter.Increment(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = counter.Increment(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = counter.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "count must reflect increments")
}

func TestScanCounterGorm_Reset(t *testing.T) {
	db, user := setupTestDB(t)
	counter := NewScanCounterGorm(db)
	ctx := context.Background()

	_, err := counter.Increment(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, counter.Reset(ctx, user.ID))

	n, err := counter.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "count must be zero after reset")
}

func TestScanCounterGorm_UnknownUser(t *testing.T) {
	db, _ := setupTestDB(t)
	counter := NewScanCounterGorm(db)

	_, err := counter.Count(context.Background(), 999)
	assert.Error(t, err, "unknown user must be an error")
}
