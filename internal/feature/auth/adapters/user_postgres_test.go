package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nutrilens_backend/internal/feature/auth/domain/entity"
	"nutrilens_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError maps the SQLite unique violation to gorm.ErrDuplicatedKey,
// matching what the pgx driver reports in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestNewUserPostgres(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserPostgres(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserPostgres_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user := &entity.User{
			Username: "alice",
			Password: "hashed_password",
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate username returns ErrUsernameTaken", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user1 := &entity.User{Username: "duplicate", Password: "password1"}
		err := repo.Create(context.Background(), user1)
		require.NoError(t, err, "failed to create first user")

		user2 := &entity.User{Username: "duplicate", Password: "password2"}
		err = repo.Create(context.Background(), user2)

		assert.ErrorIs(t, err, usecase.ErrUsernameTaken, "should return ErrUsernameTaken")
	})
}

func TestUserPostgres_FindByUsername(t *testing.T) {
	t.Run("find user by username successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		expected := &entity.User{Username: "alice", Password: "hashed_password"}
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByUsername(context.Background(), "alice")

		assert.NoError(t, err, "failed to find user")
		assert.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Username, found.Username, "username does not match")
	})

	t.Run("username not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		found, err := repo.FindByUsername(context.Background(), "nobody")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserPostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)

	user := &entity.User{Username: "alice", Password: "hash", DisplayName: "Alice"}
	require.NoError(t, repo.Create(context.Background(), user))

	user.DisplayName = "Alice B"
	user.StripeCustomerID = "cus_123"
	require.NoError(t, repo.Update(context.Background(), user))

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", found.DisplayName, "display name was not updated")
	assert.Equal(t, "cus_123", found.StripeCustomerID, "customer ID was not updated")
}

func TestUserPostgres_FindByStripeCustomerID(t *testing.T) {
	t.Run("find user by customer ID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user := &entity.User{Username: "alice", Password: "hash", StripeCustomerID: "cus_123"}
		require.NoError(t, repo.Create(context.Background(), user))

		found, err := repo.FindByStripeCustomerID(context.Background(), "cus_123")

		assert.NoError(t, err)
		require.NotNil(t, found, "user is nil")
		assert.Equal(t, user.ID, found.ID, "ID does not match")
	})

	t.Run("unknown customer returns nil without error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		found, err := repo.FindByStripeCustomerID(context.Background(), "cus_unknown")

		assert.NoError(t, err, "unknown customer is not an error")
		assert.Nil(t, found, "user should be nil")
	})
}

func TestUserPostgres_IsSubscribed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)

	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	active := &entity.User{Username: "active", Password: "hash",
		SubscriptionStatus: entity.SubscriptionActive, SubscriptionExpiresAt: &future}
	expired := &entity.User{Username: "expired", Password: "hash",
		SubscriptionStatus: entity.SubscriptionActive, SubscriptionExpiresAt: &past}
	free := &entity.User{Username: "free", Password: "hash",
		SubscriptionStatus: entity.SubscriptionNone}

	for _, u := range []*entity.User{active, expired, free} {
		require.NoError(t, repo.Create(context.Background(), u))
	}

	subscribed, err := repo.IsSubscribed(context.Background(), active.ID)
	require.NoError(t, err)
	assert.True(t, subscribed, "active subscription within period")

	subscribed, err = repo.IsSubscribed(context.Background(), expired.ID)
	require.NoError(t, err)
	assert.False(t, subscribed, "active status past the expiry is not subscribed")

	subscribed, err = repo.IsSubscribed(context.Background(), free.ID)
	require.NoError(t, err)
	assert.False(t, subscribed, "user without subscription")

	_, err = repo.IsSubscribed(context.Background(), 999)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound, "unknown user propagates ErrUserNotFound")
}
