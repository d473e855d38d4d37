package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"goal_backend/internal/feature/auth/domain/entity"
	"goal_backend/internal/feature/auth/usecase"
	"goal_backend/internal/testutil"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewSQLite(t, &entity.User{})
}

func TestNewUserGorm(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		user := &entity.User{
			Name:     "Ann",
			Email:    "test@example.com",
			Password: "hashed_password",
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.Len(t, user.ID, 36, "ID is not a UUID")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		user1 := &entity.User{Name: "A", Email: "duplicate@example.com", Password: "password1"}
		err := repo.Create(context.Background(), user1)
		require.NoError(t, err, "failed to create first user")

		// Create second user with the same email
		user2 := &entity.User{Name: "B", Email: "duplicate@example.com", Password: "password2"}
		err = repo.Create(context.Background(), user2)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists, "should return duplicate error")
	})

	t.Run("nil user error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		err := repo.Create(context.Background(), nil)

		assert.Error(t, err, "should return error for nil user")
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Run("find user by email successfully", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		expected := &entity.User{Name: "Ann", Email: "find@example.com", Password: "hashed_password"}
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByEmail(context.Background(), "find@example.com")

		assert.NoError(t, err, "failed to find user")
		require.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, "Ann", found.Name, "name does not match")
		assert.Equal(t, expected.Password, found.Password, "password does not match")
	})

	t.Run("email not found error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})

	t.Run("find correct user when multiple users exist", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		users := []*entity.User{
			{Name: "u1", Email: "user1@example.com", Password: "pass1"},
			{Name: "u2", Email: "user2@example.com", Password: "pass2"},
			{Name: "u3", Email: "user3@example.com", Password: "pass3"},
		}
		for _, u := range users {
			require.NoError(t, repo.Create(context.Background(), u), "failed to create test data")
		}

		found, err := repo.FindByEmail(context.Background(), "user2@example.com")

		assert.NoError(t, err, "failed to find user")
		require.NotNil(t, found, "user is nil")
		assert.Equal(t, users[1].ID, found.ID, "ID does not match")
		assert.Equal(t, "pass2", found.Password, "password does not match")
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Run("find user by ID successfully", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		expected := &entity.User{Name: "Ann", Email: "findbyid@example.com", Password: "hashed_password"}
		require.NoError(t, repo.Create(context.Background(), expected), "failed to create test data")

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err, "failed to find user")
		require.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
	})

	t.Run("ID not found error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		found, err := repo.FindByID(context.Background(), "00000000-0000-0000-0000-000000000000")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})

	t.Run("empty ID error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		found, err := repo.FindByID(context.Background(), "")

		assert.Error(t, err, "should return error")
		assert.Nil(t, found, "user should be nil")
	})
}

func TestUserGorm_Timestamps(t *testing.T) {
	t.Run("CreatedAt and UpdatedAt are automatically set", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		beforeCreate := time.Now()
		user := &entity.User{Name: "Ann", Email: "timestamp@example.com", Password: "password"}

		require.NoError(t, repo.Create(context.Background(), user), "failed to create user")

		afterCreate := time.Now()

		assert.False(t, user.CreatedAt.Before(beforeCreate), "CreatedAt is before creation time")
		assert.False(t, user.CreatedAt.After(afterCreate), "CreatedAt is after creation time")

		found, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err, "failed to find user")

		assert.Equal(t, user.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt does not match")
		assert.Equal(t, user.UpdatedAt.Unix(), found.UpdatedAt.Unix(), "UpdatedAt does not match")
	})
}
