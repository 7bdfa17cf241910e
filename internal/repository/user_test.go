package repository

import (
	"context"
	"testing"

	"journal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGetByUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "bcrypt-hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "bcrypt-hash", got.Password)
}

func TestUserRepository_GetByUsername_Missing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	got, err := repo.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "bob", Password: "h1"}))

	err := repo.Create(ctx, &models.User{Username: "bob", Password: "h2"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "DUPLICATE_USER"))
}
