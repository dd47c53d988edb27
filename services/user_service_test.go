package services

import (
	"context"
	"testing"

	"iqr-control-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestDB(t), zap.NewNop())

	user, err := users.Create(ctx, UserInput{Username: "admin", Password: "secret123", FirstName: "Ali"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)

	_, err = users.Create(ctx, UserInput{Username: "admin", Password: "another1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = users.Create(ctx, UserInput{Username: "short", Password: "123"})
	assert.ErrorIs(t, err, ErrValidation)

	authed, err := users.Authenticate(ctx, "admin", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.NotNil(t, authed.LastLoginAt)

	_, err = users.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	updated, err := users.UpdateProfile(ctx, user.ID, ProfileInput{LastName: "Hassan", Password: "newpass1"})
	require.NoError(t, err)
	assert.Equal(t, "Ali", updated.FirstName, "blank fields are left alone")
	assert.Equal(t, "Hassan", updated.LastName)

	_, err = users.Authenticate(ctx, "admin", "newpass1")
	assert.NoError(t, err)

	assert.Equal(t, int64(1), countRows(t, users.db, &models.Activity{}, "type = ?", models.ActivityUserCreated))
	assert.Equal(t, int64(1), countRows(t, users.db, &models.Activity{}, "type = ?", models.ActivityProfileUpdated))
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestDB(t), zap.NewNop())

	created, err := users.SeedAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = users.SeedAdmin(ctx, "admin", "secret123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = users.SeedAdmin(ctx, "other", "secret123")
	require.NoError(t, err)
	assert.False(t, created, "seeding only happens on an empty table")
}
