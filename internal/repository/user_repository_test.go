package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp/internal/model"
	"blogapp/internal/testutil"
)

func newUser(email, username string) *model.User {
	return &model.User{
		Name:         "Test User",
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$hash",
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewTestDB(t))

	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	user := newUser("a@x.com", "a")
	user.DateOfBirth = &dob
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
	require.NotNil(t, byID.DateOfBirth)
	assert.Equal(t, "1990-05-17", byID.DateOfBirth.Format("2006-01-02"))

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "missing@x.com")
	assert.True(t, IsNotFound(err))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_FindByEmailOrUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewTestDB(t))
	require.NoError(t, repo.Create(ctx, newUser("a@x.com", "a")))

	tests := []struct {
		name     string
		email    string
		username string
		found    bool
	}{
		{"email matches", "a@x.com", "other", true},
		{"username matches", "other@x.com", "a", true},
		{"both match", "a@x.com", "a", true},
		{"neither matches", "b@x.com", "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.FindByEmailOrUsername(ctx, tt.email, tt.username)
			if tt.found {
				require.NoError(t, err)
				assert.Equal(t, "a@x.com", user.Email)
			} else {
				assert.True(t, IsNotFound(err))
				assert.Nil(t, user)
			}
		})
	}
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewTestDB(t))
	require.NoError(t, repo.Create(ctx, newUser("a@x.com", "a")))

	err := repo.Create(ctx, newUser("a@x.com", "someone-else"))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	err = repo.Create(ctx, newUser("b@x.com", "a"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}
