package repository

import (
	"context"
	"testing"

	"inventory_api/internal/model"
	"inventory_api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepo(t *testing.T) UserRepository {
	t.Helper()
	users, err := store.NewCollection[model.User](t.TempDir(), "users")
	require.NoError(t, err)
	return NewUserRepository(users)
}

func TestUserRepository_CreateAssignsUniqueIDs(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		user := &model.User{Name: "N", Email: email, PasswordHash: "h", Role: model.RoleUser}
		require.NoError(t, repo.Create(ctx, user))
		// Creations in the same millisecond must still get distinct ids.
		assert.False(t, seen[user.ID])
		seen[user.ID] = true
	}
}

func TestUserRepository_NormalizesEmailOnWriteAndLookup(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	user := &model.User{Name: "Ana", Email: "Ana@X.com", PasswordHash: "h", Role: model.RoleUser}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "ana@x.com", user.Email)

	found, err := repo.FindByEmail(ctx, "ANA@x.COM")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ana@x.com", found.Email)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.ID, byID.ID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", Role: model.RoleUser}))

	err := repo.Create(ctx, &model.User{Name: "Dup", Email: "ANA@X.COM", PasswordHash: "h", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_FindByEmailAbsent(t *testing.T) {
	repo := newUserRepo(t)

	found, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestNextID_BumpsPastExisting(t *testing.T) {
	assert.Equal(t, int64(100), nextID(100, nil))
	assert.Equal(t, int64(100), nextID(100, []int64{50, 99}))
	assert.Equal(t, int64(101), nextID(100, []int64{100}))
	assert.Equal(t, int64(201), nextID(100, []int64{200, 150}))
}
