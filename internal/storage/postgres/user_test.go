package postgres

import (
	"context"
	"testing"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserPostgresStorage_Find(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	s := NewUserPostgresStorage(db)
	ctx := context.Background()

	t.Run("By id", func(t *testing.T) {
		u, err := s.FindUserByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Fong", *u.Name)
		assert.Equal(t, []int{2, 3}, u.FriendIDs)
	})

	t.Run("By name", func(t *testing.T) {
		u, err := s.FindUserByName(ctx, "Kevin")
		require.NoError(t, err)
		assert.Equal(t, 2, u.ID)
	})

	t.Run("By email", func(t *testing.T) {
		u, err := s.FindUserByEmail(ctx, "mary@test.com")
		require.NoError(t, err)
		assert.Equal(t, 3, u.ID)
	})

	t.Run("Missing user", func(t *testing.T) {
		_, err := s.FindUserByID(ctx, 42)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.FindUserByName(ctx, "Nobody")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Filter by ids skips unknown", func(t *testing.T) {
		users, err := s.FilterUsersByIDs(ctx, []int{3, 99, 1})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, 1, users[0].ID)
		assert.Equal(t, 3, users[1].ID)
	})

	t.Run("Filter by empty ids", func(t *testing.T) {
		users, err := s.FilterUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("All users", func(t *testing.T) {
		users, err := s.GetAllUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})
}

func TestUserPostgresStorage_AddUser(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserPostgresStorage(db)
	ctx := context.Background()

	t.Run("First user gets id 1", func(t *testing.T) {
		u, err := s.AddUser(ctx, &model.User{Name: strPtr("Ann"), Email: "ann@test.com", FriendIDs: []int{}})
		require.NoError(t, err)
		assert.Equal(t, 1, u.ID)
	})

	t.Run("Next user gets max+1", func(t *testing.T) {
		u, err := s.AddUser(ctx, &model.User{Name: strPtr("Bob"), Email: "bob@test.com", FriendIDs: []int{}})
		require.NoError(t, err)
		assert.Equal(t, 2, u.ID)

		stored, err := s.FindUserByEmail(ctx, "bob@test.com")
		require.NoError(t, err)
		assert.Equal(t, "Bob", *stored.Name)
		assert.Empty(t, stored.FriendIDs)
	})
}

func TestUserPostgresStorage_UpdateUser(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	s := NewUserPostgresStorage(db)
	ctx := context.Background()

	t.Run("Only given fields change", func(t *testing.T) {
		u, err := s.UpdateUser(ctx, 1, model.UserPatch{Age: intPtr(30)})
		require.NoError(t, err)
		assert.Equal(t, 30, *u.Age)
		assert.Equal(t, "Fong", *u.Name)

		stored, err := s.FindUserByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 30, *stored.Age)
		assert.Equal(t, []int{2, 3}, stored.FriendIDs)
	})

	t.Run("Missing user", func(t *testing.T) {
		_, err := s.UpdateUser(ctx, 42, model.UserPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUserPostgresStorage_ToggleFriend(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	s := NewUserPostgresStorage(db)
	ctx := context.Background()

	t.Run("Removes existing friend", func(t *testing.T) {
		u, err := s.ToggleFriend(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{3}, u.FriendIDs)
	})

	t.Run("Adds friend back", func(t *testing.T) {
		u, err := s.ToggleFriend(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, u.FriendIDs)

		stored, err := s.FindUserByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, stored.FriendIDs)
	})

	t.Run("Missing user", func(t *testing.T) {
		_, err := s.ToggleFriend(ctx, 42, 1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUserPostgresStorage_DeleteUser(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	s := NewUserPostgresStorage(db)
	ctx := context.Background()

	u, err := s.DeleteUser(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Mary", *u.Name)

	_, err = s.FindUserByID(ctx, 3)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.DeleteUser(ctx, 3)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
