package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/fixtures"
	"github.com/VitaminP8/gqltour/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMemoryStorage_AddPost(t *testing.T) {
	ctx := context.Background()

	t.Run("Id is max plus one and likes are empty", func(t *testing.T) {
		s := NewPostMemoryStorage(fixtures.Posts()...)
		fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		s.now = func() time.Time { return fixed }

		p, err := s.AddPost(ctx, &model.Post{AuthorID: 1, Title: "Third", Body: "post", LikeGiverIDs: []int{5}})
		require.NoError(t, err)
		assert.Equal(t, 3, p.ID)
		assert.Empty(t, p.LikeGiverIDs)
		assert.Equal(t, fixed, p.CreatedAt)

		fromStorage, err := s.FindPostByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, p, fromStorage)
	})

	t.Run("Id follows max, not length", func(t *testing.T) {
		s := NewPostMemoryStorage(&model.Post{ID: 10, AuthorID: 1}, &model.Post{ID: 4, AuthorID: 1})

		p, err := s.AddPost(ctx, &model.Post{AuthorID: 1, Title: "t"})
		require.NoError(t, err)
		assert.Equal(t, 11, p.ID)
	})

	t.Run("Empty storage", func(t *testing.T) {
		s := NewPostMemoryStorage()

		p, err := s.AddPost(ctx, &model.Post{AuthorID: 1, Title: "t"})
		require.NoError(t, err)
		assert.Equal(t, 1, p.ID)
	})
}

func TestPostMemoryStorage_Find(t *testing.T) {
	ctx := context.Background()
	s := NewPostMemoryStorage(fixtures.Posts()...)

	t.Run("Getting exists post", func(t *testing.T) {
		p, err := s.FindPostByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Nice Day", p.Title)
	})

	t.Run("Trying to get not exist post", func(t *testing.T) {
		_, err := s.FindPostByID(ctx, 23425532)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Filter by author", func(t *testing.T) {
		posts, err := s.FilterPostsByAuthorID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 1, posts[0].ID)

		posts, err = s.FilterPostsByAuthorID(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("Get all posts", func(t *testing.T) {
		posts, err := s.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	ctx := context.Background()
	s := NewPostMemoryStorage(fixtures.Posts()...)

	body := "edited"
	p, err := s.UpdatePost(ctx, 1, model.PostPatch{Body: &body})
	require.NoError(t, err)
	assert.Equal(t, "edited", p.Body)
	assert.Equal(t, "Hello World", p.Title)

	_, err = s.UpdatePost(ctx, 9, model.PostPatch{Body: &body})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostMemoryStorage_ToggleLike(t *testing.T) {
	ctx := context.Background()
	s := NewPostMemoryStorage(fixtures.Posts()...)

	t.Run("Like then unlike returns original state", func(t *testing.T) {
		original, err := s.FindPostByID(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, []int{1}, original.LikeGiverIDs)

		liked, err := s.ToggleLike(ctx, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, liked.LikeGiverIDs)

		unliked, err := s.ToggleLike(ctx, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, original.LikeGiverIDs, unliked.LikeGiverIDs)
	})

	t.Run("Unlike removes existing like", func(t *testing.T) {
		p, err := s.ToggleLike(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, p.LikeGiverIDs)
	})

	t.Run("Missing post", func(t *testing.T) {
		_, err := s.ToggleLike(ctx, 99, 1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_DeletePost(t *testing.T) {
	ctx := context.Background()
	s := NewPostMemoryStorage(fixtures.Posts()...)

	stored := s.posts[0]

	removed, err := s.DeletePost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", removed.Title)
	assert.NotSame(t, stored, removed, "DeletePost must return a copy")

	removed.LikeGiverIDs[0] = 42
	assert.Equal(t, 1, stored.LikeGiverIDs[0])

	_, err = s.FindPostByID(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.DeletePost(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	posts, err := s.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPostMemoryStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewPostMemoryStorage()

	var wg sync.WaitGroup
	numGoroutines := 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddPost(ctx, &model.Post{AuthorID: 1, Title: "concurrent"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	posts, err := s.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, numGoroutines)
	assert.Equal(t, numGoroutines, posts[len(posts)-1].ID)
}
