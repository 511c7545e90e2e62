package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/storage"
)

type PostMemoryStorage struct {
	mu    sync.Mutex
	posts []*model.Post
	now   func() time.Time
}

func NewPostMemoryStorage(seed ...*model.Post) *PostMemoryStorage {
	posts := make([]*model.Post, 0, len(seed))
	for _, p := range seed {
		posts = append(posts, p.Clone())
	}
	return &PostMemoryStorage{
		posts: posts,
		now:   time.Now,
	}
}

func (s *PostMemoryStorage) FindPostByID(_ context.Context, id int) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findByID(id)
	if p == nil {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	return p.Clone(), nil
}

func (s *PostMemoryStorage) FilterPostsByAuthorID(_ context.Context, authorID int) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*model.Post, 0)
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

func (s *PostMemoryStorage) GetAllPosts(_ context.Context) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		result = append(result, p.Clone())
	}
	return result, nil
}

// AddPost назначает id = max+1, обнуляет лайки и ставит CreatedAt, если он не задан
func (s *PostMemoryStorage) AddPost(_ context.Context, p *model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.posts))
	for _, existing := range s.posts {
		ids = append(ids, existing.ID)
	}

	created := p.Clone()
	created.ID = model.NextID(ids)
	created.LikeGiverIDs = []int{}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = s.now().UTC()
	}
	s.posts = append(s.posts, created)

	return created.Clone(), nil
}

func (s *PostMemoryStorage) UpdatePost(_ context.Context, id int, patch model.PostPatch) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findByID(id)
	if p == nil {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}

	p.Apply(patch)
	return p.Clone(), nil
}

func (s *PostMemoryStorage) ToggleLike(_ context.Context, postID, userID int) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findByID(postID)
	if p == nil {
		return nil, fmt.Errorf("post %d: %w", postID, storage.ErrNotFound)
	}

	p.LikeGiverIDs = model.ToggleID(p.LikeGiverIDs, userID)
	return p.Clone(), nil
}

func (s *PostMemoryStorage) DeletePost(_ context.Context, id int) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return p.Clone(), nil
		}
	}
	return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
}

func (s *PostMemoryStorage) findByID(id int) *model.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}
