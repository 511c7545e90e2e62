package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/post"
)

// MockPostStorage оборачивает настоящее хранилище: считает вызовы
// и умеет отвечать заданной ошибкой
type MockPostStorage struct {
	next post.PostStorage

	mu    sync.Mutex
	err   error
	calls map[string]int
}

func NewMockPostStorage(next post.PostStorage) *MockPostStorage {
	return &MockPostStorage{next: next, calls: make(map[string]int)}
}

// FailWith заставляет все следующие вызовы вернуть err (nil - снова работать)
func (m *MockPostStorage) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockPostStorage) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockPostStorage) record(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	return m.err
}

func (m *MockPostStorage) FindPostByID(ctx context.Context, id int) (*model.Post, error) {
	if err := m.record("FindPostByID"); err != nil {
		return nil, err
	}
	return m.next.FindPostByID(ctx, id)
}

func (m *MockPostStorage) FilterPostsByAuthorID(ctx context.Context, authorID int) ([]*model.Post, error) {
	if err := m.record("FilterPostsByAuthorID"); err != nil {
		return nil, err
	}
	return m.next.FilterPostsByAuthorID(ctx, authorID)
}

func (m *MockPostStorage) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	if err := m.record("GetAllPosts"); err != nil {
		return nil, err
	}
	return m.next.GetAllPosts(ctx)
}

func (m *MockPostStorage) AddPost(ctx context.Context, p *model.Post) (*model.Post, error) {
	if err := m.record("AddPost"); err != nil {
		return nil, err
	}
	return m.next.AddPost(ctx, p)
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id int, patch model.PostPatch) (*model.Post, error) {
	if err := m.record("UpdatePost"); err != nil {
		return nil, err
	}
	return m.next.UpdatePost(ctx, id, patch)
}

func (m *MockPostStorage) ToggleLike(ctx context.Context, postID, userID int) (*model.Post, error) {
	if err := m.record("ToggleLike"); err != nil {
		return nil, err
	}
	return m.next.ToggleLike(ctx, postID, userID)
}

func (m *MockPostStorage) DeletePost(ctx context.Context, id int) (*model.Post, error) {
	if err := m.record("DeletePost"); err != nil {
		return nil, err
	}
	return m.next.DeletePost(ctx, id)
}
