package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/user"
)

// MockUserStorage оборачивает настоящее хранилище пользователей,
// как MockPostStorage
type MockUserStorage struct {
	next user.UserStorage

	mu    sync.Mutex
	err   error
	calls map[string]int
}

func NewMockUserStorage(next user.UserStorage) *MockUserStorage {
	return &MockUserStorage{next: next, calls: make(map[string]int)}
}

func (m *MockUserStorage) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockUserStorage) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockUserStorage) record(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	return m.err
}

func (m *MockUserStorage) FindUserByID(ctx context.Context, id int) (*model.User, error) {
	if err := m.record("FindUserByID"); err != nil {
		return nil, err
	}
	return m.next.FindUserByID(ctx, id)
}

func (m *MockUserStorage) FindUserByName(ctx context.Context, name string) (*model.User, error) {
	if err := m.record("FindUserByName"); err != nil {
		return nil, err
	}
	return m.next.FindUserByName(ctx, name)
}

func (m *MockUserStorage) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := m.record("FindUserByEmail"); err != nil {
		return nil, err
	}
	return m.next.FindUserByEmail(ctx, email)
}

func (m *MockUserStorage) FilterUsersByIDs(ctx context.Context, ids []int) ([]*model.User, error) {
	if err := m.record("FilterUsersByIDs"); err != nil {
		return nil, err
	}
	return m.next.FilterUsersByIDs(ctx, ids)
}

func (m *MockUserStorage) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	if err := m.record("GetAllUsers"); err != nil {
		return nil, err
	}
	return m.next.GetAllUsers(ctx)
}

func (m *MockUserStorage) AddUser(ctx context.Context, u *model.User) (*model.User, error) {
	if err := m.record("AddUser"); err != nil {
		return nil, err
	}
	return m.next.AddUser(ctx, u)
}

func (m *MockUserStorage) UpdateUser(ctx context.Context, id int, patch model.UserPatch) (*model.User, error) {
	if err := m.record("UpdateUser"); err != nil {
		return nil, err
	}
	return m.next.UpdateUser(ctx, id, patch)
}

func (m *MockUserStorage) ToggleFriend(ctx context.Context, userID, friendID int) (*model.User, error) {
	if err := m.record("ToggleFriend"); err != nil {
		return nil, err
	}
	return m.next.ToggleFriend(ctx, userID, friendID)
}

func (m *MockUserStorage) DeleteUser(ctx context.Context, id int) (*model.User, error) {
	if err := m.record("DeleteUser"); err != nil {
		return nil, err
	}
	return m.next.DeleteUser(ctx, id)
}
