package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/storage"
)

type UserMemoryStorage struct {
	mu    sync.Mutex
	users []*model.User // порядок вставки сохраняется, как у массива
}

// NewUserMemoryStorage создает хранилище и копирует в него seed
func NewUserMemoryStorage(seed ...*model.User) *UserMemoryStorage {
	users := make([]*model.User, 0, len(seed))
	for _, u := range seed {
		users = append(users, u.Clone())
	}
	return &UserMemoryStorage{users: users}
}

func (s *UserMemoryStorage) FindUserByID(_ context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(id)
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return u.Clone(), nil
}

func (s *UserMemoryStorage) FindUserByName(_ context.Context, name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Name != nil && *u.Name == name {
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", name, storage.ErrNotFound)
}

func (s *UserMemoryStorage) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
}

// FilterUsersByIDs возвращает пользователей в порядке хранилища, неизвестные id пропускаются
func (s *UserMemoryStorage) FilterUsersByIDs(_ context.Context, ids []int) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*model.User, 0, len(ids))
	for _, u := range s.users {
		if model.ContainsID(ids, u.ID) {
			result = append(result, u.Clone())
		}
	}
	return result, nil
}

func (s *UserMemoryStorage) GetAllUsers(_ context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u.Clone())
	}
	return result, nil
}

func (s *UserMemoryStorage) AddUser(_ context.Context, u *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.users))
	for _, existing := range s.users {
		ids = append(ids, existing.ID)
	}

	created := u.Clone()
	created.ID = model.NextID(ids)
	s.users = append(s.users, created)

	return created.Clone(), nil
}

func (s *UserMemoryStorage) UpdateUser(_ context.Context, id int, patch model.UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(id)
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}

	u.Apply(patch)
	return u.Clone(), nil
}

func (s *UserMemoryStorage) ToggleFriend(_ context.Context, userID, friendID int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(userID)
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", userID, storage.ErrNotFound)
	}

	u.FriendIDs = model.ToggleID(u.FriendIDs, friendID)
	return u.Clone(), nil
}

func (s *UserMemoryStorage) DeleteUser(_ context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
}

// вызывать только под s.mu
func (s *UserMemoryStorage) findByID(id int) *model.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
