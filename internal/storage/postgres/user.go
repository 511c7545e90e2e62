package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/storage"
	"github.com/VitaminP8/gqltour/models"

	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct {
	db *gorm.DB
	mu sync.Mutex // max(id)+1 и toggle - read-modify-write, сериализуем их внутри процесса
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) FindUserByID(ctx context.Context, id int) (*model.User, error) {
	var row models.User
	err := s.db.First(&row, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %d", id))
	}
	return row.ToModel(), nil
}

func (s *UserPostgresStorage) FindUserByName(ctx context.Context, name string) (*model.User, error) {
	var row models.User
	err := s.db.Where("name = ?", name).Order("id").First(&row).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %q", name))
	}
	return row.ToModel(), nil
}

func (s *UserPostgresStorage) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var row models.User
	err := s.db.Where("email = ?", email).Order("id").First(&row).Error
	if err != nil {
		return nil, notFoundOr(err, "user with email "+email)
	}
	return row.ToModel(), nil
}

func (s *UserPostgresStorage) FilterUsersByIDs(ctx context.Context, ids []int) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	var rows []models.User
	err := s.db.Where("id IN (?)", ids).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}
	return usersToModel(rows), nil
}

func (s *UserPostgresStorage) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	var rows []models.User
	err := s.db.Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}
	return usersToModel(rows), nil
}

func (s *UserPostgresStorage) AddUser(ctx context.Context, u *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := models.UserFromModel(u)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, &models.User{})
		if err != nil {
			return err
		}
		row.ID = uint(id)
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	return row.ToModel(), nil
}

func (s *UserPostgresStorage) UpdateUser(ctx context.Context, id int, patch model.UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row models.User
	err := s.db.First(&row, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %d", id))
	}

	u := row.ToModel()
	u.Apply(patch)
	updated := models.UserFromModel(u)

	err = s.db.Save(updated).Error
	if err != nil {
		return nil, fmt.Errorf("could not update user: %w", err)
	}
	return updated.ToModel(), nil
}

func (s *UserPostgresStorage) ToggleFriend(ctx context.Context, userID, friendID int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row models.User
	err := s.db.First(&row, userID).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %d", userID))
	}

	row.FriendIDs = models.IDList(model.ToggleID(row.FriendIDs, friendID))
	err = s.db.Model(&row).Update("friend_ids", row.FriendIDs).Error
	if err != nil {
		return nil, fmt.Errorf("could not update friends: %w", err)
	}
	return row.ToModel(), nil
}

func (s *UserPostgresStorage) DeleteUser(ctx context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row models.User
	err := s.db.First(&row, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user %d", id))
	}

	err = s.db.Delete(&models.User{}, id).Error
	if err != nil {
		return nil, fmt.Errorf("could not delete user: %w", err)
	}
	return row.ToModel(), nil
}

func usersToModel(rows []models.User) []*model.User {
	result := make([]*model.User, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].ToModel())
	}
	return result
}

func notFoundOr(err error, what string) error {
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return fmt.Errorf("could not get %s: %w", what, err)
}
