package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/models"

	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct {
	db  *gorm.DB
	mu  sync.Mutex
	now func() time.Time
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db, now: time.Now}
}

func (s *PostPostgresStorage) FindPostByID(ctx context.Context, id int) (*model.Post, error) {
	var row models.Post
	err := s.db.First(&row, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", id))
	}
	return row.ToModel(), nil
}

func (s *PostPostgresStorage) FilterPostsByAuthorID(ctx context.Context, authorID int) ([]*model.Post, error) {
	var rows []models.Post
	err := s.db.Where("author_id = ?", authorID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts by author: %w", err)
	}
	return postsToModel(rows), nil
}

func (s *PostPostgresStorage) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	var rows []models.Post
	err := s.db.Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}
	return postsToModel(rows), nil
}

func (s *PostPostgresStorage) AddPost(ctx context.Context, p *model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := models.PostFromModel(p)
	row.LikeGiverIDs = models.IDList{}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = s.now().UTC()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, &models.Post{})
		if err != nil {
			return err
		}
		row.ID = uint(id)
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}
	return row.ToModel(), nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id int, patch model.PostPatch) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row models.Post
	err := s.db.First(&row, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", id))
	}

	p := row.ToModel()
	p.Apply(patch)
	updated := models.PostFromModel(p)

	err = s.db.Save(updated).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}
	return updated.ToModel(), nil
}

func (s *PostPostgresStorage) ToggleLike(ctx context.Context, postID, userID int) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row models.Post
	err := s.db.First(&row, postID).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", postID))
	}

	row.LikeGiverIDs = models.IDList(model.ToggleID(row.LikeGiverIDs, userID))
	err = s.db.Model(&row).Update("like_giver_ids", row.LikeGiverIDs).Error
	if err != nil {
		return nil, fmt.Errorf("could not update likes: %w", err)
	}
	return row.ToModel(), nil
}

func (s *PostPostgresStorage) DeletePost(ctx context.Context, id int) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row models.Post
	err := s.db.First(&row, id).Error
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", id))
	}

	err = s.db.Delete(&models.Post{}, id).Error
	if err != nil {
		return nil, fmt.Errorf("could not delete post: %w", err)
	}
	return row.ToModel(), nil
}

func postsToModel(rows []models.Post) []*model.Post {
	result := make([]*model.Post, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].ToModel())
	}
	return result
}
