package post

import (
	"context"

	"github.com/VitaminP8/gqltour/graph/model"
)

type PostStorage interface {
	FindPostByID(ctx context.Context, id int) (*model.Post, error)
	FilterPostsByAuthorID(ctx context.Context, authorID int) ([]*model.Post, error)
	GetAllPosts(ctx context.Context) ([]*model.Post, error)
	AddPost(ctx context.Context, p *model.Post) (*model.Post, error)
	UpdatePost(ctx context.Context, id int, patch model.PostPatch) (*model.Post, error)
	ToggleLike(ctx context.Context, postID, userID int) (*model.Post, error)
	DeletePost(ctx context.Context, id int) (*model.Post, error)
}
