package user

import (
	"context"

	"github.com/VitaminP8/gqltour/graph/model"
)

type UserStorage interface {
	FindUserByID(ctx context.Context, id int) (*model.User, error)
	FindUserByName(ctx context.Context, name string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FilterUsersByIDs(ctx context.Context, ids []int) ([]*model.User, error)
	GetAllUsers(ctx context.Context) ([]*model.User, error)
	AddUser(ctx context.Context, u *model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id int, patch model.UserPatch) (*model.User, error)
	ToggleFriend(ctx context.Context, userID, friendID int) (*model.User, error)
	DeleteUser(ctx context.Context, id int) (*model.User, error)
}
