package graph

import (
	"context"
	"errors"
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/gqlerr"
	"github.com/VitaminP8/gqltour/internal/storage"

	graphql "github.com/graph-gophers/graphql-go"
)

type userResolver struct {
	r *Resolver
	u *model.User
}

func (ur *userResolver) ID() graphql.ID {
	return toID(ur.u.ID)
}

func (ur *userResolver) Name() *string {
	return ur.u.Name
}

func (ur *userResolver) Email() string {
	return ur.u.Email
}

func (ur *userResolver) Age() *int32 {
	if ur.u.Age == nil {
		return nil
	}
	age := int32(*ur.u.Age)
	return &age
}

func (ur *userResolver) Height(args struct{ Unit model.HeightUnit }) (*float64, error) {
	v, err := model.ConvertHeight(ur.u.Height, args.Unit)
	if err != nil {
		return nil, gqlerr.Validation("%s", err.Error())
	}
	return &v, nil
}

func (ur *userResolver) Weight(args struct{ Unit model.WeightUnit }) (*float64, error) {
	v, err := model.ConvertWeight(ur.u.Weight, args.Unit)
	if err != nil {
		return nil, gqlerr.Validation("%s", err.Error())
	}
	return &v, nil
}

// Friends пропускает id, которых уже нет в хранилище
func (ur *userResolver) Friends(ctx context.Context) (*[]*userResolver, error) {
	friends, err := ur.r.UserStore.FilterUsersByIDs(ctx, ur.u.FriendIDs)
	if err != nil {
		return nil, ur.r.internal(ctx, err)
	}
	return ur.r.users(friends), nil
}

func (ur *userResolver) Posts(ctx context.Context) (*[]*postResolver, error) {
	posts, err := ur.r.PostStore.FilterPostsByAuthorID(ctx, ur.u.ID)
	if err != nil {
		return nil, ur.r.internal(ctx, err)
	}
	return ur.r.posts(posts), nil
}

type postResolver struct {
	r *Resolver
	p *model.Post
}

func (pr *postResolver) ID() graphql.ID {
	return toID(pr.p.ID)
}

// Author - null, если автора удалили
func (pr *postResolver) Author(ctx context.Context) (*userResolver, error) {
	u, err := pr.r.UserStore.FindUserByID(ctx, pr.p.AuthorID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pr.r.internal(ctx, err)
	}
	return &userResolver{r: pr.r, u: u}, nil
}

func (pr *postResolver) Title() *string {
	return &pr.p.Title
}

func (pr *postResolver) Body() *string {
	return &pr.p.Body
}

func (pr *postResolver) LikeGivers(ctx context.Context) (*[]*userResolver, error) {
	users, err := pr.r.UserStore.FilterUsersByIDs(ctx, pr.p.LikeGiverIDs)
	if err != nil {
		return nil, pr.r.internal(ctx, err)
	}
	return pr.r.users(users), nil
}

// LikeCount считает только существующих пользователей, как и LikeGivers
func (pr *postResolver) LikeCount(ctx context.Context) (int32, error) {
	users, err := pr.r.UserStore.FilterUsersByIDs(ctx, pr.p.LikeGiverIDs)
	if err != nil {
		return 0, pr.r.internal(ctx, err)
	}
	return int32(len(users)), nil
}

func (pr *postResolver) CreatedAt() *string {
	if pr.p.CreatedAt.IsZero() {
		return nil
	}
	s := pr.p.CreatedAt.UTC().Format(time.RFC3339Nano)
	return &s
}

type tokenResolver struct {
	token string
}

func (tr *tokenResolver) Token() string {
	return tr.token
}

func (r *Resolver) users(list []*model.User) *[]*userResolver {
	result := make([]*userResolver, 0, len(list))
	for _, u := range list {
		result = append(result, &userResolver{r: r, u: u})
	}
	return &result
}

func (r *Resolver) posts(list []*model.Post) *[]*postResolver {
	result := make([]*postResolver, 0, len(list))
	for _, p := range list {
		result = append(result, &postResolver{r: r, p: p})
	}
	return &result
}
