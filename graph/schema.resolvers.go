package graph

import (
	"context"
	"errors"
	"strings"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/auth"
	"github.com/VitaminP8/gqltour/internal/gqlerr"
	"github.com/VitaminP8/gqltour/internal/storage"
	"github.com/VitaminP8/gqltour/internal/subscription"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

// Query

func (r *Resolver) Hello() *string {
	s := "world"
	return &s
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	return isAuth(func(ctx context.Context, me auth.Identity, _ struct{}) (*userResolver, error) {
		u, err := r.UserStore.FindUserByID(ctx, me.ID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, r.internal(ctx, err)
		}
		return &userResolver{r: r, u: u}, nil
	})(ctx, struct{}{})
}

func (r *Resolver) Users(ctx context.Context) (*[]*userResolver, error) {
	users, err := r.UserStore.GetAllUsers(ctx)
	if err != nil {
		return nil, r.internal(ctx, err)
	}
	return r.users(users), nil
}

func (r *Resolver) User(ctx context.Context, args struct{ Name string }) (*userResolver, error) {
	u, err := r.UserStore.FindUserByName(ctx, args.Name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.internal(ctx, err)
	}
	return &userResolver{r: r, u: u}, nil
}

func (r *Resolver) Posts(ctx context.Context) (*[]*postResolver, error) {
	posts, err := r.PostStore.GetAllPosts(ctx)
	if err != nil {
		return nil, r.internal(ctx, err)
	}
	return r.posts(posts), nil
}

func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) (*postResolver, error) {
	id, err := parseID(args.ID, "post")
	if err != nil {
		return nil, err
	}
	p, err := r.PostStore.FindPostByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.internal(ctx, err)
	}
	return &postResolver{r: r, p: p}, nil
}

// Mutation

type signUpArgs struct {
	Name     *string
	Email    string
	Password string
}

func (r *Resolver) SignUp(ctx context.Context, args signUpArgs) (*userResolver, error) {
	email := strings.TrimSpace(args.Email)
	if email == "" {
		return nil, gqlerr.Validation("email must not be empty")
	}
	if args.Password == "" {
		return nil, gqlerr.Validation("password must not be empty")
	}

	hash, err := auth.HashPassword(args.Password)
	if err != nil {
		return nil, r.internal(ctx, err)
	}

	r.signUpMu.Lock()
	defer r.signUpMu.Unlock()

	_, err = r.UserStore.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, gqlerr.Validation("user with email %q already exists", email)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, r.internal(ctx, err)
	}

	u, err := r.UserStore.AddUser(ctx, &model.User{
		Name:         args.Name,
		Email:        email,
		PasswordHash: hash,
		FriendIDs:    []int{},
	})
	if err != nil {
		return nil, r.internal(ctx, err)
	}

	r.Logger.Info("user signed up", zap.Int("user_id", u.ID))
	return &userResolver{r: r, u: u}, nil
}

type loginArgs struct {
	Email    string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args loginArgs) (*tokenResolver, error) {
	u, err := r.UserStore.FindUserByEmail(ctx, strings.TrimSpace(args.Email))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, gqlerr.Unauthenticated("email not signed up")
	}
	if err != nil {
		return nil, r.internal(ctx, err)
	}

	err = auth.CheckPassword(u.PasswordHash, args.Password)
	if errors.Is(err, auth.ErrWrongPassword) {
		return nil, gqlerr.Unauthenticated("wrong password")
	}
	if err != nil {
		return nil, r.internal(ctx, err)
	}

	token, err := r.Tokens.Sign(u)
	if err != nil {
		return nil, r.internal(ctx, err)
	}
	return &tokenResolver{token: token}, nil
}

type UpdateMyInfoInput struct {
	Name *string
	Age  *int32
}

type updateMyInfoArgs struct {
	Input UpdateMyInfoInput
}

func (r *Resolver) UpdateMyInfo(ctx context.Context, args updateMyInfoArgs) (*userResolver, error) {
	return isAuth(r.updateMyInfo)(ctx, args)
}

func (r *Resolver) updateMyInfo(ctx context.Context, me auth.Identity, args updateMyInfoArgs) (*userResolver, error) {
	patch := model.UserPatch{Name: args.Input.Name}
	if args.Input.Age != nil {
		if *args.Input.Age < 0 {
			return nil, gqlerr.Validation("age must not be negative")
		}
		age := int(*args.Input.Age)
		patch.Age = &age
	}

	u, err := r.UserStore.UpdateUser(ctx, me.ID, patch)
	if err != nil {
		return nil, r.notFound(ctx, err, "user %d not found", me.ID)
	}
	return &userResolver{r: r, u: u}, nil
}

type addFriendArgs struct {
	UserID graphql.ID
}

func (r *Resolver) AddFriend(ctx context.Context, args addFriendArgs) (*userResolver, error) {
	return isAuth(r.addFriend)(ctx, args)
}

// addFriend переключает дружбу: добавляет, если не было, и убирает, если была
func (r *Resolver) addFriend(ctx context.Context, me auth.Identity, args addFriendArgs) (*userResolver, error) {
	friendID, err := parseID(args.UserID, "user")
	if err != nil {
		return nil, err
	}
	if friendID == me.ID {
		return nil, gqlerr.Validation("cannot add yourself as a friend")
	}
	if _, err := r.UserStore.FindUserByID(ctx, friendID); err != nil {
		return nil, r.notFound(ctx, err, "user %d not found", friendID)
	}

	u, err := r.UserStore.ToggleFriend(ctx, me.ID, friendID)
	if err != nil {
		return nil, r.notFound(ctx, err, "user %d not found", me.ID)
	}
	return &userResolver{r: r, u: u}, nil
}

type AddPostInput struct {
	Title string
	Body  *string
}

type addPostArgs struct {
	Input AddPostInput
}

func (r *Resolver) AddPost(ctx context.Context, args addPostArgs) (*postResolver, error) {
	return isAuth(r.addPost)(ctx, args)
}

func (r *Resolver) addPost(ctx context.Context, me auth.Identity, args addPostArgs) (*postResolver, error) {
	title := strings.TrimSpace(args.Input.Title)
	if title == "" {
		return nil, gqlerr.Validation("title must not be empty")
	}
	body := ""
	if args.Input.Body != nil {
		body = *args.Input.Body
	}

	p, err := r.PostStore.AddPost(ctx, &model.Post{AuthorID: me.ID, Title: title, Body: body})
	if err != nil {
		return nil, r.internal(ctx, err)
	}

	pr := &postResolver{r: r, p: p}
	r.publish(subscription.TopicPostAdded, pr)
	return pr, nil
}

type likePostArgs struct {
	PostID graphql.ID
}

func (r *Resolver) LikePost(ctx context.Context, args likePostArgs) (*postResolver, error) {
	return isAuth(r.likePost)(ctx, args)
}

// likePost переключает лайк текущего пользователя
func (r *Resolver) likePost(ctx context.Context, me auth.Identity, args likePostArgs) (*postResolver, error) {
	postID, err := parseID(args.PostID, "post")
	if err != nil {
		return nil, err
	}

	p, err := r.PostStore.ToggleLike(ctx, postID, me.ID)
	if err != nil {
		return nil, r.notFound(ctx, err, "post %d not found", postID)
	}

	pr := &postResolver{r: r, p: p}
	r.publish(subscription.PostLikedTopic(postID), pr)
	return pr, nil
}

type UpdatePostInput struct {
	Title *string
	Body  *string
}

type updatePostArgs struct {
	PostID graphql.ID
	Input  UpdatePostInput
}

func (a updatePostArgs) targetPostID() graphql.ID { return a.PostID }

func (r *Resolver) UpdatePost(ctx context.Context, args updatePostArgs) (*postResolver, error) {
	return isAuth(isAuthor(r, r.updatePost))(ctx, args)
}

func (r *Resolver) updatePost(ctx context.Context, _ auth.Identity, p *model.Post, args updatePostArgs) (*postResolver, error) {
	if args.Input.Title != nil && strings.TrimSpace(*args.Input.Title) == "" {
		return nil, gqlerr.Validation("title must not be empty")
	}

	updated, err := r.PostStore.UpdatePost(ctx, p.ID, model.PostPatch{Title: args.Input.Title, Body: args.Input.Body})
	if err != nil {
		return nil, r.notFound(ctx, err, "post %d not found", p.ID)
	}
	return &postResolver{r: r, p: updated}, nil
}

type deletePostArgs struct {
	PostID graphql.ID
}

func (a deletePostArgs) targetPostID() graphql.ID { return a.PostID }

func (r *Resolver) DeletePost(ctx context.Context, args deletePostArgs) (*postResolver, error) {
	return isAuth(isAuthor(r, r.deletePost))(ctx, args)
}

func (r *Resolver) deletePost(ctx context.Context, _ auth.Identity, p *model.Post, _ deletePostArgs) (*postResolver, error) {
	deleted, err := r.PostStore.DeletePost(ctx, p.ID)
	if err != nil {
		return nil, r.notFound(ctx, err, "post %d not found", p.ID)
	}
	return &postResolver{r: r, p: deleted}, nil
}

// Subscription

func (r *Resolver) PostAdded(ctx context.Context) (<-chan *postResolver, error) {
	return r.stream(ctx, subscription.TopicPostAdded), nil
}

type postLikedArgs struct {
	PostID graphql.ID
}

func (r *Resolver) PostLiked(ctx context.Context, args postLikedArgs) (<-chan *postResolver, error) {
	postID, err := parseID(args.PostID, "post")
	if err != nil {
		return nil, err
	}
	if _, err := r.PostStore.FindPostByID(ctx, postID); err != nil {
		return nil, r.notFound(ctx, err, "post %d not found", postID)
	}
	return r.stream(ctx, subscription.PostLikedTopic(postID)), nil
}

// stream пересылает события топика, пока жив контекст подписки
func (r *Resolver) stream(ctx context.Context, topic string) <-chan *postResolver {
	out := make(chan *postResolver)
	if r.Events == nil {
		close(out)
		return out
	}

	events, cancel := r.Events.Subscribe(topic)
	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case p, ok := <-events:
				if !ok {
					return
				}
				select {
				case out <- &postResolver{r: r, p: p}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
