package graph

import (
	"context"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/auth"
	"github.com/VitaminP8/gqltour/internal/gqlerr"

	graphql "github.com/graph-gophers/graphql-go"
)

const (
	notLoggedInMessage = "not logged in"
	notAuthorMessage   = "only the author can do this"
)

type authedFunc[A, R any] func(ctx context.Context, me auth.Identity, args A) (R, error)

type authorFunc[A, R any] func(ctx context.Context, me auth.Identity, p *model.Post, args A) (R, error)

// postArgs - аргументы мутаций над чужим (или своим) постом
type postArgs interface {
	targetPostID() graphql.ID
}

// isAuth пропускает дальше только запросы с identity в контексте
func isAuth[A, R any](next authedFunc[A, R]) func(context.Context, A) (R, error) {
	return func(ctx context.Context, args A) (R, error) {
		me, ok := auth.MeFromContext(ctx)
		if !ok {
			var zero R
			return zero, gqlerr.Forbidden(notLoggedInMessage)
		}
		return next(ctx, me, args)
	}
}

// isAuthor загружает пост по postId и сверяет автора. Ставится внутрь isAuth.
func isAuthor[A postArgs, R any](r *Resolver, next authorFunc[A, R]) authedFunc[A, R] {
	return func(ctx context.Context, me auth.Identity, args A) (R, error) {
		var zero R

		postID, err := parseID(args.targetPostID(), "post")
		if err != nil {
			return zero, err
		}
		p, err := r.PostStore.FindPostByID(ctx, postID)
		if err != nil {
			return zero, r.notFound(ctx, err, "post %d not found", postID)
		}
		if p.AuthorID != me.ID {
			return zero, gqlerr.Forbidden(notAuthorMessage)
		}
		return next(ctx, me, p, args)
	}
}
