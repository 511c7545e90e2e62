package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/VitaminP8/gqltour/internal/auth"
	"github.com/VitaminP8/gqltour/internal/gqlerr"
	"github.com/VitaminP8/gqltour/internal/logger"
	"github.com/VitaminP8/gqltour/internal/post"
	"github.com/VitaminP8/gqltour/internal/storage"
	"github.com/VitaminP8/gqltour/internal/subscription"
	"github.com/VitaminP8/gqltour/internal/user"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

const maxParallelism = 10

// Resolver служит корневой точкой для всех резолверов.
// Query, Mutation и Subscription - его методы.
type Resolver struct {
	UserStore user.UserStorage
	PostStore post.PostStorage
	Tokens    *auth.TokenIssuer
	Events    subscription.Manager
	Logger    *zap.Logger

	signUpMu sync.Mutex // проверка email и добавление должны идти вместе
}

// NewSchema связывает схему с резолвером. Дополнительные опции (трейсер метрик) передает вызывающий.
func NewSchema(r *Resolver, opts ...graphql.SchemaOpt) (*graphql.Schema, error) {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}

	base := []graphql.SchemaOpt{
		graphql.Logger(logger.PanicLogger{Log: r.Logger}),
		graphql.MaxParallelism(maxParallelism),
	}
	schema, err := graphql.ParseSchema(Schema, r, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("could not parse schema: %w", err)
	}
	return schema, nil
}

// internal логирует причину и отдает клиенту обезличенную ошибку
func (r *Resolver) internal(ctx context.Context, err error) error {
	r.Logger.Error("resolver failed",
		zap.String("request_id", logger.RequestIDFromContext(ctx)),
		zap.Error(err),
	)
	return gqlerr.Internal(err)
}

// notFound превращает storage.ErrNotFound в ошибку валидации
func (r *Resolver) notFound(ctx context.Context, err error, format string, args ...interface{}) error {
	if errors.Is(err, storage.ErrNotFound) {
		return gqlerr.Validation(format, args...)
	}
	return r.internal(ctx, err)
}

func (r *Resolver) publish(topic string, p *postResolver) {
	if r.Events == nil {
		return
	}
	r.Events.Publish(topic, p.p)
}

func parseID(id graphql.ID, what string) (int, error) {
	n, err := strconv.Atoi(string(id))
	if err != nil || n <= 0 {
		return 0, gqlerr.Validation("invalid %s id %q", what, string(id))
	}
	return n, nil
}

func toID(id int) graphql.ID {
	return graphql.ID(strconv.Itoa(id))
}
