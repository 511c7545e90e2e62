package graph

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/gqltour/internal/auth"
	"github.com/VitaminP8/gqltour/internal/fixtures"
	"github.com/VitaminP8/gqltour/internal/mocks"
	"github.com/VitaminP8/gqltour/internal/storage/memory"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_for_jwt"

var (
	hashOnce     sync.Once
	fixtureHash  string
	fixtureError error
)

// bcrypt медленный, хешируем пароль фикстур один раз на пакет
func cachedHash(string) (string, error) {
	hashOnce.Do(func() {
		fixtureHash, fixtureError = auth.HashPassword(fixtures.DefaultPassword)
	})
	return fixtureHash, fixtureError
}

type testEnv struct {
	resolver *Resolver
	schema   *graphql.Schema
	users    *mocks.MockUserStorage
	posts    *mocks.MockPostStorage
	events   *mocks.MockSubscriptionManager
	tokens   *auth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users, err := fixtures.WithPasswords(fixtures.Users(), cachedHash)
	require.NoError(t, err)

	env := &testEnv{
		users:  mocks.NewMockUserStorage(memory.NewUserMemoryStorage(users...)),
		posts:  mocks.NewMockPostStorage(memory.NewPostMemoryStorage(fixtures.Posts()...)),
		events: mocks.NewMockSubscriptionManager(),
		tokens: auth.NewTokenIssuer(testSecret, 24*time.Hour),
	}
	env.resolver = &Resolver{
		UserStore: env.users,
		PostStore: env.posts,
		Tokens:    env.tokens,
		Events:    env.events,
	}

	env.schema, err = NewSchema(env.resolver)
	require.NoError(t, err)
	return env
}

func createUserContext(userID int) context.Context {
	return auth.WithMe(context.Background(), auth.Identity{ID: userID})
}

// exec выполняет запрос и раскладывает data в out (если out не nil)
func (e *testEnv) exec(t *testing.T, ctx context.Context, query string, vars map[string]interface{}, out interface{}) []*gqlerrors.QueryError {
	t.Helper()

	resp := e.schema.Exec(ctx, query, "", vars)
	if out != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
	return resp.Errors
}

func errorCode(err *gqlerrors.QueryError) interface{} {
	if err.Extensions == nil {
		return nil
	}
	return err.Extensions["code"]
}
