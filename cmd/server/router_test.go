package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/VitaminP8/gqltour/graph"
	"github.com/VitaminP8/gqltour/internal/auth"
	"github.com/VitaminP8/gqltour/internal/logger"
	"github.com/VitaminP8/gqltour/internal/metrics"
	"github.com/VitaminP8/gqltour/internal/storage/memory"
	"github.com/VitaminP8/gqltour/internal/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	users, posts, err := seedData(&options{})
	require.NoError(t, err)

	m := metrics.New()
	resolver := &graph.Resolver{
		UserStore: memory.NewUserMemoryStorage(users...),
		PostStore: memory.NewPostMemoryStorage(posts...),
		Tokens:    auth.NewTokenIssuer("router_test_secret", time.Hour),
		Events:    subscription.NewSubscriptionManager(m),
		Logger:    zap.NewNop(),
	}
	schema, err := graph.NewSchema(resolver)
	require.NoError(t, err)

	srv := httptest.NewServer(newRouter(schema, resolver.Tokens, zap.NewNop(), m))
	t.Cleanup(srv.Close)
	return srv
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func postQuery(t *testing.T, srv *httptest.Server, token, query string) (*http.Response, gqlResponse) {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{"query": query})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+queryPath, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestRouter_Query(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Anonymous hello", func(t *testing.T) {
		resp, out := postQuery(t, srv, "", `{ hello }`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, out.Errors)
		assert.JSONEq(t, `{"hello":"world"}`, string(out.Data))
		assert.NotEmpty(t, resp.Header.Get(logger.RequestIDHeader))
	})

	t.Run("Login then me", func(t *testing.T) {
		_, out := postQuery(t, srv, "", `mutation { login(email: "fong@test.com", password: "123456") { token } }`)
		require.Empty(t, out.Errors)

		var login struct {
			Login struct{ Token string } `json:"login"`
		}
		require.NoError(t, json.Unmarshal(out.Data, &login))
		require.NotEmpty(t, login.Login.Token)

		_, out = postQuery(t, srv, "Bearer "+login.Login.Token, `{ me { id name } }`)
		require.Empty(t, out.Errors)
		assert.JSONEq(t, `{"me":{"id":"1","name":"Fong"}}`, string(out.Data))
	})

	t.Run("Invalid token is rejected", func(t *testing.T) {
		resp, out := postQuery(t, srv, "not-a-jwt", `{ hello }`)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, "UNAUTHENTICATED", out.Errors[0].Extensions["code"])
	})

	t.Run("Keeps incoming request id", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+queryPath, strings.NewReader(`{"query":"{ hello }"}`))
		require.NoError(t, err)
		req.Header.Set(logger.RequestIDHeader, "req-42")

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "req-42", resp.Header.Get(logger.RequestIDHeader))
	})
}

func TestRouter_Playground(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "GraphQL Playground")
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t)

	postQuery(t, srv, "", `{ hello }`)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `gqltour_http_requests_total{code="200",path="/query"} 1`)
}

func TestSeedData(t *testing.T) {
	t.Run("Fixtures only", func(t *testing.T) {
		users, posts, err := seedData(&options{})
		require.NoError(t, err)

		assert.Len(t, users, 3)
		assert.Len(t, posts, 2)
		for _, u := range users {
			assert.NoError(t, auth.CheckPassword(u.PasswordHash, "123456"))
		}
	})

	t.Run("With fake users", func(t *testing.T) {
		users, posts, err := seedData(&options{fakeUsers: 5, fakePosts: 2, fakeSeed: 7})
		require.NoError(t, err)

		require.Len(t, users, 8)
		require.Len(t, posts, 12)
		assert.Equal(t, 4, users[3].ID)
		assert.Equal(t, 3, posts[2].ID)
		assert.NotEmpty(t, users[7].PasswordHash)
	})
}

func TestRootCmdRejectsUnknownStorage(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--storage", "redis"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage type "redis"`)
}
