package main

import (
	"net/http"

	"github.com/VitaminP8/gqltour/internal/auth"
	"github.com/VitaminP8/gqltour/internal/logger"
	"github.com/VitaminP8/gqltour/internal/metrics"

	"github.com/99designs/gqlgen/graphql/playground"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
	"go.uber.org/zap"
)

const queryPath = "/query"

// newRouter собирает HTTP маршруты сервера:
//
//	/        - страница Playground
//	/query   - запросы, мутации и подписки (websocket)
//	/metrics - метрики Prometheus
func newRouter(schema *graphql.Schema, tokens *auth.TokenIssuer, log *zap.Logger, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// websocket-запросы уходят в подписки, остальные в relay.Handler
	query := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})
	mux.Handle(queryPath, m.Middleware(queryPath, auth.Middleware(tokens, log)(query)))
	mux.Handle("/", m.Middleware("/", playground.Handler("GraphQL Playground", queryPath)))
	mux.Handle("/metrics", m.Handler())

	return logger.Middleware(log)(mux)
}
