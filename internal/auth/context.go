package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VitaminP8/gqltour/internal/gqlerr"

	"go.uber.org/zap"
)

const (
	TokenHeader = "x-token"

	sessionExpiredMessage = "your session expired, sign in again"
)

// Identity - кто делает запрос
type Identity struct {
	ID    int
	Email string
}

type contextKey string

const meKey = contextKey("me")

// Сохраняет identity в контексте
func WithMe(ctx context.Context, me Identity) context.Context {
	return context.WithValue(ctx, meKey, me)
}

// Достает identity из контекста, false для анонимного запроса
func MeFromContext(ctx context.Context) (Identity, bool) {
	me, ok := ctx.Value(meKey).(Identity)
	return me, ok
}

// Middleware кладет в контекст identity из x-token.
// Без заголовка запрос анонимный, с невалидным токеном отклоняется целиком.
func Middleware(issuer *TokenIssuer, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r.Header.Get(TokenHeader))
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			me, err := issuer.Parse(tokenStr)
			if err != nil {
				log.Debug("rejected token", zap.Error(err))
				writeUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithMe(r.Context(), me)))
		})
	}
}

type errorBody struct {
	Errors []errorEntry `json:"errors"`
}

type errorEntry struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

func writeUnauthenticated(w http.ResponseWriter) {
	e := gqlerr.As(gqlerr.Unauthenticated(sessionExpiredMessage))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errorBody{
		Errors: []errorEntry{{Message: e.Message, Extensions: e.Extensions()}},
	})
}

// принимает и голый токен, и "Bearer <token>"
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return header
}
