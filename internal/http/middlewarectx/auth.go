// Package middlewarectx содержит HTTP middleware сервиса и ключи контекста запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID id профиля в контексте.
	UserID Key = "user_id"
	// Role роль пользователя в контексте.
	Role Key = "role"
	// Token исходный bearer-токен в контексте.
	Token Key = "token"
	// Identity *models.Identity в контексте.
	Identity Key = "identity"
)

// Service проверяет токен доступа.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.Identity, error)
}

// JWTMiddleware проверяет заголовок Authorization и кладет личность пользователя в контекст.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := BearerToken(r)
			if !ok {
				log.Warn("missing or invalid authorization header")
				response.WriteError(w, r, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			identity, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil || identity == nil {
				log.Warn("invalid or expired token", sl.Err(err))
				response.WriteError(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserID, identity.UserID)
			ctx = context.WithValue(ctx, Role, identity.Role)
			ctx = context.WithValue(ctx, Token, tokenStr)
			ctx = context.WithValue(ctx, Identity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken достает токен из заголовка "Authorization: Bearer <token>".
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// UserIDFrom возвращает id пользователя из контекста.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}

// RoleFrom возвращает роль пользователя из контекста.
func RoleFrom(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(Role).(models.Role)
	return role, ok
}

// IdentityFrom возвращает личность пользователя из контекста.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(Identity).(*models.Identity)
	return identity, ok && identity != nil
}
