package rest

import (
	"context"
	"net/http"
	"strings"

	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

// Приватный тип ключа контекста, чтобы избежать коллизий.
type authContextKey string

const (
	claimsContextKey authContextKey = "user_claims"
	userIDContextKey authContextKey = "user_id"
)

// AuthMiddleware проверяет JWT и кладет claims пользователя в контекст.
type AuthMiddleware struct {
	validateTokenUC usecases_port.ValidateTokenUseCasePort
}

func NewAuthMiddleware(validateTokenUC usecases_port.ValidateTokenUseCasePort) *AuthMiddleware {
	return &AuthMiddleware{validateTokenUC: validateTokenUC}
}

// Authenticate - middleware для проверки JWT
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := am.validateTokenUC.Execute(r.Context(), tokenString)
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		// Информация о пользователе - в контекст для следующих обработчиков
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		ctx = context.WithValue(ctx, userIDContextKey, claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole - middleware для проверки роли пользователя
func (am *AuthMiddleware) RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(claimsContextKey).(*domain.Claims)
			if !ok {
				WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if claims.Role != requiredRole {
				WriteJSONError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// userIDFromContext достает ID пользователя, положенный Authenticate.
func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDContextKey).(uuid.UUID)
	return id, ok
}

// claimsFromContext достает claims, положенные Authenticate.
func claimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*domain.Claims)
	return claims, ok
}
