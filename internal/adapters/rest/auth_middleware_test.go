package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidateTokenUseCase struct {
	gotToken string
	claims   *domain.Claims
	err      error
}

func (s *stubValidateTokenUseCase) Execute(ctx context.Context, tokenString string) (*domain.Claims, error) {
	s.gotToken = tokenString
	return s.claims, s.err
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	claims := &domain.Claims{UserID: userID, Email: "buyer@example.com", Role: "user"}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok := userIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, gotID)

		gotClaims, ok := claimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, claims, gotClaims)

		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		stub := &stubValidateTokenUseCase{claims: claims}
		am := NewAuthMiddleware(stub)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		am.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "valid-token", stub.gotToken)
	})

	t.Run("missing header", func(t *testing.T) {
		am := NewAuthMiddleware(&stubValidateTokenUseCase{})

		rec := httptest.NewRecorder()
		am.Authenticate(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		am := NewAuthMiddleware(&stubValidateTokenUseCase{})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		am.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		am := NewAuthMiddleware(&stubValidateTokenUseCase{err: domain.ErrTokenInvalid})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()
		am.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	am := NewAuthMiddleware(&stubValidateTokenUseCase{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("matching role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), claimsContextKey, &domain.Claims{Role: "admin"})
		rec := httptest.NewRecorder()
		am.RequireRole("admin")(next).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), claimsContextKey, &domain.Claims{Role: "user"})
		rec := httptest.NewRecorder()
		am.RequireRole("admin")(next).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("claims missing from context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		am.RequireRole("admin")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
