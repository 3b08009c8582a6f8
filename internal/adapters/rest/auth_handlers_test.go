package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegisterUseCase struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubRegisterUseCase) Execute(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.user, s.token, s.err
}

type stubLoginUseCase struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubLoginUseCase) Execute(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.user, s.token, s.err
}

type stubGetProfileUseCase struct {
	gotUserID uuid.UUID
	user      *domain.User
	err       error
}

func (s *stubGetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	s.gotUserID = userID
	return s.user, s.err
}

func testUser() *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		Email:     "buyer@example.com",
		Role:      "user",
		CreatedAt: time.Now().UTC(),
	}
}

func TestRegister_OK(t *testing.T) {
	user := testUser()
	h := NewAuthHandler(
		&stubRegisterUseCase{user: user, token: "jwt-token"},
		&stubLoginUseCase{},
		&stubGetProfileUseCase{},
	)

	body := `{"email": "buyer@example.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.AccessToken)
	assert.Equal(t, user.Email, resp.User.Email)
}

func TestRegister_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubRegisterUseCase{}, &stubLoginUseCase{}, &stubGetProfileUseCase{})

	body := `{"email": "buyer@example.com", "password": "123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_EmailInUse(t *testing.T) {
	h := NewAuthHandler(
		&stubRegisterUseCase{err: domain.ErrEmailInUse},
		&stubLoginUseCase{},
		&stubGetProfileUseCase{},
	)

	body := `{"email": "taken@example.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unknown user", domain.ErrUserNotFound},
		{"wrong password", domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&stubRegisterUseCase{}, &stubLoginUseCase{err: tt.err}, &stubGetProfileUseCase{})

			body := `{"email": "buyer@example.com", "password": "whatever"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			// Обе причины отдают один и тот же ответ
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid email or password")
		})
	}
}

func TestLogin_OK(t *testing.T) {
	user := testUser()
	h := NewAuthHandler(&stubRegisterUseCase{}, &stubLoginUseCase{user: user, token: "jwt-token"}, &stubGetProfileUseCase{})

	body := `{"email": "buyer@example.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.AccessToken)
}

func TestMe(t *testing.T) {
	user := testUser()
	profile := &stubGetProfileUseCase{user: user}
	h := NewAuthHandler(&stubRegisterUseCase{}, &stubLoginUseCase{}, profile)

	t.Run("without auth context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()
		h.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("with auth context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		ctx := context.WithValue(req.Context(), userIDContextKey, user.ID)
		rec := httptest.NewRecorder()
		h.Me(rec, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, profile.gotUserID)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.Email, resp.Email)
	})
}
