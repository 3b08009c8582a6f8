package usecase

import (
	"context"
	"testing"
	"time"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	usersByEmail map[string]*domain.User
	created      []*domain.User
	findErr      error
	createErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usersByEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.usersByEmail[user.Email] = user
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.usersByEmail[email], nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.usersByEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakeTokenService struct {
	token string
	err   error
}

func (s *fakeTokenService) GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	return s.token, s.err
}

func (s *fakeTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	return nil, domain.ErrTokenInvalid
}

func TestRegisterUser_OK(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo, &fakeTokenService{token: "jwt-token"}, time.Hour)

	user, token, err := uc.Execute(context.Background(), "buyer@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, "buyer@example.com", user.Email)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].CheckPassword("secret123"))
}

func TestRegisterUser_EmailInUse(t *testing.T) {
	repo := newFakeUserRepo()
	existing, err := domain.NewUser("taken@example.com", "whatever1")
	require.NoError(t, err)
	repo.usersByEmail[existing.Email] = existing

	uc := NewRegisterUserUseCase(repo, &fakeTokenService{token: "jwt-token"}, time.Hour)

	_, _, err = uc.Execute(context.Background(), "taken@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
	assert.Empty(t, repo.created)
}

// Гонка двух регистраций: проверка email прошла, но вставка уперлась
// в unique constraint. Репозиторий отдает ErrEmailInUse, и он должен
// дойти до обработчика как есть, а не как внутренняя ошибка.
func TestRegisterUser_ConcurrentDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = domain.ErrEmailInUse

	uc := NewRegisterUserUseCase(repo, &fakeTokenService{token: "jwt-token"}, time.Hour)

	_, token, err := uc.Execute(context.Background(), "racer@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
	assert.Empty(t, token)
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	existing, err := domain.NewUser("buyer@example.com", "secret123")
	require.NoError(t, err)
	repo.usersByEmail[existing.Email] = existing

	uc := NewLoginUserUseCase(repo, &fakeTokenService{token: "jwt-token"}, time.Hour)

	t.Run("ok", func(t *testing.T) {
		user, token, err := uc.Execute(context.Background(), "buyer@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", token)
		assert.Equal(t, existing.ID, user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := uc.Execute(context.Background(), "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := uc.Execute(context.Background(), "buyer@example.com", "wrong-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
