package usecase

import (
	"context"
	"fmt"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"

	"github.com/google/uuid"
)

type GetUserProfileUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetUserProfileUseCase(userRepo port.UserRepositoryPort) *GetUserProfileUseCase {
	return &GetUserProfileUseCase{userRepo: userRepo}
}

func (uc *GetUserProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserProfile",
		"user_id":  userID.String(),
	})

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed to find user by id", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		// Валидный токен, но пользователя уже нет (например, удален)
		ucLogger.Warn("User from token no longer exists", nil)
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}
