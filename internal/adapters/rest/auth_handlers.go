package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
	"car-market-service/internal/core/port/usecases_port"
)

type AuthHandler struct {
	registerUC   usecases_port.RegisterUserUseCasePort
	loginUC      usecases_port.LoginUserUseCasePort
	getProfileUC usecases_port.GetUserProfileUseCasePort
}

func NewAuthHandler(
	registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	getProfileUC usecases_port.GetUserProfileUseCasePort) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		getProfileUC: getProfileUC,
	}
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || len(req.Password) < 6 {
		WriteJSONError(w, http.StatusBadRequest, "Email is required and password must be at least 6 characters")
		return
	}

	user, token, err := h.registerUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			WriteJSONError(w, http.StatusConflict, "Email already in use")
			return
		}
		logger.Error("Register use case failed", err, port.Fields{"email": req.Email})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusCreated, AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		// Не раскрываем, что именно не совпало - логин или пароль
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Error("Login use case failed", err, port.Fields{"email": req.Email})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

// Me обрабатывает GET /api/v1/auth/me (за Authenticate middleware)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.getProfileUC.Execute(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			WriteJSONError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.Error("Get profile use case failed", err, port.Fields{"user_id": userID.String()})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}
