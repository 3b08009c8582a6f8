package domain

import "errors"

// Ошибки, которые могут быть возвращены из Use Cases.
// REST-слой сопоставляет их с HTTP-статусами через errors.Is.
var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrInvalidFilterValue = errors.New("invalid filter value")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrTokenInvalid       = errors.New("invalid jwt token")
)
