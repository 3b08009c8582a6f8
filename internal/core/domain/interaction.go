package domain

import (
	"time"

	"github.com/google/uuid"
)

// Типы взаимодействий, которые принимает endpoint обратной связи.
const (
	InteractionView     = "view"
	InteractionClick    = "click"
	InteractionFavorite = "favorite"
	InteractionContact  = "contact_seller"
)

// Interaction - событие взаимодействия пользователя с объявлением.
// Сохраняется в хранилище и публикуется в шину для офлайн-аналитики.
type Interaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	VehicleID int64
	Type      string
	Score     *float64
	SessionID *string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// NewInteraction собирает событие с генерацией идентификатора и метки времени.
func NewInteraction(userID uuid.UUID, vehicleID int64, interactionType string) *Interaction {
	return &Interaction{
		ID:        uuid.New(),
		UserID:    userID,
		VehicleID: vehicleID,
		Type:      interactionType,
		CreatedAt: time.Now().UTC(),
	}
}
