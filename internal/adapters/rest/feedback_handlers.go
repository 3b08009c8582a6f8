package rest

import (
	"encoding/json"
	"net/http"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
	"car-market-service/internal/core/port/usecases_port"
)

type FeedbackHandler struct {
	recordUC usecases_port.RecordInteractionUseCasePort
}

func NewFeedbackHandler(recordUC usecases_port.RecordInteractionUseCasePort) *FeedbackHandler {
	return &FeedbackHandler{recordUC: recordUC}
}

var allowedInteractionTypes = map[string]bool{
	domain.InteractionView:     true,
	domain.InteractionClick:    true,
	domain.InteractionFavorite: true,
	domain.InteractionContact:  true,
}

// RecordFeedback обрабатывает POST /api/v1/feedback (за Authenticate middleware)
func (h *FeedbackHandler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VehicleID <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "vehicle_id is required")
		return
	}
	if !allowedInteractionTypes[req.InteractionType] {
		WriteJSONError(w, http.StatusBadRequest, "Unknown interaction_type")
		return
	}

	interaction := domain.NewInteraction(userID, req.VehicleID, req.InteractionType)
	interaction.Score = req.Score
	interaction.SessionID = req.SessionID
	interaction.Metadata = req.Metadata

	saved, err := h.recordUC.Execute(r.Context(), interaction)
	if err != nil {
		logger.Error("Record interaction use case failed", err, port.Fields{"vehicle_id": req.VehicleID})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusCreated, FeedbackResponse{
		InteractionID: saved.ID.String(),
		VehicleID:     saved.VehicleID,
		Type:          saved.Type,
		CreatedAt:     saved.CreatedAt,
	})
}
