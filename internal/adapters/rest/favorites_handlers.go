package rest

import (
	"net/http"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/port"
	"car-market-service/internal/core/port/usecases_port"
)

type FavoritesHandler struct {
	addUC    usecases_port.AddToFavoritesUseCasePort
	removeUC usecases_port.RemoveFromFavoritesUseCasePort
	getUC    usecases_port.GetUserFavoritesUseCasePort
}

func NewFavoritesHandler(
	addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	getUC usecases_port.GetUserFavoritesUseCasePort) *FavoritesHandler {
	return &FavoritesHandler{
		addUC:    addUC,
		removeUC: removeUC,
		getUC:    getUC,
	}
}

// Add обрабатывает POST /api/v1/favorites/{vehicleID}
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vehicleID, err := vehicleIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := h.addUC.Execute(r.Context(), userID, vehicleID); err != nil {
		logger.Error("Add to favorites use case failed", err, port.Fields{"vehicle_id": vehicleID})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Remove обрабатывает DELETE /api/v1/favorites/{vehicleID}
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vehicleID, err := vehicleIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := h.removeUC.Execute(r.Context(), userID, vehicleID); err != nil {
		logger.Error("Remove from favorites use case failed", err, port.Fields{"vehicle_id": vehicleID})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, pageSize, err := parsePagination(r.URL.Query())
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset := (page - 1) * pageSize

	result, err := h.getUC.Execute(r.Context(), userID, pageSize, offset)
	if err != nil {
		logger.Error("Get favorites use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, PaginatedFavoritesResponse{
		Favorites:    toVehicleResponses(result.Vehicles),
		Total:        result.TotalCount,
		CurrentPage:  result.CurrentPage,
		ItemsPerPage: result.ItemsPerPage,
	})
}
