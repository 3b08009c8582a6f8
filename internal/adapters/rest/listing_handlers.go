package rest

import (
	"errors"
	"net/http"
	"strconv"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
	"car-market-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingHandler struct {
	getListingUC    usecases_port.GetListingUseCasePort
	getLatestUC     usecases_port.GetLatestListingsUseCasePort
	findSimilarUC   usecases_port.FindSimilarVehiclesUseCasePort
	deleteListingUC usecases_port.DeleteListingUseCasePort
}

func NewListingHandler(
	getListingUC usecases_port.GetListingUseCasePort,
	getLatestUC usecases_port.GetLatestListingsUseCasePort,
	findSimilarUC usecases_port.FindSimilarVehiclesUseCasePort,
	deleteListingUC usecases_port.DeleteListingUseCasePort) *ListingHandler {
	return &ListingHandler{
		getListingUC:    getListingUC,
		getLatestUC:     getLatestUC,
		findSimilarUC:   findSimilarUC,
		deleteListingUC: deleteListingUC,
	}
}

// vehicleIDFromURL парсит {vehicleID} из пути.
func vehicleIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
}

// GetListing обрабатывает GET /api/v1/listings/{vehicleID}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	vehicleID, err := vehicleIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.getListingUC.Execute(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		logger.Error("Get listing use case failed", err, port.Fields{"vehicle_id": vehicleID})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, toVehicleResponse(*vehicle))
}

// GetLatestListings обрабатывает GET /api/v1/listings
func (h *ListingHandler) GetLatestListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	page, pageSize, err := parsePagination(query)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset := (page - 1) * pageSize

	vehicles, err := h.getLatestUC.Execute(r.Context(), pageSize, offset)
	if err != nil {
		logger.Error("Get latest listings use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results":   toVehicleResponses(vehicles),
		"page":      page,
		"page_size": pageSize,
	})
}

// DeleteListing обрабатывает DELETE /api/v1/listings/{vehicleID}.
// Доступно только админам (RequireRole в роутере).
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	vehicleID, err := vehicleIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := h.deleteListingUC.Execute(r.Context(), vehicleID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		logger.Error("Delete listing use case failed", err, port.Fields{"vehicle_id": vehicleID})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSimilarVehicles обрабатывает GET /api/v1/listings/{vehicleID}/similar
func (h *ListingHandler) GetSimilarVehicles(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	vehicleID, err := vehicleIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	// Количество похожих: по умолчанию 6, не больше 50
	limit := 6
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}
	if limit < 1 || limit > 50 {
		limit = 6
	}

	similar, err := h.findSimilarUC.Execute(r.Context(), vehicleID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		logger.Error("Find similar use case failed", err, port.Fields{"vehicle_id": vehicleID})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, SimilarVehiclesResponse{
		Results: toVehicleResponses(similar),
		Count:   len(similar),
	})
}
