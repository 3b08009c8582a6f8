package rest

import (
	"errors"
	"net/http"
	"net/url"

	"car-market-service/internal/contextkeys"
	"car-market-service/internal/core/domain"
	"car-market-service/internal/core/port"
	"car-market-service/internal/core/port/usecases_port"
)

type SearchHandler struct {
	searchUC usecases_port.SearchVehiclesUseCasePort
}

func NewSearchHandler(searchUC usecases_port.SearchVehiclesUseCasePort) *SearchHandler {
	return &SearchHandler{searchUC: searchUC}
}

// parseSearchFilters собирает фильтры из query-параметров.
// Нечисловое значение числового фильтра - ошибка, а не молчаливый пропуск.
func parseSearchFilters(query url.Values) (domain.SearchFilters, error) {
	filters := domain.SearchFilters{
		Query:        query.Get("q"),
		Brand:        query.Get("brand"),
		Model:        query.Get("model"),
		FuelType:     query.Get("fuel_type"),
		Transmission: query.Get("transmission"),
		BodyType:     query.Get("body_type"),
		Location:     query.Get("location"),
	}

	var err error
	if filters.YearMin, err = parseOptionalInt(query, "year_min"); err != nil {
		return filters, err
	}
	if filters.YearMax, err = parseOptionalInt(query, "year_max"); err != nil {
		return filters, err
	}
	if filters.PriceMin, err = parseOptionalFloat(query, "price_min"); err != nil {
		return filters, err
	}
	if filters.PriceMax, err = parseOptionalFloat(query, "price_max"); err != nil {
		return filters, err
	}
	if filters.MileageMax, err = parseOptionalFloat(query, "mileage_max"); err != nil {
		return filters, err
	}

	return filters, nil
}

// SearchVehicles обрабатывает GET /api/v1/search
func (h *SearchHandler) SearchVehicles(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	page, pageSize, err := parsePagination(query)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters, err := parseSearchFilters(query)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sort := domain.SortSpec{
		Field:     query.Get("sort_by"),
		Direction: query.Get("sort_order"),
	}
	if sort.Field == "" {
		sort.Field = "id"
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":   "SearchVehicles",
		"page":      page,
		"page_size": pageSize,
		"filters":   filters,
	})
	handlerLogger.Debug("Processing search request", nil)

	result, err := h.searchUC.Execute(r.Context(), filters, sort, page, pageSize)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFilterValue) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		handlerLogger.Error("Search use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, SearchResponse{
		Results:    toVehicleResponses(result.Vehicles),
		Total:      result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages(),
	})
}
