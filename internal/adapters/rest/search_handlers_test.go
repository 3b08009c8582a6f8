package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"car-market-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearchUseCase struct {
	gotFilters  domain.SearchFilters
	gotSort     domain.SortSpec
	gotPage     int
	gotPageSize int
	result      *domain.SearchResult
	err         error
}

func (s *stubSearchUseCase) Execute(ctx context.Context, filters domain.SearchFilters, sort domain.SortSpec, page, pageSize int) (*domain.SearchResult, error) {
	s.gotFilters = filters
	s.gotSort = sort
	s.gotPage = page
	s.gotPageSize = pageSize
	return s.result, s.err
}

func TestSearchVehicles_OK(t *testing.T) {
	title := "Toyota Corolla 2019"
	stub := &stubSearchUseCase{
		result: &domain.SearchResult{
			Vehicles:   []domain.Vehicle{{ID: 42, Title: &title}},
			TotalCount: 5,
			Page:       1,
			PageSize:   2,
		},
	}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=corolla&year_min=2015&sort_by=price&sort_order=asc&page_size=2", nil)
	rec := httptest.NewRecorder()
	handler.SearchVehicles(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			VehicleID int64   `json:"vehicle_id"`
			Title     *string `json:"title"`
		} `json:"results"`
		Total      int `json:"total"`
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
		TotalPages int `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(42), resp.Results[0].VehicleID)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 3, resp.TotalPages) // 5 объявлений по 2 на странице

	// Проверяем, что параметры дошли до use case без искажений
	assert.Equal(t, "corolla", stub.gotFilters.Query)
	require.NotNil(t, stub.gotFilters.YearMin)
	assert.Equal(t, 2015, *stub.gotFilters.YearMin)
	assert.Equal(t, domain.SortSpec{Field: "price", Direction: "asc"}, stub.gotSort)
	assert.Equal(t, 1, stub.gotPage)
	assert.Equal(t, 2, stub.gotPageSize)
}

func TestSearchVehicles_DefaultSort(t *testing.T) {
	stub := &stubSearchUseCase{result: &domain.SearchResult{Page: 1, PageSize: 20}}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.SearchVehicles(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id", stub.gotSort.Field)
}

func TestSearchVehicles_BadFilterValue(t *testing.T) {
	stub := &stubSearchUseCase{}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?price_min=abc", nil)
	rec := httptest.NewRecorder()
	handler.SearchVehicles(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "price_min")
}

func TestSearchVehicles_BadPagination(t *testing.T) {
	handler := NewSearchHandler(&stubSearchUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?page=two", nil)
	rec := httptest.NewRecorder()
	handler.SearchVehicles(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchVehicles_UseCaseFailure(t *testing.T) {
	stub := &stubSearchUseCase{err: assert.AnError}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.SearchVehicles(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
