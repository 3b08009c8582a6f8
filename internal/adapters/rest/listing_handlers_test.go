package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"car-market-service/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGetListingUseCase struct {
	vehicle *domain.Vehicle
	err     error
}

func (s *stubGetListingUseCase) Execute(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	return s.vehicle, s.err
}

type stubGetLatestUseCase struct {
	gotLimit  int
	gotOffset int
	vehicles  []domain.Vehicle
	err       error
}

func (s *stubGetLatestUseCase) Execute(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.vehicles, s.err
}

type stubFindSimilarUseCase struct {
	gotVehicleID int64
	gotLimit     int
	vehicles     []domain.Vehicle
	err          error
}

func (s *stubFindSimilarUseCase) Execute(ctx context.Context, vehicleID int64, limit int) ([]domain.Vehicle, error) {
	s.gotVehicleID = vehicleID
	s.gotLimit = limit
	return s.vehicles, s.err
}

type stubDeleteListingUseCase struct {
	gotVehicleID int64
	err          error
}

func (s *stubDeleteListingUseCase) Execute(ctx context.Context, vehicleID int64) error {
	s.gotVehicleID = vehicleID
	return s.err
}

// newListingRouter собирает chi-роутер, чтобы {vehicleID} извлекался как в бою.
func newListingRouter(h *ListingHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/listings", h.GetLatestListings)
	r.Get("/listings/{vehicleID}", h.GetListing)
	r.Get("/listings/{vehicleID}/similar", h.GetSimilarVehicles)
	r.Delete("/listings/{vehicleID}", h.DeleteListing)
	return r
}

func TestGetListing_OK(t *testing.T) {
	title := "Honda Civic"
	h := NewListingHandler(
		&stubGetListingUseCase{vehicle: &domain.Vehicle{ID: 7, Title: &title}},
		&stubGetLatestUseCase{},
		&stubFindSimilarUseCase{},
		&stubDeleteListingUseCase{},
	)

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp VehicleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.VehicleID)
	require.NotNil(t, resp.Title)
	assert.Equal(t, "Honda Civic", *resp.Title)
}

func TestGetListing_NotFound(t *testing.T) {
	h := NewListingHandler(
		&stubGetListingUseCase{err: domain.ErrVehicleNotFound},
		&stubGetLatestUseCase{},
		&stubFindSimilarUseCase{},
		&stubDeleteListingUseCase{},
	)

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/999", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetListing_BadID(t *testing.T) {
	h := NewListingHandler(&stubGetListingUseCase{}, &stubGetLatestUseCase{}, &stubFindSimilarUseCase{}, &stubDeleteListingUseCase{})

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/not-a-number", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLatestListings_PaginationToLimitOffset(t *testing.T) {
	latest := &stubGetLatestUseCase{}
	h := NewListingHandler(&stubGetListingUseCase{}, latest, &stubFindSimilarUseCase{}, &stubDeleteListingUseCase{})

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings?page=3&page_size=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, latest.gotLimit)
	assert.Equal(t, 20, latest.gotOffset) // третья страница по 10
}

func TestGetSimilarVehicles_DefaultLimit(t *testing.T) {
	similar := &stubFindSimilarUseCase{vehicles: []domain.Vehicle{{ID: 2}, {ID: 3}}}
	h := NewListingHandler(&stubGetListingUseCase{}, &stubGetLatestUseCase{}, similar, &stubDeleteListingUseCase{})

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/1/similar", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), similar.gotVehicleID)
	assert.Equal(t, 6, similar.gotLimit)

	var resp SimilarVehiclesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestGetSimilarVehicles_LimitClamp(t *testing.T) {
	similar := &stubFindSimilarUseCase{}
	h := NewListingHandler(&stubGetListingUseCase{}, &stubGetLatestUseCase{}, similar, &stubDeleteListingUseCase{})

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/1/similar?limit=500", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, similar.gotLimit)
}

func TestGetSimilarVehicles_NotFound(t *testing.T) {
	h := NewListingHandler(
		&stubGetListingUseCase{},
		&stubGetLatestUseCase{},
		&stubFindSimilarUseCase{err: domain.ErrVehicleNotFound},
		&stubDeleteListingUseCase{},
	)

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/404/similar", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteListing_OK(t *testing.T) {
	del := &stubDeleteListingUseCase{}
	h := NewListingHandler(&stubGetListingUseCase{}, &stubGetLatestUseCase{}, &stubFindSimilarUseCase{}, del)

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/listings/7", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(7), del.gotVehicleID)
}

func TestDeleteListing_NotFound(t *testing.T) {
	del := &stubDeleteListingUseCase{err: domain.ErrVehicleNotFound}
	h := NewListingHandler(&stubGetListingUseCase{}, &stubGetLatestUseCase{}, &stubFindSimilarUseCase{}, del)

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/listings/404", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteListing_BadID(t *testing.T) {
	h := NewListingHandler(&stubGetListingUseCase{}, &stubGetLatestUseCase{}, &stubFindSimilarUseCase{}, &stubDeleteListingUseCase{})

	rec := httptest.NewRecorder()
	newListingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/listings/oops", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
