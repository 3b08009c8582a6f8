package postgres

import (
	"testing"

	"car-market-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestApplyFilters_Empty(t *testing.T) {
	where, args := applyFilters(domain.SearchFilters{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestApplyFilters_FreeTextBindsSingleArg(t *testing.T) {
	where, args := applyFilters(domain.SearchFilters{Query: "corolla"})

	require.Len(t, args, 1)
	assert.Equal(t, "%corolla%", args[0])
	assert.Equal(t, "WHERE (v.title ILIKE $1 OR v.brand ILIKE $1 OR v.model ILIKE $1)", where)
}

func TestApplyFilters_SubstringFilters(t *testing.T) {
	where, args := applyFilters(domain.SearchFilters{
		Brand:    "Toyota",
		FuelType: "petrol",
	})

	require.Len(t, args, 2)
	assert.Equal(t, "%Toyota%", args[0])
	assert.Equal(t, "%petrol%", args[1])
	assert.Equal(t, "WHERE v.brand ILIKE $1 AND v.fuel_type ILIKE $2", where)
}

func TestApplyFilters_NumericRanges(t *testing.T) {
	where, args := applyFilters(domain.SearchFilters{
		YearMin:    intPtr(2015),
		YearMax:    intPtr(2020),
		PriceMin:   floatPtr(5000),
		PriceMax:   floatPtr(20000),
		MileageMax: floatPtr(150000),
	})

	require.Len(t, args, 5)
	assert.Equal(t, 2015, args[0])
	assert.Equal(t, 2020, args[1])
	assert.Equal(t, float64(5000), args[2])
	assert.Equal(t, float64(20000), args[3])
	assert.Equal(t, float64(150000), args[4])

	assert.Contains(t, where, "v.year >= $1")
	assert.Contains(t, where, "v.year <= $2")
	// Цена и пробег сравниваются по нормализованному выражению
	assert.Contains(t, where, "COALESCE(v.price_amount, CAST(NULLIF(REGEXP_REPLACE(v.price, '[^0-9]', '', 'g'), '') AS BIGINT)) >= $3")
	assert.Contains(t, where, "COALESCE(v.mileage_km, CAST(NULLIF(REGEXP_REPLACE(v.mileage, '[^0-9]', '', 'g'), '') AS BIGINT)) <= $5")
}

func TestApplyFilters_PlaceholderOrderAfterFreeText(t *testing.T) {
	_, args := applyFilters(domain.SearchFilters{
		Query:   "bmw",
		Brand:   "BMW",
		YearMin: intPtr(2018),
	})

	// Свободный текст занимает $1, дальше фильтры нумеруются по порядку
	require.Len(t, args, 3)
	assert.Equal(t, "%bmw%", args[0])
	assert.Equal(t, "%BMW%", args[1])
	assert.Equal(t, 2018, args[2])
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name string
		sort domain.SortSpec
		want string
	}{
		{
			name: "default is id descending",
			sort: domain.SortSpec{},
			want: "ORDER BY v.vehicle_id DESC NULLS LAST, v.vehicle_id DESC",
		},
		{
			name: "unknown field falls back to id",
			sort: domain.SortSpec{Field: "color", Direction: "asc"},
			want: "ORDER BY v.vehicle_id ASC NULLS FIRST, v.vehicle_id ASC",
		},
		{
			name: "price ascending puts nulls first",
			sort: domain.SortSpec{Field: "price", Direction: "asc"},
			want: "ORDER BY COALESCE(v.price_amount, CAST(NULLIF(REGEXP_REPLACE(v.price, '[^0-9]', '', 'g'), '') AS BIGINT)) ASC NULLS FIRST, v.vehicle_id ASC",
		},
		{
			name: "price descending puts nulls last",
			sort: domain.SortSpec{Field: "price", Direction: "desc"},
			want: "ORDER BY COALESCE(v.price_amount, CAST(NULLIF(REGEXP_REPLACE(v.price, '[^0-9]', '', 'g'), '') AS BIGINT)) DESC NULLS LAST, v.vehicle_id DESC",
		},
		{
			name: "mileage uses normalized expression",
			sort: domain.SortSpec{Field: "mileage", Direction: "asc"},
			want: "ORDER BY COALESCE(v.mileage_km, CAST(NULLIF(REGEXP_REPLACE(v.mileage, '[^0-9]', '', 'g'), '') AS BIGINT)) ASC NULLS FIRST, v.vehicle_id ASC",
		},
		{
			name: "year descending",
			sort: domain.SortSpec{Field: "year"},
			want: "ORDER BY v.year DESC NULLS LAST, v.vehicle_id DESC",
		},
		{
			name: "direction is case insensitive",
			sort: domain.SortSpec{Field: "year", Direction: "ASC"},
			want: "ORDER BY v.year ASC NULLS FIRST, v.vehicle_id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveSort(tt.sort))
		})
	}
}
