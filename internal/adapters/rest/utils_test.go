package rest

import (
	"net/url"
	"testing"

	"car-market-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalInt(t *testing.T) {
	t.Run("missing parameter", func(t *testing.T) {
		got, err := parseOptionalInt(url.Values{}, "year_min")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("valid value", func(t *testing.T) {
		got, err := parseOptionalInt(url.Values{"year_min": {"2015"}}, "year_min")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2015, *got)
	})

	t.Run("garbage value", func(t *testing.T) {
		_, err := parseOptionalInt(url.Values{"year_min": {"abc"}}, "year_min")
		assert.ErrorIs(t, err, domain.ErrInvalidFilterValue)
	})
}

func TestParseOptionalFloat(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		got, err := parseOptionalFloat(url.Values{"price_max": {"19999.5"}}, "price_max")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 19999.5, *got)
	})

	t.Run("garbage value", func(t *testing.T) {
		_, err := parseOptionalFloat(url.Values{"price_max": {"cheap"}}, "price_max")
		assert.ErrorIs(t, err, domain.ErrInvalidFilterValue)
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		wantPage     int
		wantPageSize int
		wantErr      bool
	}{
		{"defaults", url.Values{}, 1, 20, false},
		{"explicit values", url.Values{"page": {"3"}, "page_size": {"50"}}, 3, 50, false},
		{"page below one is clamped", url.Values{"page": {"0"}}, 1, 20, false},
		{"negative page is clamped", url.Values{"page": {"-5"}}, 1, 20, false},
		{"oversized page_size reset to default", url.Values{"page_size": {"1000"}}, 1, 20, false},
		{"zero page_size reset to default", url.Values{"page_size": {"0"}}, 1, 20, false},
		{"non-numeric page is an error", url.Values{"page": {"two"}}, 0, 0, true},
		{"non-numeric page_size is an error", url.Values{"page_size": {"many"}}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize, err := parsePagination(tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidFilterValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
