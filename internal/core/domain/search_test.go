package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchResult_TotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		want  int
	}{
		{"exact division", 40, 20, 2},
		{"rounds up", 5, 2, 3},
		{"single partial page", 1, 20, 1},
		{"empty result has zero pages", 0, 20, 0},
		{"zero page size", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &SearchResult{TotalCount: tt.total, PageSize: tt.size}
			assert.Equal(t, tt.want, r.TotalPages())
		})
	}
}
