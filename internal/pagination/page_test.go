package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_Clamps(t *testing.T) {
	tests := []struct {
		name        string
		number      int
		perPage     int
		wantNumber  int
		wantPerPage int
	}{
		{"valid", 3, 50, 3, 50},
		{"zero page", 0, 50, 1, 50},
		{"negative page", -2, 50, 1, 50},
		{"zero per page", 1, 0, 1, DefaultPerPage},
		{"over max", 1, 10000, 1, MaxPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.number, tt.perPage)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
		})
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, NewPage(1, 20).Offset())
	assert.Equal(t, 20, NewPage(2, 20).Offset())
	assert.Equal(t, 90, NewPage(10, 10).Offset())
}

func TestNewPageResult(t *testing.T) {
	items := []string{"a", "b"}

	result := NewPageResult(items, NewPage(1, 20), 41)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PerPage)
	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, items, result.Items)
}

func TestNewPageResult_NilItems(t *testing.T) {
	result := NewPageResult[string](nil, NewPage(1, 20), 0)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.TotalPages)
}
