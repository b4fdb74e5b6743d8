package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helpbeacon/helpbeacon/internal/pagination"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) ListEntries(ctx context.Context, q service.StatsQuery) ([]*service.StatsRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.StatsRow), args.Error(1)
}

func (m *MockStatsReader) CountEntries(ctx context.Context, filter string) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestStatsHandler_List(t *testing.T) {
	reader := new(MockStatsReader)
	handler := NewStatsHandler(service.NewStatsService(reader))

	expectedQuery := service.StatsQuery{
		Filter:  "dark",
		OrderBy: service.SortByCount,
		Order:   service.OrderAsc,
		Page:    pagination.NewPage(2, 10),
	}
	rows := []*service.StatsRow{
		{ID: 1, TenantID: 1, SearchTerm: "dark mode", SearchCount: 5, LastSearched: time.Now().UTC()},
	}
	reader.On("CountEntries", mock.Anything, "dark").Return(int64(11), nil)
	reader.On("ListEntries", mock.Anything, expectedQuery).Return(rows, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats?s=dark&orderby=search_count&order=asc&page=2&per_page=10", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items      []map[string]interface{} `json:"items"`
			Page       int                      `json:"page"`
			Total      int64                    `json:"total"`
			TotalPages int                      `json:"total_pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 2, resp.Data.Page)
	assert.Equal(t, int64(11), resp.Data.Total)
	assert.Equal(t, 2, resp.Data.TotalPages)
	assert.Equal(t, "dark mode", resp.Data.Items[0]["search_term"])
	reader.AssertExpectations(t)
}

func TestStatsHandler_List_Defaults(t *testing.T) {
	reader := new(MockStatsReader)
	handler := NewStatsHandler(service.NewStatsService(reader))

	expectedQuery := service.StatsQuery{
		OrderBy: service.SortByLast,
		Order:   service.OrderDesc,
		Page:    pagination.NewPage(1, pagination.DefaultPerPage),
	}
	reader.On("CountEntries", mock.Anything, "").Return(int64(0), nil)
	reader.On("ListEntries", mock.Anything, expectedQuery).Return([]*service.StatsRow(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
	reader.AssertExpectations(t)
}

func TestStatsHandler_List_UnknownSortFallsBack(t *testing.T) {
	reader := new(MockStatsReader)
	handler := NewStatsHandler(service.NewStatsService(reader))

	reader.On("CountEntries", mock.Anything, "").Return(int64(0), nil)
	reader.On("ListEntries", mock.Anything, mock.MatchedBy(func(q service.StatsQuery) bool {
		return q.OrderBy == service.SortByLast && q.Order == service.OrderDesc
	})).Return([]*service.StatsRow(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/stats?orderby=sneaky&order=sideways", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	reader.AssertExpectations(t)
}
