package service

import (
	"context"
	"strconv"
	"time"

	"github.com/helpbeacon/helpbeacon/internal/pagination"
)

// SortColumn identifies a sortable column of the statistics listing.
type SortColumn string

const (
	SortByTerm   SortColumn = "search_term"
	SortByCount  SortColumn = "search_count"
	SortByFirst  SortColumn = "first_searched"
	SortByLast   SortColumn = "last_searched"
	SortByTenant SortColumn = "tenant_address"
)

// SortOrder is a sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortColumn maps a user-supplied column name onto the whitelist,
// defaulting to last-searched.
func ParseSortColumn(s string) SortColumn {
	switch SortColumn(s) {
	case SortByTerm, SortByCount, SortByFirst, SortByLast, SortByTenant:
		return SortColumn(s)
	default:
		return SortByLast
	}
}

// ParseSortOrder maps a user-supplied direction, defaulting to
// descending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// StatsQuery describes one request against the statistics listing.
type StatsQuery struct {
	Filter  string
	OrderBy SortColumn
	Order   SortOrder
	Page    pagination.Page
}

// StatsRow is one row of the statistics view: a log entry joined with
// the tenant's registered address.
type StatsRow struct {
	ID            int64     `json:"id"`
	TenantID      int64     `json:"tenant_id"`
	TenantAddress string    `json:"tenant_address,omitempty"`
	SearchTerm    string    `json:"search_term"`
	SearchURL     string    `json:"search_url"`
	SearchCount   int       `json:"search_count"`
	FirstSearched time.Time `json:"first_searched"`
	LastSearched  time.Time `json:"last_searched"`
}

// TenantDisplay returns the label shown for the row's tenant: the
// registered address when known, otherwise the raw tenant ID.
func (r *StatsRow) TenantDisplay() string {
	if r.TenantAddress != "" {
		return r.TenantAddress
	}
	return strconv.FormatInt(r.TenantID, 10)
}

// StatsReader lists and counts statistics rows.
type StatsReader interface {
	ListEntries(ctx context.Context, q StatsQuery) ([]*StatsRow, error)
	CountEntries(ctx context.Context, filter string) (int64, error)
}

// StatsService serves the paginated statistics listing.
type StatsService struct {
	reader StatsReader
}

func NewStatsService(reader StatsReader) *StatsService {
	return &StatsService{reader: reader}
}

// List returns one page of statistics rows plus the filtered total.
func (s *StatsService) List(ctx context.Context, q StatsQuery) (pagination.PageResult[*StatsRow], error) {
	var zero pagination.PageResult[*StatsRow]

	total, err := s.reader.CountEntries(ctx, q.Filter)
	if err != nil {
		return zero, err
	}

	rows, err := s.reader.ListEntries(ctx, q)
	if err != nil {
		return zero, err
	}
	return pagination.NewPageResult(rows, q.Page, total), nil
}
