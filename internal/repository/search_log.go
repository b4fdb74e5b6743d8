package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchLogRepository stores one row per distinct (tenant, term) pair.
type SearchLogRepository struct {
	pool *pgxpool.Pool
}

func NewSearchLogRepository(pool *pgxpool.Pool) *SearchLogRepository {
	return &SearchLogRepository{pool: pool}
}

// Upsert records one search event atomically. A first search inserts a
// fresh row with count 1; repeats increment the counter, bump
// last_searched and overwrite search_url with the latest resolution.
// Concurrent identical searches are serialized by the
// (tenant_id, search_term) uniqueness constraint.
func (r *SearchLogRepository) Upsert(ctx context.Context, tenantID int64, term, searchURL string, now time.Time) (*domain.SearchLogEntry, error) {
	var e domain.SearchLogEntry
	err := r.pool.QueryRow(ctx,
		`INSERT INTO search_logs (tenant_id, search_term, search_url, search_count, first_searched, last_searched)
		 VALUES ($1, $2, $3, 1, $4, $4)
		 ON CONFLICT (tenant_id, search_term) DO UPDATE SET
		     search_count  = search_logs.search_count + 1,
		     last_searched = EXCLUDED.last_searched,
		     search_url    = EXCLUDED.search_url
		 RETURNING id, tenant_id, search_term, search_url, search_count, first_searched, last_searched`,
		tenantID, term, searchURL, now,
	).Scan(&e.ID, &e.TenantID, &e.SearchTerm, &e.SearchURL, &e.SearchCount, &e.FirstSearched, &e.LastSearched)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByTenantAndTerm fetches a single entry by its natural key.
func (r *SearchLogRepository) GetByTenantAndTerm(ctx context.Context, tenantID int64, term string) (*domain.SearchLogEntry, error) {
	var e domain.SearchLogEntry
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, search_term, search_url, search_count, first_searched, last_searched
		 FROM search_logs WHERE tenant_id = $1 AND search_term = $2`,
		tenantID, term,
	).Scan(&e.ID, &e.TenantID, &e.SearchTerm, &e.SearchURL, &e.SearchCount, &e.FirstSearched, &e.LastSearched)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSearchLogNotFound
		}
		return nil, err
	}
	return &e, nil
}

// orderColumns maps the sort whitelist onto SQL expressions. Anything
// outside this map never reaches the query.
var orderColumns = map[service.SortColumn]string{
	service.SortByTerm:   "l.search_term",
	service.SortByCount:  "l.search_count",
	service.SortByFirst:  "l.first_searched",
	service.SortByLast:   "l.last_searched",
	service.SortByTenant: "t.address",
}

// escapeLike escapes LIKE/ILIKE metacharacters so a user-supplied
// filter matches as a literal substring.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListEntries returns one page of the statistics view. Tenant IDs are
// resolved to registered addresses via a left join; unregistered
// tenants come back with an empty address.
func (r *SearchLogRepository) ListEntries(ctx context.Context, q service.StatsQuery) ([]*service.StatsRow, error) {
	col, ok := orderColumns[q.OrderBy]
	if !ok {
		col = orderColumns[service.SortByLast]
	}
	dir := "DESC"
	if q.Order == service.OrderAsc {
		dir = "ASC"
	}

	query := fmt.Sprintf(
		`SELECT l.id, l.tenant_id, l.search_term, l.search_url, l.search_count, l.first_searched, l.last_searched,
		        COALESCE(t.address, '')
		 FROM search_logs l
		 LEFT JOIN tenants t ON t.id = l.tenant_id
		 WHERE ($1 = '' OR l.search_term ILIKE '%%' || $1 || '%%')
		 ORDER BY %s %s, l.id DESC
		 LIMIT $2 OFFSET $3`, col, dir)

	rows, err := r.pool.Query(ctx, query, escapeLike(q.Filter), q.Page.PerPage, q.Page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatsRows(rows)
}

// CountEntries returns the total row count for the given filter.
func (r *SearchLogRepository) CountEntries(ctx context.Context, filter string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM search_logs
		 WHERE ($1 = '' OR search_term ILIKE '%' || $1 || '%')`,
		escapeLike(filter),
	).Scan(&total)
	return total, err
}

// ListAllEntries returns every log row with resolved tenant addresses,
// most recent first. Used by the CSV export.
func (r *SearchLogRepository) ListAllEntries(ctx context.Context) ([]*service.StatsRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.id, l.tenant_id, l.search_term, l.search_url, l.search_count, l.first_searched, l.last_searched,
		        COALESCE(t.address, '')
		 FROM search_logs l
		 LEFT JOIN tenants t ON t.id = l.tenant_id
		 ORDER BY l.last_searched DESC, l.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatsRows(rows)
}

// Drop removes the log table entirely. Uninstall only.
func (r *SearchLogRepository) Drop(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS search_logs`)
	return err
}

func scanStatsRows(rows pgx.Rows) ([]*service.StatsRow, error) {
	var results []*service.StatsRow
	for rows.Next() {
		var row service.StatsRow
		if err := rows.Scan(
			&row.ID, &row.TenantID, &row.SearchTerm, &row.SearchURL,
			&row.SearchCount, &row.FirstSearched, &row.LastSearched,
			&row.TenantAddress,
		); err != nil {
			return nil, err
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}
