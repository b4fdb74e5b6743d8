package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TenantRepository handles tenant persistence.
type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

// Create registers a tenant and returns it with the assigned ID.
func (r *TenantRepository) Create(ctx context.Context, address string) (*domain.Tenant, error) {
	t := domain.Tenant{Address: strings.TrimSpace(address)}
	if err := domain.ValidateTenant(&t); err != nil {
		return nil, err
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO tenants (address) VALUES ($1)
		 RETURNING id, address, created_at`,
		t.Address,
	).Scan(&t.ID, &t.Address, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID fetches a tenant by ID.
func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.pool.QueryRow(ctx,
		`SELECT id, address, created_at FROM tenants WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Address, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tenants ordered by ID.
func (r *TenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, address, created_at FROM tenants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Address, &t.CreatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, &t)
	}
	return tenants, rows.Err()
}

// Drop removes the tenants table entirely. Uninstall only.
func (r *TenantRepository) Drop(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS tenants`)
	return err
}
