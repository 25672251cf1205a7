package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) CreateTenant(tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (name, secret_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	dst := []any{&tenant.ID, &tenant.CreatedAt, &tenant.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, tenant.Name, tenant.SecretHash).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTenantByID(id int64) (*domain.Tenant, error) {
	query := `
		SELECT name, secret_hash, created_at, version
		FROM tenants
		WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	tenant := &domain.Tenant{ID: id}
	dst := []any{&tenant.Name, &tenant.SecretHash, &tenant.CreatedAt, &tenant.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	return tenant, nil
}

func (r *Repository) GetTenantByName(name string) (*domain.Tenant, error) {
	query := `
		SELECT id, secret_hash, created_at, version
		FROM tenants
		WHERE name = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	tenant := &domain.Tenant{Name: name}
	dst := []any{&tenant.ID, &tenant.SecretHash, &tenant.CreatedAt, &tenant.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant %q: %w", name, domain.ErrNotFound)
		}
		return nil, err
	}

	return tenant, nil
}

func (r *Repository) GetTenantConfiguration(tenantID int64) (*domain.TenantConfiguration, error) {
	query := `
		SELECT time_zone, rotation_length, version
		FROM tenant_configurations
		WHERE tenant_id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	cfg := &domain.TenantConfiguration{TenantID: tenantID}
	dst := []any{&cfg.TimeZone, &cfg.RotationLength, &cfg.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, tenantID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("configuration for tenant %d: %w", tenantID, domain.ErrNotFound)
		}
		return nil, err
	}

	return cfg, nil
}

func (r *Repository) CreateTenantConfiguration(cfg *domain.TenantConfiguration) error {
	query := `
		INSERT INTO tenant_configurations (tenant_id, time_zone, rotation_length)
		VALUES ($1, $2, $3)
		RETURNING version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, cfg.TenantID, cfg.TimeZone, cfg.RotationLength).Scan(&cfg.Version); err != nil {
		return err
	}

	return nil
}
