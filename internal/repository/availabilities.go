package repository

import (
	"database/sql"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func scanAvailabilities(rows *sql.Rows, tenantID int64) ([]*domain.EmployeeAvailability, error) {
	availabilities := []*domain.EmployeeAvailability{}
	for rows.Next() {
		availability := domain.EmployeeAvailability{TenantID: tenantID}
		dst := []any{
			&availability.ID,
			&availability.EmployeeID,
			&availability.Date,
			&availability.State,
			&availability.CreatedAt,
			&availability.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availabilities = append(availabilities, &availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

func (r *Repository) ListAvailabilities(tenantID int64) ([]*domain.EmployeeAvailability, error) {
	query := `
		SELECT id, employee_id, date, state, created_at, version
		FROM employee_availabilities
		WHERE tenant_id = $1
		ORDER BY id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAvailabilities(rows, tenantID)
}

func (r *Repository) ListAvailabilitiesInRange(tenantID int64, startDate, endDate time.Time) ([]*domain.EmployeeAvailability, error) {
	query := `
		SELECT id, employee_id, date, state, created_at, version
		FROM employee_availabilities
		WHERE tenant_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAvailabilities(rows, tenantID)
}

func (r *Repository) CreateAvailability(availability *domain.EmployeeAvailability) error {
	query := `
		INSERT INTO employee_availabilities (tenant_id, employee_id, date, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	params := []any{availability.TenantID, availability.EmployeeID, availability.Date, availability.State}
	dst := []any{&availability.ID, &availability.CreatedAt, &availability.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}
