package repository

import (
	"database/sql"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListShifts(tenantID int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, spot_id, start_time, end_time, employee_id, created_at, version
		FROM shifts
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

	return scanShifts(rows, tenantID)
}

// ListShiftsInRange returns the tenant's shifts whose start falls inside
// [startDate, endDate], endDate inclusive of the whole day.
func (r *Repository) ListShiftsInRange(tenantID int64, startDate, endDate time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, spot_id, start_time, end_time, employee_id, created_at, version
		FROM shifts
		WHERE tenant_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows, tenantID)
}

func scanShifts(rows *sql.Rows, tenantID int64) ([]*domain.Shift, error) {
	shifts := []*domain.Shift{}
	for rows.Next() {
		shift := domain.Shift{TenantID: tenantID}
		dst := []any{
			&shift.ID,
			&shift.SpotID,
			&shift.StartTime,
			&shift.EndTime,
			&shift.EmployeeID,
			&shift.CreatedAt,
			&shift.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (tenant_id, spot_id, start_time, end_time, employee_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	params := []any{shift.TenantID, shift.SpotID, shift.StartTime, shift.EndTime, shift.EmployeeID}
	dst := []any{&shift.ID, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// UpdateShiftAssignment writes only the employee assignment of one shift. It
// deliberately leaves version alone so a running solve does not trip the
// optimistic check guarding the other shift fields.
func (r *Repository) UpdateShiftAssignment(tenantID int64, shiftID int64, employeeID *int64) error {
	query := `
		UPDATE shifts
		SET employee_id = $1
		WHERE id = $2 AND tenant_id = $3
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, employeeID, shiftID, tenantID); err != nil {
		return err
	}

	return nil
}
