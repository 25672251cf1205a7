package repository

import (
	"database/sql"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListEmployees(tenantID int64) ([]*domain.Employee, error) {
	query := `
		SELECT e.id, e.name, e.email, e.created_at, e.version, es.skill_id
		FROM employees e
		LEFT JOIN employee_skills es ON e.id = es.employee_id
		WHERE e.tenant_id = $1
		ORDER BY e.id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []*domain.Employee{}
	employeesByID := make(map[int64]*domain.Employee)

	for rows.Next() {
		var (
			employee domain.Employee
			skillID  sql.NullInt64
		)
		dst := []any{&employee.ID, &employee.Name, &employee.Email, &employee.CreatedAt, &employee.Version, &skillID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		existing, ok := employeesByID[employee.ID]
		if !ok {
			employee.TenantID = tenantID
			employee.SkillIDs = []int64{}
			existing = &employee
			employeesByID[employee.ID] = existing
			employees = append(employees, existing)
		}

		if skillID.Valid {
			existing.SkillIDs = append(existing.SkillIDs, skillID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO employees (tenant_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	dst := []any{&employee.ID, &employee.CreatedAt, &employee.Version}
	if err := tx.QueryRowContext(ctx, query, employee.TenantID, employee.Name, employee.Email).Scan(dst...); err != nil {
		return err
	}

	for _, skillID := range employee.SkillIDs {
		query := `
			INSERT INTO employee_skills (employee_id, skill_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, employee.ID, skillID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
