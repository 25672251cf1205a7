package repository

import (
	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListShiftTemplates(tenantID int64) ([]*domain.ShiftTemplate, error) {
	query := `
		SELECT t.id, t.spot_id, t.start_time, t.end_time, t.rotation_employee_id, t.created_at, t.version, td.rotation_day
		FROM shift_templates t
		LEFT JOIN shift_template_days td ON t.id = td.shift_template_id
		WHERE t.tenant_id = $1
		ORDER BY t.id, td.rotation_day
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*domain.ShiftTemplate{}
	templatesByID := make(map[int64]*domain.ShiftTemplate)

	for rows.Next() {
		var (
			template    domain.ShiftTemplate
			rotationDay *int32
		)
		dst := []any{
			&template.ID,
			&template.SpotID,
			&template.StartTime,
			&template.EndTime,
			&template.RotationEmployeeID,
			&template.CreatedAt,
			&template.Version,
			&rotationDay,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		existing, ok := templatesByID[template.ID]
		if !ok {
			template.TenantID = tenantID
			template.RotationDays = []int32{}
			existing = &template
			templatesByID[template.ID] = existing
			templates = append(templates, existing)
		}

		if rotationDay != nil {
			existing.RotationDays = append(existing.RotationDays, *rotationDay)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) CreateShiftTemplate(template *domain.ShiftTemplate) error {
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
		INSERT INTO shift_templates (tenant_id, spot_id, start_time, end_time, rotation_employee_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	params := []any{template.TenantID, template.SpotID, template.StartTime, template.EndTime, template.RotationEmployeeID}
	dst := []any{&template.ID, &template.CreatedAt, &template.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	for _, day := range template.RotationDays {
		query := `
			INSERT INTO shift_template_days (shift_template_id, rotation_day)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, template.ID, day); err != nil {
			return err
		}
	}

	return tx.Commit()
}
