package repository

import (
	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListSkills(tenantID int64) ([]*domain.Skill, error) {
	query := `
		SELECT id, name, created_at, version
		FROM skills
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

	skills := []*domain.Skill{}
	for rows.Next() {
		skill := domain.Skill{TenantID: tenantID}
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.CreatedAt, &skill.Version); err != nil {
			return nil, err
		}
		skills = append(skills, &skill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

func (r *Repository) CreateSkill(skill *domain.Skill) error {
	query := `
		INSERT INTO skills (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	dst := []any{&skill.ID, &skill.CreatedAt, &skill.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, skill.TenantID, skill.Name).Scan(dst...); err != nil {
		return err
	}

	return nil
}
