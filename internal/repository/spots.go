package repository

import (
	"database/sql"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListSpots(tenantID int64) ([]*domain.Spot, error) {
	return r.listSpots(tenantID, 0, 0)
}

// ListSpotsPage returns one page of the tenant's spots in insertion order.
// pageSize <= 0 disables pagination.
func (r *Repository) ListSpotsPage(tenantID int64, page int, pageSize int) ([]*domain.Spot, error) {
	offset := 0
	if page > 0 {
		offset = page * pageSize
	}
	return r.listSpots(tenantID, offset, pageSize)
}

func (r *Repository) listSpots(tenantID int64, offset int, limit int) ([]*domain.Spot, error) {
	query := `
		SELECT s.id, s.name, s.created_at, s.version, ss.skill_id
		FROM (
			SELECT id, name, created_at, version
			FROM spots
			WHERE tenant_id = $1
			ORDER BY id
			LIMIT $2 OFFSET $3
		) s
		LEFT JOIN spot_skills ss ON s.id = ss.spot_id
		ORDER BY s.id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	limitArg := any(nil) // NULL limit means no limit
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spots := []*domain.Spot{}
	spotsByID := make(map[int64]*domain.Spot)

	for rows.Next() {
		var (
			spot    domain.Spot
			skillID sql.NullInt64
		)
		if err := rows.Scan(&spot.ID, &spot.Name, &spot.CreatedAt, &spot.Version, &skillID); err != nil {
			return nil, err
		}

		existing, ok := spotsByID[spot.ID]
		if !ok {
			spot.TenantID = tenantID
			spot.RequiredSkillIDs = []int64{}
			existing = &spot
			spotsByID[spot.ID] = existing
			spots = append(spots, existing)
		}

		if skillID.Valid {
			existing.RequiredSkillIDs = append(existing.RequiredSkillIDs, skillID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return spots, nil
}

func (r *Repository) CreateSpot(spot *domain.Spot) error {
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
		INSERT INTO spots (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	dst := []any{&spot.ID, &spot.CreatedAt, &spot.Version}
	if err := tx.QueryRowContext(ctx, query, spot.TenantID, spot.Name).Scan(dst...); err != nil {
		return err
	}

	for _, skillID := range spot.RequiredSkillIDs {
		query := `
			INSERT INTO spot_skills (spot_id, skill_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, spot.ID, skillID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
