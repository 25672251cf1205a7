package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) GetRosterState(tenantID int64) (*domain.RosterState, error) {
	query := `
		SELECT last_historic_date, first_draft_date, draft_length, publish_length, created_at, version
		FROM roster_states
		WHERE tenant_id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	state := &domain.RosterState{TenantID: tenantID}
	dst := []any{
		&state.LastHistoricDate,
		&state.FirstDraftDate,
		&state.DraftLength,
		&state.PublishLength,
		&state.CreatedAt,
		&state.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, tenantID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("roster state for tenant %d: %w", tenantID, domain.ErrNotFound)
		}
		return nil, err
	}

	return state, nil
}

func (r *Repository) CreateRosterState(state *domain.RosterState) error {
	query := `
		INSERT INTO roster_states (tenant_id, last_historic_date, first_draft_date, draft_length, publish_length)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	params := []any{state.TenantID, state.LastHistoricDate, state.FirstDraftDate, state.DraftLength, state.PublishLength}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&state.CreatedAt, &state.Version); err != nil {
		return err
	}

	return nil
}

// SaveRosterState replaces the tenant's single state record. The version
// predicate makes concurrent publishes fail with ErrConflict instead of
// double-advancing the window.
func (r *Repository) SaveRosterState(state *domain.RosterState) error {
	query := `
		UPDATE roster_states
		SET
			last_historic_date = $1,
			first_draft_date = $2,
			draft_length = $3,
			publish_length = $4,
			version = version + 1
		WHERE tenant_id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	params := []any{
		state.LastHistoricDate,
		state.FirstDraftDate,
		state.DraftLength,
		state.PublishLength,
		state.TenantID,
		state.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&state.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("roster state for tenant %d was modified concurrently: %w", state.TenantID, domain.ErrConflict)
		}
		return err
	}

	return nil
}
