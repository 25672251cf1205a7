package roster

import (
	"fmt"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

func (s *Service) GetRosterState(tenantID int64) (*domain.RosterState, error) {
	return s.store.GetRosterState(tenantID)
}

// Publish advances the published/draft boundary by lengthInDays, converting
// that many draft days into published days. It moves boundaries only; shift
// data is untouched.
func (s *Service) Publish(tenantID int64, lengthInDays int) (*domain.RosterState, error) {
	if lengthInDays < 0 {
		return nil, fmt.Errorf("publish length %d is negative: %w", lengthInDays, domain.ErrInvalidArgument)
	}

	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.advance(state, lengthInDays); err != nil {
		return nil, err
	}

	return state, nil
}

func (s *Service) advance(state *domain.RosterState, lengthInDays int) error {
	if lengthInDays > int(state.DraftLength) {
		return fmt.Errorf("publish length %d exceeds draft length %d: %w", lengthInDays, state.DraftLength, domain.ErrInvalidArgument)
	}

	state.FirstDraftDate = state.FirstDraftDate.AddDate(0, 0, lengthInDays)
	state.DraftLength -= int32(lengthInDays)

	return s.store.SaveRosterState(state)
}

// Provision expands the tenant's rotation templates over the lengthInDays
// days after the current draft horizon and persists the resulting shifts and
// availability records. Boundaries are not moved; that is Publish's job.
// Already-persisted shifts survive a mid-loop failure (they are valid future
// shifts), so the returned ids are meaningful even alongside an error.
func (s *Service) Provision(tenantID int64, lengthInDays int) ([]int64, error) {
	if lengthInDays < 0 {
		return nil, fmt.Errorf("provision length %d is negative: %w", lengthInDays, domain.ErrInvalidArgument)
	}

	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	return s.provision(tenantID, state, lengthInDays)
}

func (s *Service) provision(tenantID int64, state *domain.RosterState, lengthInDays int) ([]int64, error) {
	cfg, err := s.store.GetTenantConfiguration(tenantID)
	if err != nil {
		return nil, err
	}

	templates, err := s.store.ListShiftTemplates(tenantID)
	if err != nil {
		return nil, err
	}

	shifts, availabilities, err := s.expander.Expand(cfg, state, lengthInDays, templates)
	if err != nil {
		return nil, fmt.Errorf("expand rotation templates: %w", err)
	}

	ids := make([]int64, 0, len(shifts))
	for _, shift := range shifts {
		shift.TenantID = tenantID
		if err := s.store.CreateShift(shift); err != nil {
			return ids, err
		}
		ids = append(ids, shift.ID)
	}

	for _, availability := range availabilities {
		availability.TenantID = tenantID
		if err := s.store.CreateAvailability(availability); err != nil {
			return ids, err
		}
	}

	return ids, nil
}

// PublishAndProvision rolls the window forward by the tenant's standard
// publish length and backfills the extension horizon from the rotation
// templates. The publish is guarded by the state's version check; a
// concurrent mutation between the two sub-steps surfaces as ErrConflict.
// Once the publish has committed, the window advance is durable even if
// provisioning fails partway.
func (s *Service) PublishAndProvision(tenantID int64) (*domain.RosterState, []int64, error) {
	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, nil, err
	}

	lengthInDays := int(state.PublishLength)
	if err := s.advance(state, lengthInDays); err != nil {
		return nil, nil, err
	}

	// Reconfirm we are still acting on the state we just wrote before
	// expanding against its boundaries.
	current, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return state, nil, err
	}
	if current.Version != state.Version {
		return state, nil, fmt.Errorf("roster state for tenant %d advanced concurrently: %w", tenantID, domain.ErrConflict)
	}

	ids, err := s.provision(tenantID, current, lengthInDays)
	return current, ids, err
}
