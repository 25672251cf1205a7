package roster

import (
	"fmt"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// BuildRoster assembles the full snapshot handed to the solver: every entity
// collection, the tenant configuration, the roster state and the latest
// known score.
func (s *Service) BuildRoster(tenantID int64) (*domain.Roster, error) {
	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.store.GetTenantConfiguration(tenantID)
	if err != nil {
		return nil, err
	}

	skills, err := s.store.ListSkills(tenantID)
	if err != nil {
		return nil, err
	}

	spots, err := s.store.ListSpots(tenantID)
	if err != nil {
		return nil, err
	}

	employees, err := s.store.ListEmployees(tenantID)
	if err != nil {
		return nil, err
	}

	availabilities, err := s.store.ListAvailabilities(tenantID)
	if err != nil {
		return nil, err
	}

	shifts, err := s.store.ListShifts(tenantID)
	if err != nil {
		return nil, err
	}

	score, err := s.latestScore(tenantID)
	if err != nil {
		return nil, err
	}

	return &domain.Roster{
		TenantID:       tenantID,
		Skills:         skills,
		Spots:          spots,
		Employees:      employees,
		Availabilities: availabilities,
		Configuration:  cfg,
		State:          state,
		Shifts:         shifts,
		Score:          score,
	}, nil
}

// ApplyRoster merges an externally supplied snapshot's assignments back into
// the persisted shifts.
func (s *Service) ApplyRoster(tenantID int64, snapshot *domain.Roster) error {
	if snapshot == nil {
		return fmt.Errorf("roster snapshot is nil: %w", domain.ErrInvalidArgument)
	}
	if snapshot.TenantID != tenantID {
		return fmt.Errorf("roster snapshot belongs to tenant %d, not %d: %w", snapshot.TenantID, tenantID, domain.ErrInvalidArgument)
	}

	return s.MergeAssignments(tenantID, snapshot.Shifts)
}

// MergeAssignments writes each proposed shift's employee assignment onto the
// matching persisted shift and nothing else. Proposed shifts that no longer
// exist are skipped; the solver may have worked from a slightly stale
// snapshot. Proposed employee ids are resolved against the tenant's current
// employee set rather than trusted as attached records; an id that resolves
// to nothing clears the assignment, mirroring a deleted employee.
func (s *Service) MergeAssignments(tenantID int64, proposed []*domain.Shift) error {
	employees, err := s.store.ListEmployees(tenantID)
	if err != nil {
		return err
	}
	employeesByID := make(map[int64]*domain.Employee, len(employees))
	for _, employee := range employees {
		employeesByID[employee.ID] = employee
	}

	shifts, err := s.store.ListShifts(tenantID)
	if err != nil {
		return err
	}
	shiftsByID := make(map[int64]*domain.Shift, len(shifts))
	for _, shift := range shifts {
		shiftsByID[shift.ID] = shift
	}

	for _, p := range proposed {
		if _, ok := shiftsByID[p.ID]; !ok {
			continue
		}

		var employeeID *int64
		if p.EmployeeID != nil {
			if employee, ok := employeesByID[*p.EmployeeID]; ok {
				employeeID = &employee.ID
			}
		}

		if err := s.store.UpdateShiftAssignment(tenantID, p.ID, employeeID); err != nil {
			return err
		}
	}

	return nil
}
