package roster

import (
	"fmt"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// GetCurrentSpotRosterView covers the published-through-draft span of the
// tenant's roster state. pageSize <= 0 returns all spots.
func (s *Service) GetCurrentSpotRosterView(tenantID int64, page int, pageSize int) (*domain.SpotRosterView, error) {
	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	spots, err := s.store.ListSpotsPage(tenantID, page, pageSize)
	if err != nil {
		return nil, err
	}

	return s.buildSpotRosterView(tenantID, state.FirstPublishedDate(), state.LastDraftDate(), spots, state)
}

func (s *Service) GetSpotRosterView(tenantID int64, startDate, endDate time.Time) (*domain.SpotRosterView, error) {
	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	spots, err := s.store.ListSpots(tenantID)
	if err != nil {
		return nil, err
	}

	return s.buildSpotRosterView(tenantID, startDate, endDate, spots, state)
}

// GetSpotRosterViewFor restricts the view to a caller-supplied spot subset.
// A nil subset is rejected, not treated as "all spots".
func (s *Service) GetSpotRosterViewFor(tenantID int64, startDate, endDate time.Time, spotIDs []int64) (*domain.SpotRosterView, error) {
	if spotIDs == nil {
		return nil, fmt.Errorf("spot id list is nil: %w", domain.ErrInvalidArgument)
	}

	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	all, err := s.store.ListSpots(tenantID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Spot, len(all))
	for _, spot := range all {
		byID[spot.ID] = spot
	}

	spots := make([]*domain.Spot, 0, len(spotIDs))
	for _, id := range spotIDs {
		spot, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("spot %d: %w", id, domain.ErrNotFound)
		}
		spots = append(spots, spot)
	}

	return s.buildSpotRosterView(tenantID, startDate, endDate, spots, state)
}

func (s *Service) buildSpotRosterView(tenantID int64, startDate, endDate time.Time, spots []*domain.Spot, state *domain.RosterState) (*domain.SpotRosterView, error) {
	employees, err := s.store.ListEmployees(tenantID)
	if err != nil {
		return nil, err
	}

	shifts, err := s.store.ListShiftsInRange(tenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	shiftsBySpot := make(map[int64][]domain.ShiftView, len(spots))
	for _, shift := range shifts {
		shiftsBySpot[shift.SpotID] = append(shiftsBySpot[shift.SpotID], domain.NewShiftView(shift))
	}

	score, err := s.latestScore(tenantID)
	if err != nil {
		return nil, err
	}

	return &domain.SpotRosterView{
		TenantID:     tenantID,
		StartDate:    startDate,
		EndDate:      endDate,
		Spots:        spots,
		Employees:    employees,
		ShiftsBySpot: shiftsBySpot,
		Score:        score,
		State:        state,
	}, nil
}

// GetCurrentEmployeeRosterView covers [lastHistoricDate, lastDraftDate] for
// all of the tenant's employees.
func (s *Service) GetCurrentEmployeeRosterView(tenantID int64) (*domain.EmployeeRosterView, error) {
	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	employees, err := s.store.ListEmployees(tenantID)
	if err != nil {
		return nil, err
	}

	return s.buildEmployeeRosterView(tenantID, state.LastHistoricDate, state.LastDraftDate(), employees, state)
}

func (s *Service) GetEmployeeRosterView(tenantID int64, startDate, endDate time.Time) (*domain.EmployeeRosterView, error) {
	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	employees, err := s.store.ListEmployees(tenantID)
	if err != nil {
		return nil, err
	}

	return s.buildEmployeeRosterView(tenantID, startDate, endDate, employees, state)
}

func (s *Service) GetEmployeeRosterViewFor(tenantID int64, startDate, endDate time.Time, employeeIDs []int64) (*domain.EmployeeRosterView, error) {
	if employeeIDs == nil {
		return nil, fmt.Errorf("employee id list is nil: %w", domain.ErrInvalidArgument)
	}

	state, err := s.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}

	all, err := s.store.ListEmployees(tenantID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Employee, len(all))
	for _, employee := range all {
		byID[employee.ID] = employee
	}

	employees := make([]*domain.Employee, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		employee, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
		}
		employees = append(employees, employee)
	}

	return s.buildEmployeeRosterView(tenantID, startDate, endDate, employees, state)
}

func (s *Service) buildEmployeeRosterView(tenantID int64, startDate, endDate time.Time, employees []*domain.Employee, state *domain.RosterState) (*domain.EmployeeRosterView, error) {
	spots, err := s.store.ListSpots(tenantID)
	if err != nil {
		return nil, err
	}

	shifts, err := s.store.ListShiftsInRange(tenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	shiftsByEmployee := make(map[int64][]domain.ShiftView, len(employees))
	for _, shift := range shifts {
		if shift.EmployeeID == nil {
			continue
		}
		shiftsByEmployee[*shift.EmployeeID] = append(shiftsByEmployee[*shift.EmployeeID], domain.NewShiftView(shift))
	}

	availabilities, err := s.store.ListAvailabilitiesInRange(tenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	availabilitiesByEmployee := make(map[int64][]*domain.EmployeeAvailability, len(employees))
	for _, availability := range availabilities {
		availabilitiesByEmployee[availability.EmployeeID] = append(availabilitiesByEmployee[availability.EmployeeID], availability)
	}

	score, err := s.latestScore(tenantID)
	if err != nil {
		return nil, err
	}

	return &domain.EmployeeRosterView{
		TenantID:                 tenantID,
		StartDate:                startDate,
		EndDate:                  endDate,
		Spots:                    spots,
		Employees:                employees,
		ShiftsByEmployee:         shiftsByEmployee,
		AvailabilitiesByEmployee: availabilitiesByEmployee,
		Score:                    score,
		State:                    state,
	}, nil
}

// latestScore reads the most recent solve result's score. A missing result is
// simply a nil score; a solve-service failure propagates to the caller so a
// degraded view is never passed off as the real thing.
func (s *Service) latestScore(tenantID int64) (*domain.Score, error) {
	result, err := s.solver.LatestResult(tenantID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.Score, nil
}
