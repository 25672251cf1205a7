// Package roster owns the sliding-window roster state machine, the
// read-optimized roster views and the conflict-safe merge of solver output.
// It talks to its collaborators through narrow interfaces so the logic can be
// exercised without Postgres, RabbitMQ or Redis.
package roster

import (
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// Store is the slice of the repository the roster core depends on. All calls
// are tenant-scoped.
type Store interface {
	GetRosterState(tenantID int64) (*domain.RosterState, error)
	SaveRosterState(state *domain.RosterState) error

	GetTenantConfiguration(tenantID int64) (*domain.TenantConfiguration, error)
	ListShiftTemplates(tenantID int64) ([]*domain.ShiftTemplate, error)

	ListSkills(tenantID int64) ([]*domain.Skill, error)
	ListSpots(tenantID int64) ([]*domain.Spot, error)
	ListSpotsPage(tenantID int64, page int, pageSize int) ([]*domain.Spot, error)
	ListEmployees(tenantID int64) ([]*domain.Employee, error)
	ListAvailabilities(tenantID int64) ([]*domain.EmployeeAvailability, error)
	ListAvailabilitiesInRange(tenantID int64, startDate, endDate time.Time) ([]*domain.EmployeeAvailability, error)
	ListShifts(tenantID int64) ([]*domain.Shift, error)
	ListShiftsInRange(tenantID int64, startDate, endDate time.Time) ([]*domain.Shift, error)

	CreateShift(shift *domain.Shift) error
	CreateAvailability(availability *domain.EmployeeAvailability) error
	UpdateShiftAssignment(tenantID int64, shiftID int64, employeeID *int64) error
}

// Expander turns rotation templates into concrete shift and availability
// instances for an extension window. It must be pure: no side effects, no
// store access.
type Expander interface {
	Expand(cfg *domain.TenantConfiguration, state *domain.RosterState, lengthInDays int, templates []*domain.ShiftTemplate) ([]*domain.Shift, []*domain.EmployeeAvailability, error)
}

// SolveService is the asynchronous optimization process, keyed by tenant.
// LatestResult returns (nil, nil) while no solve has completed.
type SolveService interface {
	Trigger(tenantID int64) error
	Cancel(tenantID int64) error
	LatestResult(tenantID int64) (*domain.Roster, error)
}

type Service struct {
	store    Store
	expander Expander
	solver   SolveService
}

func NewService(store Store, expander Expander, solver SolveService) *Service {
	return &Service{
		store:    store,
		expander: expander,
		solver:   solver,
	}
}
