package roster

import (
	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// StartSolve signals the solve service to begin an asynchronous solve for
// the tenant. It is a fire-and-forget trigger; the result arrives via
// CurrentSolveResult.
func (s *Service) StartSolve(tenantID int64) error {
	// One roster state is mandatory per active tenant, so this doubles as
	// the unknown-tenant check.
	if _, err := s.store.GetRosterState(tenantID); err != nil {
		return err
	}

	return s.solver.Trigger(tenantID)
}

// StopSolve requests early termination of any in-flight solve. Idempotent if
// none is running.
func (s *Service) StopSolve(tenantID int64) error {
	return s.solver.Cancel(tenantID)
}

// CurrentSolveResult returns the latest computed snapshot, or nil while no
// solve has completed. An absent result is a state, not an error.
func (s *Service) CurrentSolveResult(tenantID int64) (*domain.Roster, error) {
	return s.solver.LatestResult(tenantID)
}
