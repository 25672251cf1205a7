package solver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// RosterSource is the slice of the roster service the worker needs.
type RosterSource interface {
	BuildRoster(tenantID int64) (*domain.Roster, error)
	MergeAssignments(tenantID int64, proposed []*domain.Shift) error
}

// SolveBackend is the slice of the client the worker needs: cancel flags and
// result storage.
type SolveBackend interface {
	ClearCancel(tenantID int64)
	CancelRequested(tenantID int64) bool
	StoreResult(roster *domain.Roster) error
}

// RunSolve executes one full optimization for the tenant: snapshot the
// roster, run the engine until it finishes or a cancel arrives, store the
// result and merge the winning assignments back into the shift table. Any
// cancel flag still standing from before the run is dropped first.
func RunSolve(source RosterSource, backend SolveBackend, parameters Parameters, tenantID int64) error {
	snapshot, err := source.BuildRoster(tenantID)
	if err != nil {
		return fmt.Errorf("build roster snapshot: %w", err)
	}

	engine, err := NewEngine(parameters, snapshot)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	backend.ClearCancel(tenantID)

	start := time.Now()
	best := engine.Solve(func() bool { return backend.CancelRequested(tenantID) })
	slog.Info("solve finished",
		slog.Int64("tenantID", tenantID),
		slog.String("score", best.Score.String()),
		slog.Duration("elapsed", time.Since(start)),
	)

	if err := backend.StoreResult(best); err != nil {
		return fmt.Errorf("store solve result: %w", err)
	}

	if err := source.MergeAssignments(tenantID, best.Shifts); err != nil {
		return fmt.Errorf("merge assignments: %w", err)
	}

	return nil
}
