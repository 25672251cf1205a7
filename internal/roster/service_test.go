package roster

import (
	"fmt"
	"testing"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeStore struct {
	states         map[int64]*domain.RosterState
	cfg            *domain.TenantConfiguration
	templates      []*domain.ShiftTemplate
	skills         []*domain.Skill
	spots          []*domain.Spot
	employees      []*domain.Employee
	availabilities []*domain.EmployeeAvailability
	shifts         []*domain.Shift

	saves            int
	saveErr          error
	concurrentWriter func(*fakeStore)

	nextShiftID    int64
	failShiftAt    int // 1-based index of the CreateShift call that fails
	createdShifts  []*domain.Shift
	createdAvails  []*domain.EmployeeAvailability
	assignments    map[int64]*int64
	lastSpotsPage  [2]int
}

func newFakeStore(state *domain.RosterState) *fakeStore {
	return &fakeStore{
		states:      map[int64]*domain.RosterState{state.TenantID: state},
		nextShiftID: 1000,
		assignments: map[int64]*int64{},
	}
}

func (f *fakeStore) GetRosterState(tenantID int64) (*domain.RosterState, error) {
	stored, ok := f.states[tenantID]
	if !ok {
		return nil, fmt.Errorf("roster state for tenant %d: %w", tenantID, domain.ErrNotFound)
	}
	state := *stored
	return &state, nil
}

func (f *fakeStore) SaveRosterState(state *domain.RosterState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if state.Version != f.states[state.TenantID].Version {
		return fmt.Errorf("roster state for tenant %d: %w", state.TenantID, domain.ErrConflict)
	}
	state.Version++
	saved := *state
	f.states[state.TenantID] = &saved
	f.saves++
	if f.concurrentWriter != nil {
		f.concurrentWriter(f)
	}
	return nil
}

func (f *fakeStore) GetTenantConfiguration(tenantID int64) (*domain.TenantConfiguration, error) {
	if f.cfg == nil || f.cfg.TenantID != tenantID {
		return nil, fmt.Errorf("configuration for tenant %d: %w", tenantID, domain.ErrNotFound)
	}
	return f.cfg, nil
}

func (f *fakeStore) ListShiftTemplates(tenantID int64) ([]*domain.ShiftTemplate, error) {
	var out []*domain.ShiftTemplate
	for _, template := range f.templates {
		if template.TenantID == tenantID {
			out = append(out, template)
		}
	}
	return out, nil
}

func (f *fakeStore) ListSkills(tenantID int64) ([]*domain.Skill, error) {
	var out []*domain.Skill
	for _, skill := range f.skills {
		if skill.TenantID == tenantID {
			out = append(out, skill)
		}
	}
	return out, nil
}

func (f *fakeStore) ListSpots(tenantID int64) ([]*domain.Spot, error) {
	var out []*domain.Spot
	for _, spot := range f.spots {
		if spot.TenantID == tenantID {
			out = append(out, spot)
		}
	}
	return out, nil
}

func (f *fakeStore) ListSpotsPage(tenantID int64, page int, pageSize int) ([]*domain.Spot, error) {
	f.lastSpotsPage = [2]int{page, pageSize}
	spots, _ := f.ListSpots(tenantID)
	if pageSize <= 0 {
		return spots, nil
	}
	start := page * pageSize
	if start >= len(spots) {
		return nil, nil
	}
	end := min(start+pageSize, len(spots))
	return spots[start:end], nil
}

func (f *fakeStore) ListEmployees(tenantID int64) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, employee := range f.employees {
		if employee.TenantID == tenantID {
			out = append(out, employee)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAvailabilities(tenantID int64) ([]*domain.EmployeeAvailability, error) {
	var out []*domain.EmployeeAvailability
	for _, availability := range f.availabilities {
		if availability.TenantID == tenantID {
			out = append(out, availability)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAvailabilitiesInRange(tenantID int64, startDate, endDate time.Time) ([]*domain.EmployeeAvailability, error) {
	var out []*domain.EmployeeAvailability
	for _, availability := range f.availabilities {
		if availability.TenantID != tenantID {
			continue
		}
		if !availability.Date.Before(startDate) && !availability.Date.After(endDate) {
			out = append(out, availability)
		}
	}
	return out, nil
}

func (f *fakeStore) ListShifts(tenantID int64) ([]*domain.Shift, error) {
	var out []*domain.Shift
	for _, shift := range f.shifts {
		if shift.TenantID == tenantID {
			out = append(out, shift)
		}
	}
	return out, nil
}

func (f *fakeStore) ListShiftsInRange(tenantID int64, startDate, endDate time.Time) ([]*domain.Shift, error) {
	var out []*domain.Shift
	for _, shift := range f.shifts {
		if shift.TenantID != tenantID {
			continue
		}
		if !shift.StartTime.Before(startDate) && shift.StartTime.Before(endDate.AddDate(0, 0, 1)) {
			out = append(out, shift)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateShift(shift *domain.Shift) error {
	if f.failShiftAt > 0 && len(f.createdShifts)+1 == f.failShiftAt {
		return fmt.Errorf("insert shift: connection reset")
	}
	f.nextShiftID++
	shift.ID = f.nextShiftID
	f.createdShifts = append(f.createdShifts, shift)
	f.shifts = append(f.shifts, shift)
	return nil
}

func (f *fakeStore) CreateAvailability(availability *domain.EmployeeAvailability) error {
	f.createdAvails = append(f.createdAvails, availability)
	f.availabilities = append(f.availabilities, availability)
	return nil
}

func (f *fakeStore) UpdateShiftAssignment(tenantID int64, shiftID int64, employeeID *int64) error {
	f.assignments[shiftID] = employeeID
	return nil
}

type fakeExpander struct {
	shifts    []*domain.Shift
	avails    []*domain.EmployeeAvailability
	err       error
	gotState  *domain.RosterState
	gotLength int
}

func (f *fakeExpander) Expand(cfg *domain.TenantConfiguration, state *domain.RosterState, lengthInDays int, templates []*domain.ShiftTemplate) ([]*domain.Shift, []*domain.EmployeeAvailability, error) {
	f.gotState = state
	f.gotLength = lengthInDays
	return f.shifts, f.avails, f.err
}

type fakeSolver struct {
	triggered []int64
	cancelled []int64
	result    *domain.Roster
	err       error
}

func (f *fakeSolver) Trigger(tenantID int64) error {
	if f.err != nil {
		return f.err
	}
	f.triggered = append(f.triggered, tenantID)
	return nil
}

func (f *fakeSolver) Cancel(tenantID int64) error {
	f.cancelled = append(f.cancelled, tenantID)
	return nil
}

func (f *fakeSolver) LatestResult(tenantID int64) (*domain.Roster, error) {
	return f.result, f.err
}

func testState() *domain.RosterState {
	return &domain.RosterState{
		TenantID:         1,
		LastHistoricDate: day(2024, time.January, 9),
		FirstDraftDate:   day(2024, time.January, 10),
		DraftLength:      14,
		PublishLength:    7,
		Version:          1,
	}
}

func TestPublish_AdvancesBoundary(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	before, err := store.GetRosterState(1)
	require.NoError(t, err)
	lastDraft := before.LastDraftDate()

	state, err := service.Publish(1, 5)
	require.NoError(t, err)

	assert.Equal(t, day(2024, time.January, 15), state.FirstDraftDate)
	assert.Equal(t, int32(9), state.DraftLength)
	// the draft horizon itself stays put
	assert.Equal(t, lastDraft, state.LastDraftDate())
	assert.Equal(t, day(2024, time.January, 9), state.LastHistoricDate)
	assert.Equal(t, 1, store.saves)
}

func TestPublish_ZeroDaysStillSaves(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	state, err := service.Publish(1, 0)
	require.NoError(t, err)

	assert.Equal(t, day(2024, time.January, 10), state.FirstDraftDate)
	assert.Equal(t, int32(14), state.DraftLength)
	assert.Equal(t, 1, store.saves)
}

func TestPublish_NegativeLength(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.Publish(1, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, 0, store.saves)
}

func TestPublish_LengthBeyondDraftRegion(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.Publish(1, 15)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// the stored state is untouched
	state, err := store.GetRosterState(1)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.January, 10), state.FirstDraftDate)
	assert.Equal(t, int32(14), state.DraftLength)
	assert.Equal(t, 0, store.saves)
}

func TestPublish_EntireDraftRegion(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	state, err := service.Publish(1, 14)
	require.NoError(t, err)

	assert.Equal(t, int32(0), state.DraftLength)
	assert.Equal(t, day(2024, time.January, 24), state.FirstDraftDate)
	// an empty draft region means no day satisfies IsDraft
	assert.False(t, state.IsDraft(state.FirstDraftDate))
}

func TestPublish_StaleVersion(t *testing.T) {
	store := newFakeStore(testState())
	store.saveErr = fmt.Errorf("roster state for tenant 1: %w", domain.ErrConflict)
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.Publish(1, 3)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPublish_UnknownTenant(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.Publish(42, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProvision_PersistsExpandedInstances(t *testing.T) {
	store := newFakeStore(testState())
	store.cfg = &domain.TenantConfiguration{TenantID: 1, TimeZone: "UTC", RotationLength: 7}
	employeeID := int64(10)
	expander := &fakeExpander{
		shifts: []*domain.Shift{
			{SpotID: 1, StartTime: day(2024, time.January, 24).Add(9 * time.Hour), EndTime: day(2024, time.January, 24).Add(17 * time.Hour)},
			{SpotID: 1, StartTime: day(2024, time.January, 25).Add(9 * time.Hour), EndTime: day(2024, time.January, 25).Add(17 * time.Hour)},
		},
		avails: []*domain.EmployeeAvailability{
			{EmployeeID: employeeID, Date: day(2024, time.January, 24), State: domain.AvailabilityDesired},
		},
	}
	service := NewService(store, expander, &fakeSolver{})

	ids, err := service.Provision(1, 2)
	require.NoError(t, err)

	require.Len(t, ids, 2)
	assert.Equal(t, []int64{1001, 1002}, ids)
	assert.Equal(t, 2, expander.gotLength)
	for _, shift := range store.createdShifts {
		assert.Equal(t, int64(1), shift.TenantID)
	}
	require.Len(t, store.createdAvails, 1)
	assert.Equal(t, int64(1), store.createdAvails[0].TenantID)

	// provisioning never moves the window
	assert.Equal(t, 0, store.saves)
}

func TestProvision_NegativeLength(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.Provision(1, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestProvision_PartialFailureKeepsPersistedIDs(t *testing.T) {
	store := newFakeStore(testState())
	store.cfg = &domain.TenantConfiguration{TenantID: 1, TimeZone: "UTC", RotationLength: 7}
	store.failShiftAt = 3
	expander := &fakeExpander{
		shifts: []*domain.Shift{
			{SpotID: 1, StartTime: day(2024, time.January, 24)},
			{SpotID: 1, StartTime: day(2024, time.January, 25)},
			{SpotID: 1, StartTime: day(2024, time.January, 26)},
		},
	}
	service := NewService(store, expander, &fakeSolver{})

	ids, err := service.Provision(1, 3)
	require.Error(t, err)
	assert.Equal(t, []int64{1001, 1002}, ids)
}

func TestPublishAndProvision(t *testing.T) {
	store := newFakeStore(testState())
	store.cfg = &domain.TenantConfiguration{TenantID: 1, TimeZone: "UTC", RotationLength: 7}
	expander := &fakeExpander{
		shifts: []*domain.Shift{{SpotID: 1, StartTime: day(2024, time.January, 24)}},
	}
	service := NewService(store, expander, &fakeSolver{})

	state, ids, err := service.PublishAndProvision(1)
	require.NoError(t, err)

	assert.Equal(t, day(2024, time.January, 17), state.FirstDraftDate)
	assert.Equal(t, int32(7), state.DraftLength)
	assert.Len(t, ids, 1)
	assert.Equal(t, int(state.PublishLength), expander.gotLength)
	// the expander sees the post-publish boundaries
	require.NotNil(t, expander.gotState)
	assert.Equal(t, day(2024, time.January, 17), expander.gotState.FirstDraftDate)
}

func TestPublishAndProvision_ConcurrentAdvance(t *testing.T) {
	store := newFakeStore(testState())
	store.cfg = &domain.TenantConfiguration{TenantID: 1, TimeZone: "UTC", RotationLength: 7}
	store.concurrentWriter = func(f *fakeStore) {
		// another writer sneaks in right after the publish commits
		f.states[1].Version++
	}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, _, err := service.PublishAndProvision(1)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGetCurrentSpotRosterView_GroupsShiftsBySpot(t *testing.T) {
	store := newFakeStore(testState())
	employee := int64(10)
	store.spots = []*domain.Spot{
		{ID: 1, TenantID: 1, Name: "Counter"},
		{ID: 2, TenantID: 1, Name: "Bar"},
	}
	store.employees = []*domain.Employee{{ID: employee, TenantID: 1, Name: "Amy"}}
	store.shifts = []*domain.Shift{
		{ID: 100, TenantID: 1, SpotID: 1, StartTime: day(2024, time.January, 11).Add(9 * time.Hour), EmployeeID: &employee},
		{ID: 101, TenantID: 1, SpotID: 1, StartTime: day(2024, time.January, 12).Add(9 * time.Hour)},
		{ID: 102, TenantID: 1, SpotID: 2, StartTime: day(2024, time.January, 13).Add(7 * time.Hour)},
		// outside [firstPublishedDate, lastDraftDate]
		{ID: 103, TenantID: 1, SpotID: 1, StartTime: day(2024, time.February, 20).Add(9 * time.Hour)},
	}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	view, err := service.GetCurrentSpotRosterView(1, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, day(2024, time.January, 10), view.StartDate)
	assert.Equal(t, day(2024, time.January, 23), view.EndDate)
	require.Len(t, view.ShiftsBySpot, 2)
	assert.Len(t, view.ShiftsBySpot[1], 2)
	assert.Len(t, view.ShiftsBySpot[2], 1)
	assert.Len(t, view.Spots, 2)
	assert.NotNil(t, view.State)
}

func TestGetCurrentSpotRosterView_Pagination(t *testing.T) {
	store := newFakeStore(testState())
	store.spots = []*domain.Spot{
		{ID: 1, TenantID: 1}, {ID: 2, TenantID: 1}, {ID: 3, TenantID: 1},
	}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	view, err := service.GetCurrentSpotRosterView(1, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, [2]int{1, 2}, store.lastSpotsPage)
	require.Len(t, view.Spots, 1)
	assert.Equal(t, int64(3), view.Spots[0].ID)
}

func TestGetSpotRosterViewFor_NilSubset(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.GetSpotRosterViewFor(1, day(2024, time.January, 10), day(2024, time.January, 12), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGetSpotRosterViewFor_UnknownSpot(t *testing.T) {
	store := newFakeStore(testState())
	store.spots = []*domain.Spot{{ID: 1, TenantID: 1}}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.GetSpotRosterViewFor(1, day(2024, time.January, 10), day(2024, time.January, 12), []int64{1, 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSpotRosterViewFor_EmptySubset(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	view, err := service.GetSpotRosterViewFor(1, day(2024, time.January, 10), day(2024, time.January, 12), []int64{})
	require.NoError(t, err)
	assert.Empty(t, view.Spots)
}

func TestGetCurrentEmployeeRosterView(t *testing.T) {
	store := newFakeStore(testState())
	amy, beth := int64(10), int64(11)
	store.employees = []*domain.Employee{
		{ID: amy, TenantID: 1, Name: "Amy"},
		{ID: beth, TenantID: 1, Name: "Beth"},
	}
	store.shifts = []*domain.Shift{
		{ID: 100, TenantID: 1, SpotID: 1, StartTime: day(2024, time.January, 11), EmployeeID: &amy},
		{ID: 101, TenantID: 1, SpotID: 1, StartTime: day(2024, time.January, 12), EmployeeID: &beth},
		// unassigned shifts appear in no employee's lane
		{ID: 102, TenantID: 1, SpotID: 1, StartTime: day(2024, time.January, 13)},
	}
	store.availabilities = []*domain.EmployeeAvailability{
		{ID: 1, TenantID: 1, EmployeeID: amy, Date: day(2024, time.January, 12), State: domain.AvailabilityUnavailable},
		{ID: 2, TenantID: 1, EmployeeID: amy, Date: day(2024, time.June, 1), State: domain.AvailabilityDesired},
	}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	view, err := service.GetCurrentEmployeeRosterView(1)
	require.NoError(t, err)

	// employee views start at the historic cutoff, not the published boundary
	assert.Equal(t, day(2024, time.January, 9), view.StartDate)
	assert.Equal(t, day(2024, time.January, 23), view.EndDate)
	assert.Len(t, view.ShiftsByEmployee[amy], 1)
	assert.Len(t, view.ShiftsByEmployee[beth], 1)
	require.Len(t, view.AvailabilitiesByEmployee[amy], 1)
	assert.Equal(t, domain.AvailabilityUnavailable, view.AvailabilitiesByEmployee[amy][0].State)
}

func TestGetEmployeeRosterViewFor_NilSubset(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	_, err := service.GetEmployeeRosterViewFor(1, day(2024, time.January, 10), day(2024, time.January, 12), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestViews_PropagateSolveServiceFailure(t *testing.T) {
	store := newFakeStore(testState())
	store.cfg = &domain.TenantConfiguration{TenantID: 1, TimeZone: "UTC", RotationLength: 7}
	solver := &fakeSolver{err: fmt.Errorf("dial tcp: connection refused: %w", domain.ErrUpstream)}
	service := NewService(store, &fakeExpander{}, solver)

	_, err := service.GetCurrentSpotRosterView(1, 0, 0)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = service.GetCurrentEmployeeRosterView(1)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = service.BuildRoster(1)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestViews_CarryLatestScore(t *testing.T) {
	store := newFakeStore(testState())
	solver := &fakeSolver{result: &domain.Roster{TenantID: 1, Score: &domain.Score{Hard: -2, Soft: 5}}}
	service := NewService(store, &fakeExpander{}, solver)

	view, err := service.GetCurrentSpotRosterView(1, 0, 0)
	require.NoError(t, err)
	require.NotNil(t, view.Score)
	assert.Equal(t, int64(-2), view.Score.Hard)
}

func TestMergeAssignments(t *testing.T) {
	store := newFakeStore(testState())
	amy, beth := int64(10), int64(11)
	ghost := int64(77)
	store.employees = []*domain.Employee{
		{ID: amy, TenantID: 1},
		{ID: beth, TenantID: 1},
	}
	store.shifts = []*domain.Shift{
		{ID: 100, TenantID: 1, SpotID: 1, EmployeeID: &amy},
		{ID: 101, TenantID: 1, SpotID: 1},
	}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	err := service.MergeAssignments(1, []*domain.Shift{
		{ID: 100, EmployeeID: &beth},
		{ID: 101, EmployeeID: &ghost},
		{ID: 999, EmployeeID: &amy},
	})
	require.NoError(t, err)

	require.Len(t, store.assignments, 2)
	require.NotNil(t, store.assignments[100])
	assert.Equal(t, beth, *store.assignments[100])
	// an id that resolves to no current employee clears the slot
	assert.Nil(t, store.assignments[101])
	_, touched := store.assignments[999]
	assert.False(t, touched)
}

func TestMergeAssignments_Idempotent(t *testing.T) {
	store := newFakeStore(testState())
	amy := int64(10)
	store.employees = []*domain.Employee{{ID: amy, TenantID: 1}}
	store.shifts = []*domain.Shift{{ID: 100, TenantID: 1, SpotID: 1}}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	proposed := []*domain.Shift{{ID: 100, EmployeeID: &amy}}
	require.NoError(t, service.MergeAssignments(1, proposed))
	require.NoError(t, service.MergeAssignments(1, proposed))

	require.NotNil(t, store.assignments[100])
	assert.Equal(t, amy, *store.assignments[100])
}

func TestApplyRoster_TenantMismatch(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	err := service.ApplyRoster(1, &domain.Roster{TenantID: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = service.ApplyRoster(1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestStartSolve(t *testing.T) {
	store := newFakeStore(testState())
	solver := &fakeSolver{}
	service := NewService(store, &fakeExpander{}, solver)

	require.NoError(t, service.StartSolve(1))
	assert.Equal(t, []int64{1}, solver.triggered)
}

func TestStartSolve_UnknownTenant(t *testing.T) {
	store := newFakeStore(testState())
	solver := &fakeSolver{}
	service := NewService(store, &fakeExpander{}, solver)

	err := service.StartSolve(42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, solver.triggered)
}

func TestStopSolve_AlwaysIdempotent(t *testing.T) {
	store := newFakeStore(testState())
	solver := &fakeSolver{}
	service := NewService(store, &fakeExpander{}, solver)

	require.NoError(t, service.StopSolve(1))
	require.NoError(t, service.StopSolve(1))
	assert.Equal(t, []int64{1, 1}, solver.cancelled)
}

func TestCurrentSolveResult_AbsentIsNil(t *testing.T) {
	store := newFakeStore(testState())
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	result, err := service.CurrentSolveResult(1)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestTenantIsolation(t *testing.T) {
	store := newFakeStore(testState())
	other := testState()
	other.TenantID = 2
	store.states[2] = other

	amy, zed := int64(10), int64(20)
	store.spots = []*domain.Spot{
		{ID: 1, TenantID: 1, Name: "Counter"},
		{ID: 2, TenantID: 2, Name: "Warehouse"},
	}
	store.employees = []*domain.Employee{
		{ID: amy, TenantID: 1, Name: "Amy"},
		{ID: zed, TenantID: 2, Name: "Zed"},
	}
	store.shifts = []*domain.Shift{
		{ID: 100, TenantID: 1, SpotID: 1, StartTime: day(2024, time.January, 11), EmployeeID: &amy},
		{ID: 200, TenantID: 2, SpotID: 2, StartTime: day(2024, time.January, 11), EmployeeID: &zed},
	}
	store.availabilities = []*domain.EmployeeAvailability{
		{ID: 1, TenantID: 1, EmployeeID: amy, Date: day(2024, time.January, 11), State: domain.AvailabilityDesired},
		{ID: 2, TenantID: 2, EmployeeID: zed, Date: day(2024, time.January, 11), State: domain.AvailabilityUnavailable},
	}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	spotView, err := service.GetCurrentSpotRosterView(1, 0, 0)
	require.NoError(t, err)
	require.Len(t, spotView.Spots, 1)
	assert.Equal(t, int64(1), spotView.Spots[0].ID)
	require.Len(t, spotView.Employees, 1)
	assert.Len(t, spotView.ShiftsBySpot, 1)
	assert.NotContains(t, spotView.ShiftsBySpot, int64(2))

	employeeView, err := service.GetCurrentEmployeeRosterView(1)
	require.NoError(t, err)
	require.Len(t, employeeView.Employees, 1)
	assert.NotContains(t, employeeView.ShiftsByEmployee, zed)
	assert.NotContains(t, employeeView.AvailabilitiesByEmployee, zed)

	// asking for the other tenant's entities by id is a miss, not a leak
	_, err = service.GetSpotRosterViewFor(1, day(2024, time.January, 10), day(2024, time.January, 12), []int64{2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = service.GetEmployeeRosterViewFor(1, day(2024, time.January, 10), day(2024, time.January, 12), []int64{zed})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// a merge for tenant 1 cannot touch tenant 2's shift
	require.NoError(t, service.MergeAssignments(1, []*domain.Shift{{ID: 200, EmployeeID: &amy}}))
	assert.Empty(t, store.assignments)

	// publishing tenant 1 leaves tenant 2's window alone
	_, err = service.Publish(1, 3)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.January, 10), store.states[2].FirstDraftDate)
	assert.Equal(t, int32(14), store.states[2].DraftLength)
}

func TestBuildRoster(t *testing.T) {
	store := newFakeStore(testState())
	store.cfg = &domain.TenantConfiguration{TenantID: 1, TimeZone: "UTC", RotationLength: 7}
	store.skills = []*domain.Skill{{ID: 1, TenantID: 1, Name: "Front Desk"}}
	store.spots = []*domain.Spot{{ID: 1, TenantID: 1, Name: "Counter"}}
	store.employees = []*domain.Employee{{ID: 10, TenantID: 1, Name: "Amy"}}
	store.shifts = []*domain.Shift{{ID: 100, TenantID: 1, SpotID: 1, StartTime: day(2024, time.January, 11)}}
	service := NewService(store, &fakeExpander{}, &fakeSolver{})

	snapshot, err := service.BuildRoster(1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.TenantID)
	assert.Len(t, snapshot.Skills, 1)
	assert.Len(t, snapshot.Spots, 1)
	assert.Len(t, snapshot.Employees, 1)
	assert.Len(t, snapshot.Shifts, 1)
	assert.NotNil(t, snapshot.State)
	assert.NotNil(t, snapshot.Configuration)
}
