package domain

import (
	"fmt"
	"time"
)

// Score is the solver's verdict on a roster: Hard counts broken hard
// constraints (a feasible roster has zero), Soft accumulates preference
// penalties. Higher is better on both levels, hard before soft.
type Score struct {
	Hard int64 `json:"hard"`
	Soft int64 `json:"soft"`
}

func (s Score) Feasible() bool {
	return s.Hard >= 0
}

func (s Score) Less(other Score) bool {
	if s.Hard != other.Hard {
		return s.Hard < other.Hard
	}
	return s.Soft < other.Soft
}

func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dsoft", s.Hard, s.Soft)
}

// Roster is the full snapshot of one tenant's scheduling data. It is built on
// demand and handed to (or received from) the solver; it is never persisted
// as a whole; only shift assignments are merged back.
type Roster struct {
	TenantID       int64                   `json:"tenantID"`
	Skills         []*Skill                `json:"skills"`
	Spots          []*Spot                 `json:"spots"`
	Employees      []*Employee             `json:"employees"`
	Availabilities []*EmployeeAvailability `json:"availabilities"`
	Configuration  *TenantConfiguration    `json:"configuration"`
	State          *RosterState            `json:"state"`
	Shifts         []*Shift                `json:"shifts"`
	Score          *Score                  `json:"score"`
}

// SpotRosterView groups a date range's shifts by spot. Spots without shifts
// still appear in Spots but have no entry in ShiftsBySpot.
type SpotRosterView struct {
	TenantID     int64                 `json:"tenantID"`
	StartDate    time.Time             `json:"startDate"`
	EndDate      time.Time             `json:"endDate"`
	Spots        []*Spot               `json:"spots"`
	Employees    []*Employee           `json:"employees"`
	ShiftsBySpot map[int64][]ShiftView `json:"shiftsBySpot"`
	Score        *Score                `json:"score"`
	State        *RosterState          `json:"state"`
}

// EmployeeRosterView is the employee-axis counterpart, with the employees'
// availability records grouped alongside their shifts. Unassigned shifts do
// not appear in ShiftsByEmployee.
type EmployeeRosterView struct {
	TenantID                 int64                             `json:"tenantID"`
	StartDate                time.Time                         `json:"startDate"`
	EndDate                  time.Time                         `json:"endDate"`
	Spots                    []*Spot                           `json:"spots"`
	Employees                []*Employee                       `json:"employees"`
	ShiftsByEmployee         map[int64][]ShiftView             `json:"shiftsByEmployee"`
	AvailabilitiesByEmployee map[int64][]*EmployeeAvailability `json:"availabilitiesByEmployee"`
	Score                    *Score                            `json:"score"`
	State                    *RosterState                      `json:"state"`
}
