package domain

import "time"

// Shift is the central schedulable unit. EmployeeID is nil while the shift is
// unassigned; the assignment merger is the only writer of that field.
type Shift struct {
	ID         int64     `json:"id"`
	TenantID   int64     `json:"tenantID"`
	SpotID     int64     `json:"spotID"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	EmployeeID *int64    `json:"employeeID"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

// ShiftView is the detached projection used inside roster views.
type ShiftView struct {
	ID         int64     `json:"id"`
	SpotID     int64     `json:"spotID"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	EmployeeID *int64    `json:"employeeID"`
}

func NewShiftView(shift *Shift) ShiftView {
	return ShiftView{
		ID:         shift.ID,
		SpotID:     shift.SpotID,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		EmployeeID: shift.EmployeeID,
	}
}
