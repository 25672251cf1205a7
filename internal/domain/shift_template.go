package domain

import "time"

// ShiftTemplate describes one recurring shift inside a tenant's rotation.
// RotationDays holds zero-based day offsets within the rotation (whose length
// comes from the tenant configuration); StartTime/EndTime are times of day in
// "15:04" form. A template may pin a rotation employee, in which case shifts
// expanded from it start out assigned to that employee.
type ShiftTemplate struct {
	ID                 int64     `json:"id"`
	TenantID           int64     `json:"tenantID"`
	SpotID             int64     `json:"spotID"`
	RotationDays       []int32   `json:"rotationDays"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	RotationEmployeeID *int64    `json:"rotationEmployeeID"`
	CreatedAt          time.Time `json:"createdAt"`
	Version            int32     `json:"-"`
}
