package domain

import "time"

type Employee struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenantID"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	SkillIDs  []int64   `json:"skillIDs"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

type AvailabilityState string

const (
	AvailabilityUnavailable AvailabilityState = "UNAVAILABLE"
	AvailabilityUndesired   AvailabilityState = "UNDESIRED"
	AvailabilityDesired     AvailabilityState = "DESIRED"
)

// EmployeeAvailability is one employee's stated preference for one calendar
// day. Date carries a date only (UTC midnight).
type EmployeeAvailability struct {
	ID         int64             `json:"id"`
	TenantID   int64             `json:"tenantID"`
	EmployeeID int64             `json:"employeeID"`
	Date       time.Time         `json:"date"`
	State      AvailabilityState `json:"state"`
	CreatedAt  time.Time         `json:"createdAt"`
	Version    int32             `json:"-"`
}
