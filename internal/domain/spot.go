package domain

import "time"

// Spot is a schedulable work location. Read-only as far as the roster core is
// concerned; only the entity endpoints create them.
type Spot struct {
	ID               int64     `json:"id"`
	TenantID         int64     `json:"tenantID"`
	Name             string    `json:"name"`
	RequiredSkillIDs []int64   `json:"requiredSkillIDs"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}
