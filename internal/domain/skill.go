package domain

import "time"

type Skill struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenantID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
