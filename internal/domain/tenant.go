package domain

import "time"

type Tenant struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SecretHash string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

// TenantConfiguration drives provisioning: RotationLength is the number of
// days one pass through the tenant's rotation templates covers.
type TenantConfiguration struct {
	TenantID       int64  `json:"tenantID"`
	TimeZone       string `json:"timeZone"`
	RotationLength int32  `json:"rotationLength"`
	Version        int32  `json:"-"`
}
