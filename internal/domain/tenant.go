package domain

import "time"

// DefaultTenantID is used by single-tenant deployments that never
// register tenants explicitly.
const DefaultTenantID int64 = 1

// Tenant is one site/installation in a multi-tenant deployment.
// Address is the human-readable site address shown in statistics.
type Tenant struct {
	ID        int64
	Address   string
	CreatedAt time.Time
}

// ValidateTenant validates a Tenant instance
func ValidateTenant(t *Tenant) error {
	if t == nil {
		return NewDomainError(ErrCodeValidation, "tenant cannot be nil")
	}
	if t.Address == "" {
		return NewDomainError(ErrCodeValidation, "tenant address is required")
	}
	return nil
}
