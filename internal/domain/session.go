package domain

import "time"

// Session roles. Staff sessions may use the search box and log
// endpoint; manager sessions additionally reach settings and
// statistics.
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
)

// Session is an authenticated staff session. The raw token is never
// stored; only its SHA-256 hash.
type Session struct {
	ID        string
	TenantID  int64
	UserName  string
	Role      string
	TokenHash string
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsManager reports whether the session carries the manager role.
func (s *Session) IsManager() bool {
	return s.Role == RoleManager
}

// ValidateSession validates a Session instance
func ValidateSession(s *Session) error {
	if s == nil {
		return NewDomainError(ErrCodeValidation, "session cannot be nil")
	}
	if s.ID == "" {
		return NewDomainError(ErrCodeValidation, "session ID is required")
	}
	if s.TenantID <= 0 {
		return NewDomainError(ErrCodeValidation, "session tenant ID is required")
	}
	if s.UserName == "" {
		return NewDomainError(ErrCodeValidation, "session user name is required")
	}
	if s.Role != RoleStaff && s.Role != RoleManager {
		return ErrInvalidRole
	}
	if s.TokenHash == "" {
		return NewDomainError(ErrCodeValidation, "session token hash is required")
	}
	return nil
}
