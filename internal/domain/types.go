package domain

import "strings"

const (
	RoleUser   = "user"
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	RequestID string `json:"-"`
}

func (rc RequestContext) IsAdmin() bool {
	return strings.EqualFold(rc.Role, RoleAdmin)
}

// CanAccess reports whether rc may act on a resource owned by ownerID.
func (rc RequestContext) CanAccess(ownerID string) bool {
	if rc.IsAdmin() {
		return true
	}
	return rc.UserID != "" && rc.UserID == ownerID
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleUser, RoleDriver, RoleAdmin:
		return true
	default:
		return false
	}
}
