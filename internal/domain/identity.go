package domain

import "time"

type Role string

const (
	RoleVendor           Role = "vendor"
	RoleVendorManager    Role = "vendor_manager"
	RoleAdmin            Role = "admin"
	RoleWarehouseManager Role = "warehouse_manager"
)

// ReviewerRoles are the roles allowed to decide approval transitions.
var ReviewerRoles = []Role{RoleVendorManager, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleVendor, RoleVendorManager, RoleAdmin, RoleWarehouseManager:
		return true
	}
	return false
}

// Identity is one role-scoped account. The same email may exist under
// different roles; (email, role) is unique. Role never changes after
// creation, and deactivation is a flag, not a row removal.
type Identity struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	VendorID     *int64     `json:"vendor_id,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Verified     bool       `json:"verified"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Actor is the identity context the authorization gate attaches to a
// request after token verification. VendorID is 0 for non-vendor roles.
type Actor struct {
	UserID   int64
	VendorID int64
	Email    string
	Role     Role
}

func (a Actor) IsReviewer() bool {
	return a.Role == RoleVendorManager || a.Role == RoleAdmin
}
