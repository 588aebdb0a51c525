package model

import "time"

// MemberID uniquely identifies a member across the system
type MemberID string

// Role is a member's permission level within their organization
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// ValidRole reports whether r is a known role
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManage reports whether the role may manage org resources
// (challenges, member roles, deactivation)
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// MemberStatus is a member's activity state. Inactive members keep their
// history but cannot be used as claim evidence on challenge boards.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// Member is a person enrolled in an organization
type Member struct {
	ID          MemberID
	OrgID       OrgID
	DisplayName string
	Email       string
	Role        Role
	Status      MemberStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the member is active
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// Account holds a member's login identity.
// Stored separately so the password hash never travels with the member record.
type Account struct {
	MemberID     MemberID
	Email        string // login email (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
