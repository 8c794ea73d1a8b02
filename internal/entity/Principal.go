package entity

type Role string

const (
	RolePresident Role = "PRESIDENT"
	RoleSecretary Role = "SECRETARY"
	RoleTreasurer Role = "TREASURER"
	RoleMember    Role = "MEMBER"
)

// IsAdmin reports whether the role belongs to any administrative tier.
func (r Role) IsAdmin() bool {
	return r == RolePresident || r == RoleSecretary || r == RoleTreasurer
}

// Principal is the authenticated caller as resolved by the principal provider.
type Principal struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Role           Role   `json:"role"`
	IsActive       bool   `json:"isActive"`
}

type User struct {
	ID             string
	OrganizationID string
	Name           string
	Email          string
	Role           Role
	IsActive       bool
}
