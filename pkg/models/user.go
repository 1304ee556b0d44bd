// Package models defines the domain types shared across the WorkSphere
// assistant: user/task/message/file/approval rows read from the relational
// store, the assistant request shape, and the response envelope.
package models

// Role represents a user's organizational role.
type Role string

const (
	RoleCEO      Role = "ceo"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// ManagesTeam reports whether the role gets team-level aggregates in the
// daily summary.
func (r Role) ManagesTeam() bool {
	return r == RoleCEO || r == RoleManager
}

// User is a WorkSphere identity. The assistant only ever reads users; all
// writes happen elsewhere.
type User struct {
	ID             string
	Email          string
	FullName       string
	OrganizationID string
	DepartmentID   string
	Role           Role
}
