package models

// Identity roles as issued by the auth collaborator.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// AuthIdentity is what the auth collaborator's token resolves to. Core
// services consume only this; none of them implement authentication.
type AuthIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// IsAdmin reports whether the identity carries the admin role.
func (a *AuthIdentity) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
