package model

// Role names carried in the access token.
type Role string

const (
	RoleUser       Role = "USER"
	RoleCourtOwner Role = "COURT_OWNER"
	RoleAdmin      Role = "ADMIN"
)

// Principal is the acting identity passed explicitly into every
// scheduling operation.
type Principal struct {
	UserID uint64
	Roles  []Role
}

// SystemPrincipal acts for background processes such as the payment
// consumer and the overdue report.
var SystemPrincipal = Principal{UserID: 0, Roles: []Role{RoleAdmin}}

// HasRole reports whether p carries r.
func (p Principal) HasRole(r Role) bool {
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether p is an administrator.
func (p Principal) IsAdmin() bool { return p.HasRole(RoleAdmin) }
