package models

// Principal is the authenticated caller as resolved from a bearer token.
type Principal struct {
	ID       string
	Username string
	Role     Role
}

// HasAnyRole reports whether the principal holds one of roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
