package domain

// Principal is the authenticated actor of a single request. It is rebuilt
// from the bearer token on every request and never persisted. The zero
// value is the anonymous principal.
type Principal struct {
	ID   string
	Role Role
}

// Anonymous is the principal of a request that carried no usable token.
var Anonymous = Principal{}

// IsAnonymous reports whether p carries no identity.
func (p Principal) IsAnonymous() bool {
	return p.ID == ""
}

// PrincipalOf exposes a user record as the principal acting for it.
func PrincipalOf(u *User) Principal {
	return Principal{ID: u.ID, Role: u.Role}
}
