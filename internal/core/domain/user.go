package domain

import "time"

// Role is the marketplace role of a user. A user starts as a buyer and is
// promoted to seller when they open their first business.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// PromoteIfBuyer returns the role after business creation and whether a
// transition happened. Sellers are never demoted.
func (r Role) PromoteIfBuyer() (Role, bool) {
	if r == RoleBuyer {
		return RoleSeller, true
	}
	return RoleSeller, false
}

// User models an account in the marketplace.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Whatsapp     string    `json:"whatsapp,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnedBy implements OwnedResource: a user record belongs to itself.
func (u *User) OwnedBy() string {
	return u.ID
}
