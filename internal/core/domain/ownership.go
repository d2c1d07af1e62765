package domain

// OwnedResource is anything whose mutation is restricted to one user.
type OwnedResource interface {
	OwnedBy() string
}

// Authorize allows p to mutate r only when p owns it. Reads and creation
// are not checked here.
func Authorize(p Principal, resource string, r OwnedResource) error {
	if p.IsAnonymous() {
		return &AccessDeniedError{Resource: resource, Reason: "authentication required"}
	}
	owner := r.OwnedBy()
	if owner == "" || owner != p.ID {
		return &AccessDeniedError{Resource: resource, Reason: "not owner"}
	}
	return nil
}

func AuthorizeBusiness(p Principal, b *Business) error {
	return Authorize(p, "business", b)
}

func AuthorizeItem(p Principal, item *Item, parent *Business) error {
	return Authorize(p, "item", OwnedItem{Item: item, Business: parent})
}

// AuthorizeUser allows a user to modify only their own account.
func AuthorizeUser(p Principal, u *User) error {
	return Authorize(p, "user", u)
}

func AuthorizeCartLine(p Principal, l *CartLine) error {
	return Authorize(p, "cart line", l)
}
