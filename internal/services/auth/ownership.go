package auth

// Owned is implemented by every resource whose mutation is restricted to its
// creator.
type Owned interface {
	OwnerID() int64
}

// IsOwner reports whether identity created resource. Admins get no exemption.
func IsOwner(identity Identity, resource Owned) bool {
	if resource == nil || identity.UserID <= 0 {
		return false
	}
	return identity.UserID == resource.OwnerID()
}
