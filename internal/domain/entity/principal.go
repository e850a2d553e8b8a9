package entity

// Principal is the identity proven by a valid access token for the current request.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
}

// IsAdmin reports whether the principal holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the principal may view or delete the account ownerID.
// Accounts are reachable by their owner and by administrators.
func (p Principal) CanAccess(ownerID int64) bool {
	return p.UserID == ownerID || p.IsAdmin()
}

// Owns reports whether the principal owns a resource belonging to ownerID.
// Administrators get no bypass.
func (p Principal) Owns(ownerID int64) bool {
	return p.UserID == ownerID
}
