package domain

// UserIdentity is the authenticated caller of a request. It is passed
// explicitly to every service method that mutates state; a nil
// *UserIdentity means the caller is anonymous.
type UserIdentity struct {
	// Subject is a stable identifier for the caller (e.g. the token owner).
	Subject string
	// Name is a display name, used in logs and event payloads.
	Name string
	// Staff is true for federation staff, who may create and edit
	// fixtures and teams.
	Staff bool
}

// RequireStaff returns ErrUnauthorized for an anonymous caller and
// ErrForbidden for an authenticated non-staff caller.
func RequireStaff(u *UserIdentity) error {
	if u == nil {
		return ErrUnauthorized
	}
	if !u.Staff {
		return ErrForbidden
	}
	return nil
}
