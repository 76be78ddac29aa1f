package auth

// Role is the access level of a visitor. Its string form is the casbin
// subject the role's policies are stored under.
type Role int

const (
	RoleNone Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// ParseRole is the inverse of Role.String. Unknown names map to RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "user":
		return RoleUser
	case "admin":
		return RoleAdmin
	default:
		return RoleNone
	}
}

// Identity is who is performing an operation. It is passed explicitly to
// every service call that needs authorization.
type Identity struct {
	Role    Role   `json:"-"`
	Acronym string `json:"acronym,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Anonymous returns the identity of a visitor who has not logged in.
func Anonymous() Identity {
	return Identity{Role: RoleNone}
}

// IsAuthenticated reports whether the identity belongs to a logged in user.
func (i Identity) IsAuthenticated() bool {
	return i.Role != RoleNone && i.Acronym != ""
}

// IsAdmin reports whether the identity has administrator rights.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin && i.Acronym != ""
}

// CanActAs reports whether the identity may change records owned by acronym:
// administrators may change anything, users only their own records.
func (i Identity) CanActAs(acronym string) bool {
	if i.IsAdmin() {
		return true
	}
	return i.IsAuthenticated() && i.Acronym == acronym
}
