package shared

// Role values stored on user records and embedded in credentials.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Identity is the resolved, trusted representation of the requester.
// It is derived fresh per request and never cached across requests.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the identity is present and administrative.
// Callers must branch on this predicate rather than comparing roles inline.
func IsAdmin(identity *Identity) bool {
	return identity != nil && identity.Role == RoleAdmin
}
