package auth

import "fmt"

// Role is the closed set of actor roles. Branching on anything outside this
// set is a bug, so parsing rejects unknown values at the boundary.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string coming off the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

func (r Role) String() string { return string(r) }
