package models

import "fmt"

// Role is the closed set of account roles. A phone may hold one identity per role.
type Role string

const (
	RoleWorker Role = "worker"
	RoleDoctor Role = "doctor"
)

// DefaultRole is assumed when a verify request omits the role
const DefaultRole = RoleWorker

// ParseRole converts raw input into a Role, rejecting anything outside the enum
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", &ValidationError{Field: "role", Reason: fmt.Sprintf("must be one of %s, %s", RoleWorker, RoleDoctor)}
	}
	return r, nil
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleDoctor:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
