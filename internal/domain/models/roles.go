// internal/domain/models/roles.go
package models

import "fmt"

// Role is one of the four fixed user categories. A user's role is chosen
// once at signup and never changes afterward; there is deliberately no
// role-change operation anywhere in the codebase.
type Role string

const (
	RoleInternationalStudent Role = "international_student"
	RoleDomesticStudent      Role = "domestic_student"
	RoleAlumni               Role = "alumni"
	RoleProfessional         Role = "professional"
)

// Roles lists every defined role. Keep in sync with the privileges table;
// privileges.Resolve fails loudly for anything not listed here.
var Roles = []Role{
	RoleInternationalStudent,
	RoleDomesticStudent,
	RoleAlumni,
	RoleProfessional,
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleInternationalStudent, RoleDomesticStudent, RoleAlumni, RoleProfessional:
		return true
	}
	return false
}

// Label returns the human-readable name for the role.
func (r Role) Label() string {
	switch r {
	case RoleInternationalStudent:
		return "International Student"
	case RoleDomesticStudent:
		return "Domestic Student"
	case RoleAlumni:
		return "Alumni"
	case RoleProfessional:
		return "Professional"
	default:
		return string(r)
	}
}

// ParseRole converts a wire/form value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
