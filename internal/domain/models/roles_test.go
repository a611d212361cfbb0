// internal/domain/models/roles_test.go
package models

import "testing"

func TestParseRole(t *testing.T) {
	for _, role := range Roles {
		got, err := ParseRole(string(role))
		if err != nil {
			t.Errorf("ParseRole(%q) failed: %v", role, err)
		}
		if got != role {
			t.Errorf("ParseRole(%q) = %q", role, got)
		}
	}

	for _, bad := range []string{"", "student", "Professional", "ALUMNI", "international-student"} {
		if _, err := ParseRole(bad); err == nil {
			t.Errorf("ParseRole(%q) should fail", bad)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles {
		if !role.Valid() {
			t.Errorf("role %q should be valid", role)
		}
	}
	if Role("faculty").Valid() {
		t.Error("unknown role reported valid")
	}
}

func TestRoleLabel(t *testing.T) {
	cases := map[Role]string{
		RoleInternationalStudent: "International Student",
		RoleDomesticStudent:      "Domestic Student",
		RoleAlumni:               "Alumni",
		RoleProfessional:         "Professional",
		Role("weird"):            "weird",
	}
	for role, want := range cases {
		if got := role.Label(); got != want {
			t.Errorf("Label(%q) = %q, want %q", role, got, want)
		}
	}
}
