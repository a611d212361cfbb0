// internal/app/system/privileges/privileges_test.go
package privileges

import (
	"reflect"
	"testing"

	"github.com/campusbridge/campusbridge/internal/domain/models"
)

func TestResolveCoversEveryRole(t *testing.T) {
	for _, role := range models.Roles {
		set, err := Resolve(role)
		if err != nil {
			t.Errorf("Resolve(%q) returned error: %v", role, err)
			continue
		}
		if len(set) == 0 {
			t.Errorf("Resolve(%q) returned an empty capability set", role)
		}
	}
}

func TestResolveUnknownRole(t *testing.T) {
	if _, err := Resolve(models.Role("superuser")); err == nil {
		t.Fatal("Resolve accepted an unknown role")
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	first, err := Resolve(models.RoleDomesticStudent)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := Resolve(models.RoleDomesticStudent)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(first.List(), second.List()) {
		t.Errorf("Resolve is not deterministic: %v vs %v", first.List(), second.List())
	}
}

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role  models.Role
		has   []Capability
		lacks []Capability
	}{
		{
			role:  models.RoleInternationalStudent,
			has:   []Capability{RequestMentorship, JoinBuddyProgram, AccessCulturalSupport},
			lacks: []Capability{OfferMentorship, PostJobs, OfferInternships},
		},
		{
			role:  models.RoleDomesticStudent,
			has:   []Capability{RequestMentorship, OfferPeerMentorship, HostCampusEvents},
			lacks: []Capability{OfferPaidMentorship, BrowseAlumniDirectory},
		},
		{
			role:  models.RoleAlumni,
			has:   []Capability{OfferMentorship, PostJobs, BrowseAlumniDirectory},
			lacks: []Capability{RequestMentorship, JoinBuddyProgram},
		},
		{
			role:  models.RoleProfessional,
			has:   []Capability{OfferMentorship, OfferPaidMentorship, OfferInternships, HostWebinars},
			lacks: []Capability{RequestMentorship, AccessCulturalSupport},
		},
	}

	for _, tc := range cases {
		set, err := Resolve(tc.role)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", tc.role, err)
		}
		for _, c := range tc.has {
			if !set.Has(c) {
				t.Errorf("role %q should have capability %q", tc.role, c)
			}
		}
		for _, c := range tc.lacks {
			if set.Has(c) {
				t.Errorf("role %q should not have capability %q", tc.role, c)
			}
		}
	}
}

func TestListIsSorted(t *testing.T) {
	set, err := Resolve(models.RoleProfessional)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	list := set.List()
	for i := 1; i < len(list); i++ {
		if list[i-1] >= list[i] {
			t.Fatalf("List not in sorted order: %v", list)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(OfferMentorship); got != "Offer mentorship" {
		t.Errorf("Label(OfferMentorship) = %q", got)
	}
	if got := Label(Capability("mystery")); got != "mystery" {
		t.Errorf("Label should fall back to the raw token, got %q", got)
	}
}
