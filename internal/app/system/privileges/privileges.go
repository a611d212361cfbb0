// Package privileges is the static role→capability table and its resolver.
//
// Capabilities are opaque permission tokens. The resolver does no
// enforcement of its own — it only answers "what may this role see/do".
// Every gate in the application (which profile sections apply, which
// actions are exposed) must consult Resolve rather than re-deriving role
// logic from scratch.
//
// The table is checked in and versioned with the code. Adding a new role
// requires an entry here: Resolve fails loudly for an unrecognized role
// instead of silently returning an empty set, which would silently strip
// every capability from that role.
package privileges

import (
	"fmt"
	"sort"

	"github.com/campusbridge/campusbridge/internal/domain/models"
)

// Capability is an opaque permission token associated with a role.
type Capability string

const (
	RequestMentorship     Capability = "requestMentorship"
	OfferMentorship       Capability = "offerMentorship"
	OfferPaidMentorship   Capability = "offerPaidMentorship"
	OfferPeerMentorship   Capability = "offerPeerMentorship"
	JoinBuddyProgram      Capability = "joinBuddyProgram"
	AccessCulturalSupport Capability = "accessCulturalSupport"
	PostJobs              Capability = "postJobs"
	HostCampusEvents      Capability = "hostCampusEvents"
	HostWebinars          Capability = "hostWebinars"
	OfferInternships      Capability = "offerInternships"
	BrowseAlumniDirectory Capability = "browseAlumniDirectory"
)

// capabilityLabels maps tokens to the labels shown in the UI.
var capabilityLabels = map[Capability]string{
	RequestMentorship:     "Request mentorship",
	OfferMentorship:       "Offer mentorship",
	OfferPaidMentorship:   "Offer paid mentorship",
	OfferPeerMentorship:   "Offer peer mentorship",
	JoinBuddyProgram:      "Join the campus buddy program",
	AccessCulturalSupport: "Access cultural adjustment support",
	PostJobs:              "Post job openings",
	HostCampusEvents:      "Host campus events",
	HostWebinars:          "Host webinars",
	OfferInternships:      "Offer internships",
	BrowseAlumniDirectory: "Browse the alumni directory",
}

// table is the versioned privilege table. Every defined role has a
// non-empty, fixed capability set.
var table = map[models.Role][]Capability{
	models.RoleInternationalStudent: {
		RequestMentorship,
		JoinBuddyProgram,
		AccessCulturalSupport,
	},
	models.RoleDomesticStudent: {
		RequestMentorship,
		OfferPeerMentorship,
		JoinBuddyProgram,
		HostCampusEvents,
	},
	models.RoleAlumni: {
		OfferMentorship,
		PostJobs,
		BrowseAlumniDirectory,
	},
	models.RoleProfessional: {
		OfferMentorship,
		OfferPaidMentorship,
		OfferInternships,
		PostJobs,
		HostWebinars,
	},
}

// Set is the resolved capability set for a role.
type Set map[Capability]struct{}

// Has reports whether the set contains the capability.
func (s Set) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities in stable (sorted) order.
func (s Set) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve returns the capability set for a role. It is a pure, total
// function over the defined roles and errors for anything else.
func Resolve(role models.Role) (Set, error) {
	caps, ok := table[role]
	if !ok {
		return nil, fmt.Errorf("privileges: no table entry for role %q", role)
	}
	set := make(Set, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set, nil
}

// Label returns the human-readable label for a capability, falling back to
// the raw token for anything unknown.
func Label(c Capability) string {
	if l, ok := capabilityLabels[c]; ok {
		return l
	}
	return string(c)
}
