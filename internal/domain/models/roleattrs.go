// internal/domain/models/roleattrs.go
package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// RoleAttributes is the variant half of a user profile. Exactly one
// implementation is populated per user, selected by User.Role. Profile
// documents are flat field bags, so each variant decodes only the fields
// it recognizes and leaves the rest of the document alone.
type RoleAttributes interface {
	// AttrRole reports which role this attribute set belongs to.
	AttrRole() Role
	// Fields returns the bson field names this variant owns.
	Fields() []string
	// applyDefaults fills role-appropriate zero values for fields that
	// were absent from the stored document.
	applyDefaults()
}

// InternationalStudentAttrs holds profile fields for international students.
type InternationalStudentAttrs struct {
	HomeCountry       string `bson:"home_country" json:"home_country"`
	VisaStatus        string `bson:"visa_status" json:"visa_status"`
	ArrivalDate       string `bson:"arrival_date" json:"arrival_date"`
	NeedsHousing      bool   `bson:"needs_housing" json:"needs_housing"`
	WantsCulturalHelp bool   `bson:"wants_cultural_help" json:"wants_cultural_help"`
	University        string `bson:"university" json:"university"`
	Major             string `bson:"major" json:"major"`
	YearOfStudy       int    `bson:"year_of_study" json:"year_of_study"` // 1–5+
}

func (a *InternationalStudentAttrs) AttrRole() Role { return RoleInternationalStudent }

func (a *InternationalStudentAttrs) Fields() []string {
	return []string{
		"home_country", "visa_status", "arrival_date", "needs_housing",
		"wants_cultural_help", "university", "major", "year_of_study",
	}
}

func (a *InternationalStudentAttrs) applyDefaults() {
	if a.YearOfStudy < 1 {
		a.YearOfStudy = 1
	}
}

// DomesticStudentAttrs holds profile fields for domestic students.
type DomesticStudentAttrs struct {
	University          string `bson:"university" json:"university"`
	Major               string `bson:"major" json:"major"`
	YearOfStudy         int    `bson:"year_of_study" json:"year_of_study"`
	Clubs               string `bson:"clubs" json:"clubs"`
	OffersPeerMentoring bool   `bson:"offers_peer_mentoring" json:"offers_peer_mentoring"`
	CampusBuddy         bool   `bson:"campus_buddy" json:"campus_buddy"`
	MaxMentees          int    `bson:"max_mentees" json:"max_mentees"`
	ExpertiseCategory   string `bson:"expertise_category" json:"expertise_category"`
	MentorInternational bool   `bson:"mentor_international" json:"mentor_international"`
	CulturalFamiliarity string `bson:"cultural_familiarity" json:"cultural_familiarity"`
	HostsCampusEvents   bool   `bson:"hosts_campus_events" json:"hosts_campus_events"`
	HostsVirtualEvents  bool   `bson:"hosts_virtual_events" json:"hosts_virtual_events"`
	FinancialAidStatus  string `bson:"financial_aid_status" json:"financial_aid_status"`
}

func (a *DomesticStudentAttrs) AttrRole() Role { return RoleDomesticStudent }

func (a *DomesticStudentAttrs) Fields() []string {
	return []string{
		"university", "major", "year_of_study", "clubs", "offers_peer_mentoring",
		"campus_buddy", "max_mentees", "expertise_category", "mentor_international",
		"cultural_familiarity", "hosts_campus_events", "hosts_virtual_events",
		"financial_aid_status",
	}
}

func (a *DomesticStudentAttrs) applyDefaults() {
	if a.YearOfStudy < 1 {
		a.YearOfStudy = 1
	}
	if a.MaxMentees < 1 {
		a.MaxMentees = 1
	}
}

// AlumniAttrs holds profile fields for alumni.
type AlumniAttrs struct {
	GraduationYear        int    `bson:"graduation_year" json:"graduation_year"`
	Employer              string `bson:"employer" json:"employer"`
	JobTitle              string `bson:"job_title" json:"job_title"`
	Industry              string `bson:"industry" json:"industry"`
	YearsExperience       int    `bson:"years_experience" json:"years_experience"`
	AvailableForMentoring bool   `bson:"available_for_mentoring" json:"available_for_mentoring"`
	CanPostJobs           bool   `bson:"can_post_jobs" json:"can_post_jobs"`
	MaxMentees            int    `bson:"max_mentees" json:"max_mentees"`
}

func (a *AlumniAttrs) AttrRole() Role { return RoleAlumni }

func (a *AlumniAttrs) Fields() []string {
	return []string{
		"graduation_year", "employer", "job_title", "industry",
		"years_experience", "available_for_mentoring", "can_post_jobs",
		"max_mentees",
	}
}

func (a *AlumniAttrs) applyDefaults() {
	if a.MaxMentees < 1 {
		a.MaxMentees = 1
	}
}

// ProfessionalAttrs holds profile fields for working professionals.
// Professionals are enrolled as mentors at account creation.
type ProfessionalAttrs struct {
	CompanyName       string `bson:"company_name" json:"company_name"`
	CompanyWebsite    string `bson:"company_website" json:"company_website"`
	CompanyIndustry   string `bson:"company_industry" json:"company_industry"`
	CompanySize       string `bson:"company_size" json:"company_size"`
	ProfessionalBio   string `bson:"professional_bio" json:"professional_bio"`
	OffersInternships bool   `bson:"offers_internships" json:"offers_internships"`
	HostsWebinars     bool   `bson:"hosts_webinars" json:"hosts_webinars"`
}

func (a *ProfessionalAttrs) AttrRole() Role { return RoleProfessional }

func (a *ProfessionalAttrs) Fields() []string {
	return []string{
		"company_name", "company_website", "company_industry", "company_size",
		"professional_bio", "offers_internships", "hosts_webinars",
	}
}

func (a *ProfessionalAttrs) applyDefaults() {}

// NewRoleAttributes returns the zero attribute set for the given role,
// with role-appropriate defaults applied. This is the single dispatch
// point for variant construction.
func NewRoleAttributes(role Role) RoleAttributes {
	var attrs RoleAttributes
	switch role {
	case RoleInternationalStudent:
		attrs = &InternationalStudentAttrs{}
	case RoleDomesticStudent:
		attrs = &DomesticStudentAttrs{}
	case RoleAlumni:
		attrs = &AlumniAttrs{}
	case RoleProfessional:
		attrs = &ProfessionalAttrs{}
	default:
		return nil
	}
	attrs.applyDefaults()
	return attrs
}

// DecodeRoleAttributes reads the variant fields for the given role out of a
// raw profile document. Fields absent from the document default to their
// role-appropriate zero values; absence is the normal "not yet filled in"
// state and is never an error.
func DecodeRoleAttributes(role Role, raw bson.Raw) (RoleAttributes, error) {
	attrs := NewRoleAttributes(role)
	if attrs == nil {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if len(raw) > 0 {
		if err := bson.Unmarshal(raw, attrs); err != nil {
			return nil, err
		}
	}
	attrs.applyDefaults()
	return attrs, nil
}

// RoleFieldSet returns the recognized role-specific field names for a role
// as a lookup set. Callers use it to drop fields that do not apply to the
// stored role before composing a merge write.
func RoleFieldSet(role Role) map[string]struct{} {
	attrs := NewRoleAttributes(role)
	if attrs == nil {
		return nil
	}
	fields := attrs.Fields()
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
