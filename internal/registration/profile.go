package registration

import (
	"strconv"
	"strings"
)

const (
	FieldEmail           = "email"
	FieldFullName        = "fullName"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldBusinessName    = "businessName"
	FieldAddress         = "address"
	FieldSpecialties     = "specialties"
	FieldServices        = "services"
	FieldPriceRange      = "priceRange"
	FieldAvailability    = "availability"
	FieldExperience      = "experience"
	FieldCertifications  = "certifications"
	FieldPortfolio       = "portfolio"
)

// FormState accumulates user input across every step, keyed by field name.
type FormState map[string]string

func (form FormState) clone() FormState {
	copied := make(FormState, len(form))
	for name, value := range form {
		copied[name] = value
	}
	return copied
}

type Profile struct {
	BusinessName   string   `json:"business_name"`
	Address        string   `json:"address"`
	Specialties    []string `json:"specialties"`
	Services       []string `json:"services"`
	PriceRange     string   `json:"price_range"`
	Availability   string   `json:"availability"`
	Experience     int      `json:"experience"`
	Certifications []string `json:"certifications"`
	Portfolio      string   `json:"portfolio"`
}

// BuildProfile derives the submitted profile from the accumulated form.
func BuildProfile(form FormState) Profile {
	return Profile{
		BusinessName:   form[FieldBusinessName],
		Address:        form[FieldAddress],
		Specialties:    SplitList(form, FieldSpecialties),
		Services:       SplitList(form, FieldServices),
		PriceRange:     form[FieldPriceRange],
		Availability:   form[FieldAvailability],
		Experience:     ParseExperience(form[FieldExperience]),
		Certifications: SplitList(form, FieldCertifications),
		Portfolio:      form[FieldPortfolio],
	}
}

// SplitList splits a comma separated field and trims every segment, keeping
// order and empty segments. A missing field yields nil.
func SplitList(form FormState, name string) []string {
	raw, ok := form[name]
	if !ok {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		values = append(values, strings.TrimSpace(part))
	}
	return values
}

// ExperienceDefault is the value used when the experience field is missing,
// blank or has no leading integer.
const ExperienceDefault = 0

// ParseExperience reads the leading integer of raw, with an optional sign, so
// "7 years" is 7 and "-4" is -4. Anything it cannot read yields
// ExperienceDefault instead of an error.
func ParseExperience(raw string) int {
	trimmed := strings.TrimSpace(raw)
	start := 0
	if start < len(trimmed) && (trimmed[start] == '+' || trimmed[start] == '-') {
		start++
	}
	end := start
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == start {
		return ExperienceDefault
	}

	years, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return ExperienceDefault
	}
	return years
}
