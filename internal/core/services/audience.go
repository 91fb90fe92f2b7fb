package services

import (
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ageSpan normalises age midpoint differences (64 - 18 years).
const ageSpan = 46.0

// Confidence thresholds on the nearest reference distance.
const (
	highConfidenceDistance   = 0.25
	mediumConfidenceDistance = 0.75
)

// AudienceMatch is the outcome of nearest-neighbour matching.
type AudienceMatch struct {
	Primary           *domain.ReferenceRow
	PrimaryDistance   float64
	Secondary         *domain.ReferenceRow
	SecondaryDistance float64
	Confidence        domain.Confidence
}

// SourceAudiences returns the names of the matched rows, primary first.
func (m *AudienceMatch) SourceAudiences() []string {
	names := []string{m.Primary.AudienceName}
	if m.Secondary != nil {
		names = append(names, m.Secondary.AudienceName)
	}
	return names
}

// ParseAudience parses free text like "All 18-44 BC" into a profile.
//
// Matching is case-insensitive. The first word selects the gender
// (m/м men, w/ж women, anything else all). "bc" anywhere selects the BC
// income group, otherwise " a" or "cde" selects A. The first word with a
// hyphen is the age range and must hold two integers.
func ParseAudience(text string) (domain.AudienceProfile, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	parts := strings.Fields(lower)

	profile := domain.AudienceProfile{
		Gender:      domain.GenderAll,
		IncomeGroup: domain.IncomeAll,
	}

	if len(parts) > 0 {
		switch parts[0] {
		case "m", "м":
			profile.Gender = domain.GenderMen
		case "w", "ж":
			profile.Gender = domain.GenderWomen
		}
	}

	switch {
	case strings.Contains(lower, "bc"):
		profile.IncomeGroup = domain.IncomeBC
	case strings.Contains(lower, " a"), strings.Contains(lower, "cde"):
		profile.IncomeGroup = domain.IncomeA
	}

	var ageToken string
	for _, p := range parts {
		if strings.Contains(p, "-") {
			ageToken = p
			break
		}
	}

	bounds := strings.Split(ageToken, "-")
	if ageToken == "" || len(bounds) != 2 {
		return domain.AudienceProfile{}, invalidAudience(text)
	}
	minAge, okMin := parseLeadingInt(bounds[0])
	maxAge, okMax := parseLeadingInt(bounds[1])
	if !okMin || !okMax || minAge > maxAge {
		return domain.AudienceProfile{}, invalidAudience(text)
	}
	profile.AgeMin = minAge
	profile.AgeMax = maxAge

	return profile, nil
}

func invalidAudience(text string) error {
	return domain.NewCalcError(domain.CodeInvalidAudienceFormat, domain.ErrInvalidAudienceFormat,
		"invalid age range in target audience %q: expected format like 'All 18-44'", text)
}

// parseLeadingInt reads an optional sign and the digits that follow it.
// Trailing characters are ignored, so "44bc" reads as 44.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	return sign * n, true
}

// AudienceDistance is the Euclidean distance between a user profile and a
// reference row over age midpoint, gender and income. The income axis is
// ignored when the user asked for all income groups.
func AudienceDistance(user domain.AudienceProfile, row *domain.ReferenceRow) float64 {
	ref := row.Profile()

	age := (user.AgeMidpoint() - ref.AgeMidpoint()) / ageSpan
	gender := user.Gender.Code() - ref.Gender.Code()

	income := 0.0
	if user.IncomeGroup != domain.IncomeAll {
		income = user.IncomeGroup.Code() - ref.IncomeGroup.Code()
	}

	return math.Sqrt(age*age + gender*gender + income*income)
}

// ClassifyConfidence maps the nearest distance to a confidence tier.
func ClassifyConfidence(distance float64) domain.Confidence {
	switch {
	case distance < highConfidenceDistance:
		return domain.ConfidenceHigh
	case distance < mediumConfidenceDistance:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// MatchAudience selects the nearest and second-nearest reference rows.
// Ties keep table order.
func MatchAudience(user domain.AudienceProfile, rows []domain.ReferenceRow) (*AudienceMatch, error) {
	if len(rows) == 0 {
		return nil, domain.NewCalcError(domain.CodeNoReferenceData, domain.ErrNoReferenceData,
			"no matching audience found: reference data has no rows")
	}

	order := make([]int, len(rows))
	distances := make([]float64, len(rows))
	for i := range rows {
		order[i] = i
		distances[i] = AudienceDistance(user, &rows[i])
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	best := order[0]
	match := &AudienceMatch{
		Primary:         &rows[best],
		PrimaryDistance: distances[best],
		Confidence:      ClassifyConfidence(distances[best]),
	}
	if len(order) > 1 {
		second := order[1]
		match.Secondary = &rows[second]
		match.SecondaryDistance = distances[second]
	}

	return match, nil
}
