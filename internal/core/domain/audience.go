package domain

// Gender is the gender marker of an audience.
type Gender string

// Available genders.
const (
	GenderAll   Gender = "All"
	GenderMen   Gender = "M"
	GenderWomen Gender = "W"
)

// Code returns the categorical distance code: All=0, M=1, W=2.
// Unknown values map to 0.
func (g Gender) Code() float64 {
	switch g {
	case GenderMen:
		return 1
	case GenderWomen:
		return 2
	default:
		return 0
	}
}

// IncomeGroup is the income marker of an audience.
type IncomeGroup string

// Available income groups.
const (
	IncomeAll IncomeGroup = "All"
	IncomeBC  IncomeGroup = "BC"
	IncomeA   IncomeGroup = "A"
)

// Code returns the categorical distance code: All=0, BC=1, A=2.
// Unknown values map to 0.
func (i IncomeGroup) Code() float64 {
	switch i {
	case IncomeBC:
		return 1
	case IncomeA:
		return 2
	default:
		return 0
	}
}

// AudienceProfile is a structured target audience.
// AgeMin is never greater than AgeMax.
type AudienceProfile struct {
	Gender      Gender      `json:"gender"`
	IncomeGroup IncomeGroup `json:"income_group"`
	AgeMin      int         `json:"age_min"`
	AgeMax      int         `json:"age_max"`
}

// AgeMidpoint returns the middle of the age range.
func (a AudienceProfile) AgeMidpoint() float64 {
	return float64(a.AgeMin+a.AgeMax) / 2
}

// Confidence is a coarse reliability label for an estimate.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// String returns the string representation.
func (c Confidence) String() string {
	return string(c)
}
