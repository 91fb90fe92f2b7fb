package domain

// PlanItem is one media channel of a plan.
// Reach is a percentage (0-100) on input and a fraction after normalisation.
type PlanItem struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Reach float64 `json:"reach" yaml:"reach" toml:"reach"`
}

// CalculationRequest carries the inputs of one net reach calculation.
type CalculationRequest struct {
	// Plan lists channels with reach percentages (0-100).
	Plan []PlanItem

	// TargetAudience is free text like "All 18-44 BC".
	TargetAudience string

	// City is accepted and echoed in the header; it does not alter the estimate.
	City string

	// ReferenceData overrides the configured reference table when non-nil.
	ReferenceData *ReferenceData
}

// PlanFile is a media plan read from disk. Audience and city are optional.
type PlanFile struct {
	TargetAudience string     `json:"target_audience" yaml:"target_audience" toml:"target_audience"`
	City           string     `json:"city" yaml:"city" toml:"city"`
	Plan           []PlanItem `json:"plan" yaml:"plan" toml:"plan"`
}
