package domain

import "time"

// Scenario is a saved calculation with the inputs that produced it.
type Scenario struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	TargetAudience string             `json:"target_audience"`
	City           string             `json:"city"`
	Plan           []PlanItem         `json:"plan"`
	Result         *CalculationResult `json:"result"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ScenarioSummary is one row of a scenario comparison.
type ScenarioSummary struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	TargetAudience string     `json:"target_audience"`
	City           string     `json:"city"`
	FinalReach     float64    `json:"final_reach"`
	GrossReach     float64    `json:"gross_reach"`
	Confidence     Confidence `json:"confidence"`
	Channels       int        `json:"channels"`
}
