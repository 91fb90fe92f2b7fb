package domain

// IncrementalStep is one channel added during the greedy build-up.
type IncrementalStep struct {
	Name            string  `json:"name"`
	Reach           float64 `json:"reach"`
	CumulativeReach float64 `json:"cumulative_reach"`
	Increment       float64 `json:"increment"`
	Exclusivity     float64 `json:"exclusivity"`
}

// KFactor is the predicted overlap correction for a channel pair.
type KFactor struct {
	Pair  PairKey `json:"pair"`
	Value float64 `json:"value"`
}

// DuplicationMatrix holds the share of each row channel's audience
// already reached by each column channel. Cells are fractions; the
// diagonal is 1. The matrix is not symmetric.
type DuplicationMatrix struct {
	Channels []string    `json:"channels"`
	Cells    [][]float64 `json:"cells"`
}

// Value returns the cell for row channel a and column channel b.
func (m DuplicationMatrix) Value(a, b string) (float64, bool) {
	row, col := -1, -1
	for i, name := range m.Channels {
		if name == a {
			row = i
		}
		if name == b {
			col = i
		}
	}
	if row < 0 || col < 0 {
		return 0, false
	}
	return m.Cells[row][col], true
}

// ExclusionResult is the net reach lost when one channel is removed.
type ExclusionResult struct {
	Name string  `json:"name"`
	Loss float64 `json:"loss"`
}

// CalculationResult is the full output of one calculation.
// It holds no references into the reference data it was computed from.
type CalculationResult struct {
	Header            string            `json:"header"`
	FinalReach        float64           `json:"final_reach"`
	GrossReach        float64           `json:"gross_reach"`
	Confidence        Confidence        `json:"confidence"`
	MinDistance       float64           `json:"min_distance"`
	DataSourceMsg     string            `json:"data_source_msg"`
	SourceAudiences   []string          `json:"source_audiences"`
	Audience          AudienceProfile   `json:"audience"`
	Plan              []PlanItem        `json:"plan"`
	IncrementalData   []IncrementalStep `json:"incremental_data"`
	KFactors          []KFactor         `json:"k_factors"`
	DuplicationMatrix DuplicationMatrix `json:"duplication_matrix"`
	ExclusionAnalysis []ExclusionResult `json:"exclusion_analysis"`
}
