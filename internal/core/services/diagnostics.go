package services

import (
	"sort"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// BuildDuplicationMatrix returns, for each row channel a and column channel b,
// overlap(a, b) / reach(a): the share of a's audience also reached by b.
func BuildDuplicationMatrix(plan []domain.PlanItem, overlaps map[domain.PairKey]float64) domain.DuplicationMatrix {
	matrix := domain.DuplicationMatrix{
		Channels: make([]string, len(plan)),
		Cells:    make([][]float64, len(plan)),
	}

	for i, a := range plan {
		matrix.Channels[i] = a.Name
		row := make([]float64, len(plan))
		for j, b := range plan {
			if a.Name == b.Name {
				row[j] = 1
				continue
			}
			if a.Reach > 0 {
				row[j] = overlaps[domain.NewPairKey(a.Name, b.Name)] / a.Reach
			}
		}
		matrix.Cells[i] = row
	}

	return matrix
}

// AnalyzeExclusions recomputes net reach without each channel in turn and
// reports the loss against fullReach, largest loss first.
func AnalyzeExclusions(
	plan []domain.PlanItem, overlaps map[domain.PairKey]float64, fullReach float64,
) []domain.ExclusionResult {
	results := make([]domain.ExclusionResult, 0, len(plan))

	for _, excluded := range plan {
		sub := make([]domain.PlanItem, 0, len(plan)-1)
		for _, item := range plan {
			if item.Name != excluded.Name {
				sub = append(sub, item)
			}
		}

		without := 0.0
		if len(sub) > 0 {
			without = FinalReach(BuildIncremental(sub, overlaps))
		}
		results = append(results, domain.ExclusionResult{
			Name: excluded.Name,
			Loss: fullReach - without,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Loss > results[j].Loss
	})
	return results
}

// GrossReach sums individual reaches without removing overlap.
func GrossReach(plan []domain.PlanItem) float64 {
	total := 0.0
	for _, item := range plan {
		total += item.Reach
	}
	return total
}
