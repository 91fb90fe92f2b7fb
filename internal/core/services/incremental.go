package services

import (
	"math"
	"sort"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// BuildIncremental accumulates net reach greedily.
//
// Channels are added in descending reach order (stable on ties). Each new
// channel adds its reach minus its largest overlap with any channel already
// added; when no overlap is known the independence estimate
// previous * reach is used. Cumulative reach is capped at 1 and never
// decreases.
func BuildIncremental(plan []domain.PlanItem, overlaps map[domain.PairKey]float64) []domain.IncrementalStep {
	sorted := make([]domain.PlanItem, len(plan))
	copy(sorted, plan)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Reach > sorted[j].Reach
	})

	steps := make([]domain.IncrementalStep, 0, len(sorted))
	combined := make([]string, 0, len(sorted))
	current := 0.0

	for _, item := range sorted {
		last := current

		if len(combined) == 0 {
			current = item.Reach
		} else {
			maxOverlap := 0.0
			for _, name := range combined {
				if v, ok := overlaps[domain.NewPairKey(item.Name, name)]; ok && v > maxOverlap {
					maxOverlap = v
				}
			}
			if maxOverlap == 0 {
				maxOverlap = last * item.Reach
			}
			current = last + item.Reach - maxOverlap
		}
		combined = append(combined, item.Name)

		current = math.Min(current, 1.0)
		if current < last {
			current = last
		}

		step := domain.IncrementalStep{
			Name:            item.Name,
			Reach:           item.Reach,
			CumulativeReach: current,
			Increment:       current - last,
		}
		if item.Reach > 0 {
			step.Exclusivity = step.Increment / item.Reach
		}
		steps = append(steps, step)
	}

	return steps
}

// FinalReach returns the cumulative reach of the last step, or 0.
func FinalReach(steps []domain.IncrementalStep) float64 {
	if len(steps) == 0 {
		return 0
	}
	return steps[len(steps)-1].CumulativeReach
}
