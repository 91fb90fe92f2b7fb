package services

import (
	"math"
	"sort"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// independenceK is the K-factor used when a pair has no usable reach data.
const independenceK = 1.0

// PredictKFactors computes a K-factor for every pair of the channel set.
//
// K for one row is co-reach / (reach(a) * reach(b)), or 1.0 when the
// denominator is zero. With a secondary match the two are blended with
// weight 1 - d1/(d1+d2) on the primary (0.5 when both distances are zero).
func PredictKFactors(channels []string, match *AudienceMatch) map[domain.PairKey]float64 {
	kFactors := make(map[domain.PairKey]float64, len(channels)*(len(channels)-1)/2)

	w1 := 1.0
	if match.Secondary != nil {
		total := match.PrimaryDistance + match.SecondaryDistance
		if total > 0 {
			w1 = 1 - match.PrimaryDistance/total
		} else {
			w1 = 0.5
		}
	}

	for i := 0; i < len(channels); i++ {
		for j := i + 1; j < len(channels); j++ {
			a, b := channels[i], channels[j]
			pair := domain.NewPairKey(a, b)

			k := rowKFactor(match.Primary, a, b, pair)
			if match.Secondary != nil {
				k2 := rowKFactor(match.Secondary, a, b, pair)
				k = k*w1 + k2*(1-w1)
			}
			kFactors[pair] = k
		}
	}

	return kFactors
}

func rowKFactor(row *domain.ReferenceRow, a, b string, pair domain.PairKey) float64 {
	den := row.Reach(a) * row.Reach(b)
	if den <= 0 {
		return independenceK
	}
	return row.CoReach(pair) / den
}

// PlanOverlaps computes the absolute overlap of every pair in the plan:
// reach(a) * reach(b) * K, capped by the smaller reach. Pairs without a
// K-factor use 1.0. Plan reaches are fractions.
func PlanOverlaps(plan []domain.PlanItem, kFactors map[domain.PairKey]float64) map[domain.PairKey]float64 {
	overlaps := make(map[domain.PairKey]float64)
	for i := 0; i < len(plan); i++ {
		for j := i + 1; j < len(plan); j++ {
			a, b := plan[i], plan[j]
			pair := domain.NewPairKey(a.Name, b.Name)

			k, ok := kFactors[pair]
			if !ok {
				k = independenceK
			}
			overlaps[pair] = math.Min(a.Reach*b.Reach*k, math.Min(a.Reach, b.Reach))
		}
	}
	return overlaps
}

// RelevantKFactors returns the K-factors of the pairs present in the plan,
// sorted by pair key.
func RelevantKFactors(overlaps, kFactors map[domain.PairKey]float64) []domain.KFactor {
	out := make([]domain.KFactor, 0, len(overlaps))
	for pair := range overlaps {
		if k, ok := kFactors[pair]; ok {
			out = append(out, domain.KFactor{Pair: pair, Value: k})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pair < out[j].Pair
	})
	return out
}
