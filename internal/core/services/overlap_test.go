package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

func rowWithValues(name string, values map[string]float64) *domain.ReferenceRow {
	row := referenceRow(name, domain.GenderAll, domain.IncomeAll, 18, 44)
	for k, v := range values {
		row.Values[k] = v
	}
	return &row
}

func TestPredictKFactors_PrimaryOnly(t *testing.T) {
	match := &AudienceMatch{
		Primary: rowWithValues("p", map[string]float64{"TV": 0.5, "Radio": 0.4, "Radio + TV": 0.3}),
	}

	kFactors := PredictKFactors([]string{"TV", "Radio", "Internet"}, match)

	require.Len(t, kFactors, 3, "every pair of the channel set")
	assert.InDelta(t, 1.5, kFactors[domain.NewPairKey("TV", "Radio")], 1e-9)
	assert.Equal(t, 1.0, kFactors[domain.NewPairKey("TV", "Internet")], "zero reach falls back to independence")
	assert.Equal(t, 1.0, kFactors[domain.NewPairKey("Radio", "Internet")])
}

func TestPredictKFactors_BlendsSecondary(t *testing.T) {
	primary := rowWithValues("p", map[string]float64{"TV": 0.5, "Radio": 0.4, "Radio + TV": 0.3})
	secondary := rowWithValues("s", map[string]float64{"TV": 0.5, "Radio": 0.5, "Radio + TV": 0.25})

	tests := []struct {
		name     string
		d1, d2   float64
		expected float64
	}{
		{"weighted by distance", 0.1, 0.3, 1.5*0.75 + 1.0*0.25},
		{"both exact matches", 0, 0, 1.25},
		{"primary exact", 0, 0.5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := &AudienceMatch{
				Primary:           primary,
				PrimaryDistance:   tt.d1,
				Secondary:         secondary,
				SecondaryDistance: tt.d2,
			}

			kFactors := PredictKFactors([]string{"TV", "Radio"}, match)

			assert.InDelta(t, tt.expected, kFactors[domain.NewPairKey("TV", "Radio")], 1e-9)
		})
	}
}

func TestPlanOverlaps(t *testing.T) {
	plan := []domain.PlanItem{{Name: "TV", Reach: 0.5}, {Name: "Radio", Reach: 0.4}, {Name: "OOH", Reach: 0.2}}
	kFactors := map[domain.PairKey]float64{
		domain.NewPairKey("TV", "Radio"): 1.5,
		domain.NewPairKey("TV", "OOH"):   10,
	}

	overlaps := PlanOverlaps(plan, kFactors)

	require.Len(t, overlaps, 3)
	assert.InDelta(t, 0.3, overlaps[domain.NewPairKey("TV", "Radio")], 1e-9)
	assert.InDelta(t, 0.2, overlaps[domain.NewPairKey("TV", "OOH")], 1e-9, "capped by the smaller reach")
	assert.InDelta(t, 0.08, overlaps[domain.NewPairKey("Radio", "OOH")], 1e-9, "missing K-factor uses 1.0")
}

func TestPlanOverlaps_SingleChannel(t *testing.T) {
	overlaps := PlanOverlaps([]domain.PlanItem{{Name: "TV", Reach: 0.5}}, nil)

	assert.Empty(t, overlaps)
}

func TestRelevantKFactors(t *testing.T) {
	kFactors := map[domain.PairKey]float64{
		domain.NewPairKey("TV", "Radio"):    1.5,
		domain.NewPairKey("TV", "Internet"): 1.1,
		domain.NewPairKey("OOH", "Metro"):   2.0,
	}
	overlaps := map[domain.PairKey]float64{
		domain.NewPairKey("TV", "Radio"):    0.3,
		domain.NewPairKey("TV", "Internet"): 0.2,
	}

	relevant := RelevantKFactors(overlaps, kFactors)

	assert.Equal(t, []domain.KFactor{
		{Pair: "Internet + TV", Value: 1.1},
		{Pair: "Radio + TV", Value: 1.5},
	}, relevant)
}
