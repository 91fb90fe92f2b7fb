package planfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

var wantPlan = &domain.PlanFile{
	TargetAudience: "All 18-44",
	City:           "RF",
	Plan:           []domain.PlanItem{{Name: "TV", Reach: 50}, {Name: "Internet", Reach: 30.5}},
}

func TestReaders(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{
			name: "yaml",
			path: "plan.yaml",
			content: `target_audience: All 18-44
city: RF
plan:
  - name: TV
    reach: 50
  - name: " Internet "
    reach: 30.5
`,
		},
		{
			name: "toml",
			path: "plan.TOML",
			content: `target_audience = "All 18-44"
city = "RF"

[[plan]]
name = "TV"
reach = 50

[[plan]]
name = "Internet"
reach = 30.5
`,
		},
		{
			name: "json",
			path: "plan.json",
			content: `{"target_audience": "All 18-44", "city": "RF",
 "plan": [{"name": "TV", "reach": 50}, {"name": "Internet", "reach": 30.5}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ForPath(tt.path).Read(strings.NewReader(tt.content))
			require.NoError(t, err)
			assert.Equal(t, wantPlan, plan)
		})
	}
}

func TestForPath(t *testing.T) {
	assert.IsType(t, YAMLReader{}, ForPath("plan.yml"))
	assert.IsType(t, YAMLReader{}, ForPath("plan"))
	assert.IsType(t, TOMLReader{}, ForPath("/tmp/plan.toml"))
	assert.IsType(t, JSONReader{}, ForPath("plan.JSON"))
}

func TestReaders_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{name: "empty yaml", path: "p.yaml", content: ""},
		{name: "no channels", path: "p.yaml", content: "target_audience: All 18-44\n"},
		{name: "unknown yaml field", path: "p.yaml", content: "plan:\n  - name: TV\n    reach: 50\n    budget: 10\n"},
		{name: "blank name", path: "p.yaml", content: "plan:\n  - name: ' '\n    reach: 50\n"},
		{name: "bad toml", path: "p.toml", content: "plan = [[["},
		{name: "unknown toml field", path: "p.toml", content: "[[plan]]\nname = 'TV'\nreach = 5\nspend = 1\n"},
		{name: "bad json", path: "p.json", content: "{"},
		{name: "string reach", path: "p.json", content: `{"plan": [{"name": "TV", "reach": "fifty"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ForPath(tt.path).Read(strings.NewReader(tt.content))
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
