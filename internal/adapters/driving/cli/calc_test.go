package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

func TestParsePlanItem(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.PlanItem
		wantErr bool
	}{
		{name: "integer", input: "TV=50", want: domain.PlanItem{Name: "TV", Reach: 50}},
		{name: "percent sign", input: "Radio=20%", want: domain.PlanItem{Name: "Radio", Reach: 20}},
		{name: "decimal comma", input: "Internet=12,5", want: domain.PlanItem{Name: "Internet", Reach: 12.5}},
		{name: "spaces", input: " OOH = 7.5 ", want: domain.PlanItem{Name: "OOH", Reach: 7.5}},
		{name: "name with equals", input: "A=B=10", want: domain.PlanItem{Name: "A=B", Reach: 10}},
		{name: "missing value", input: "TV=", wantErr: true},
		{name: "missing name", input: "=50", wantErr: true},
		{name: "no separator", input: "TV50", wantErr: true},
		{name: "not a number", input: "TV=lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlanItem(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalcCmd_PrintsResult(t *testing.T) {
	ts := setupServices(t)

	out, err := runCLI(t, "", "calc", "TV=50", "Internet=30")

	require.NoError(t, err)
	assert.Equal(t, "All 18-44", ts.calc.lastReq.TargetAudience)
	assert.Equal(t, "RF", ts.calc.lastReq.City)
	assert.Equal(t, []domain.PlanItem{{Name: "TV", Reach: 50}, {Name: "Internet", Reach: 30}}, ts.calc.lastReq.Plan)

	assert.Contains(t, out, "Net reach for All 18-44, RF")
	assert.Contains(t, out, "Net reach:   63.9%")
	assert.Contains(t, out, "Gross reach: 80.0%")
	assert.Contains(t, out, "Confidence:  High")
	assert.Contains(t, out, "Matched:     All 18-44, All 18-44 BC")
	assert.Contains(t, out, "1. TV")
	assert.Contains(t, out, "2. Internet")
	assert.Contains(t, out, "1.07")
	assert.Contains(t, out, "Exclusion analysis")
}

func TestCalcCmd_Flags(t *testing.T) {
	ts := setupServices(t)

	_, err := runCLI(t, "", "calc",
		"--audience", "W 25-54 BC", "--city", "Moscow",
		"--plan", "TV=60", "-p", "Radio=20%", "Press=5")

	require.NoError(t, err)
	req := ts.calc.lastReq
	assert.Equal(t, "W 25-54 BC", req.TargetAudience)
	assert.Equal(t, "Moscow", req.City)
	assert.Equal(t, []domain.PlanItem{
		{Name: "TV", Reach: 60},
		{Name: "Radio", Reach: 20},
		{Name: "Press", Reach: 5},
	}, req.Plan)
	assert.Nil(t, req.ReferenceData)
}

func TestCalcCmd_DefaultsFromSettings(t *testing.T) {
	ts := setupServices(t)
	ts.settings.settings.Calculator.DefaultAudience = "M 18+"
	ts.settings.settings.Calculator.DefaultCity = "Kazan"

	_, err := runCLI(t, "", "calc", "TV=50")

	require.NoError(t, err)
	assert.Equal(t, "M 18+", ts.calc.lastReq.TargetAudience)
	assert.Equal(t, "Kazan", ts.calc.lastReq.City)
}

func TestCalcCmd_PlanFile(t *testing.T) {
	ts := setupServices(t)
	ts.plans["plan.yaml"] = &domain.PlanFile{
		TargetAudience: "All 25-54",
		City:           "Samara",
		Plan:           []domain.PlanItem{{Name: "TV", Reach: 40}},
	}

	_, err := runCLI(t, "", "calc", "-f", "plan.yaml", "--city", "Perm", "Radio=10")

	require.NoError(t, err)
	req := ts.calc.lastReq
	assert.Equal(t, "All 25-54", req.TargetAudience)
	assert.Equal(t, "Perm", req.City, "flags override the plan file")
	assert.Equal(t, []domain.PlanItem{{Name: "TV", Reach: 40}, {Name: "Radio", Reach: 10}}, req.Plan)
}

func TestCalcCmd_PlanFileMissing(t *testing.T) {
	setupServices(t)

	_, err := runCLI(t, "", "calc", "--plan-file", "missing.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read plan file")
}

func TestCalcCmd_ReferenceData(t *testing.T) {
	ts := setupServices(t)
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte("AudienceName,Gender,Age_min,Age_max,Income_Group,TV\n"), 0o600))

	_, err := runCLI(t, "", "calc", "--data", path, "TV=50")

	require.NoError(t, err)
	require.NotNil(t, ts.calc.lastReq.ReferenceData)
	assert.Equal(t, "survey.csv", ts.calc.lastReq.ReferenceData.Name)
	assert.Contains(t, string(ts.calc.lastReq.ReferenceData.Content), "AudienceName")
}

func TestCalcCmd_InvalidItem(t *testing.T) {
	ts := setupServices(t)

	_, err := runCLI(t, "", "calc", "TV:50")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, ts.calc.calls)
}

func TestCalcCmd_CalculationError(t *testing.T) {
	ts := setupServices(t)
	ts.calc.err = domain.NewCalcError(domain.CodeEmptyPlan, domain.ErrInvalidInput, "media plan is empty")

	_, err := runCLI(t, "", "calc")

	require.Error(t, err)
	assert.Equal(t, domain.CodeEmptyPlan, domain.CodeOf(err))
}

func TestCalcCmd_JSON(t *testing.T) {
	setupServices(t)

	out, err := runCLI(t, "", "calc", "--json", "TV=50", "Internet=30")

	require.NoError(t, err)
	var got domain.CalculationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 0.6392, got.FinalReach, 1e-9)
	assert.Equal(t, domain.ConfidenceHigh, got.Confidence)
}

func TestCalcCmd_Save(t *testing.T) {
	ts := setupServices(t)

	out, err := runCLI(t, "", "calc", "--save", "Q3 launch", "TV=50")

	require.NoError(t, err)
	sc, err := ts.scenarios.Get(t.Context(), "sc-1")
	require.NoError(t, err)
	assert.Equal(t, "Q3 launch", sc.Name)
	assert.Contains(t, out, `Saved scenario "Q3 launch" (sc-1)`)
}

func TestCalcCmd_Output(t *testing.T) {
	ts := setupServices(t)
	path := filepath.Join(t.TempDir(), "report.md")

	out, err := runCLI(t, "", "calc", "-o", path, "TV=50")

	require.NoError(t, err)
	assert.Equal(t, domain.ExportMarkdown, ts.export.format)
	assert.Equal(t, "Calculation", ts.export.name)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "markdown report for Calculation", string(data))
	assert.Contains(t, out, "Report written to "+path)
}

func TestCalcCmd_OutputFailureRemovesFile(t *testing.T) {
	ts := setupServices(t)
	ts.export.err = assert.AnError
	path := filepath.Join(t.TempDir(), "report.xlsx")

	_, err := runCLI(t, "", "calc", "-o", path, "TV=50")

	require.ErrorIs(t, err, assert.AnError)
	assert.NoFileExists(t, path)
}

func TestCalcCmd_NotConfigured(t *testing.T) {
	SetServices(Services{})

	_, err := runCLI(t, "", "calc", "TV=50")

	assert.EqualError(t, err, "calculator service not configured")
}

func TestResolveExportFormat(t *testing.T) {
	ts := setupServices(t)
	ts.settings.settings.Export.Format = domain.ExportCSV

	tests := []struct {
		name   string
		path   string
		format string
		want   domain.ExportFormat
	}{
		{name: "explicit format wins", path: "out.csv", format: "json", want: domain.ExportJSON},
		{name: "xlsx extension", path: "out.xlsx", want: domain.ExportXLSX},
		{name: "markdown extension", path: "notes/out.MD", want: domain.ExportMarkdown},
		{name: "json extension", path: "out.json", want: domain.ExportJSON},
		{name: "unknown extension uses settings", path: "out.txt", want: domain.ExportCSV},
		{name: "no path uses settings", want: domain.ExportCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveExportFormat(tt.path, tt.format))
		})
	}
}

func TestResolveExportFormat_NoSettings(t *testing.T) {
	SetServices(Services{})

	assert.Equal(t, domain.ExportXLSX, resolveExportFormat("out", ""))
}
