package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/netreach/internal/adapters/driving/mcp"
	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
	"github.com/custodia-labs/netreach/internal/logger"
)

type mockCalculator struct {
	result  *domain.CalculationResult
	err     error
	lastReq domain.CalculationRequest
	calls   int
}

func (m *mockCalculator) Calculate(_ context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return sampleResult(), nil
}

func (m *mockCalculator) Channels() []string {
	return domain.DefaultChannels()
}

type mockScenarios struct {
	items map[string]*domain.Scenario
	seq   int
	err   error
}

func newMockScenarios() *mockScenarios {
	return &mockScenarios{items: make(map[string]*domain.Scenario)}
}

func (m *mockScenarios) Save(
	_ context.Context, name string, req domain.CalculationRequest, result *domain.CalculationResult,
) (*domain.Scenario, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.seq++
	sc := &domain.Scenario{
		ID:             fmt.Sprintf("sc-%d", m.seq),
		Name:           name,
		TargetAudience: req.TargetAudience,
		City:           req.City,
		Plan:           req.Plan,
		Result:         result,
		CreatedAt:      time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}
	m.items[sc.ID] = sc
	return sc, nil
}

func (m *mockScenarios) Get(_ context.Context, id string) (*domain.Scenario, error) {
	sc, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sc, nil
}

func (m *mockScenarios) List(context.Context) ([]domain.Scenario, error) {
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.Scenario, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.items[id])
	}
	return out, nil
}

func (m *mockScenarios) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockScenarios) Compare(ctx context.Context, ids []string) ([]domain.ScenarioSummary, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.ScenarioSummary
	for i := range all {
		sc := &all[i]
		if len(ids) > 0 && !contains(ids, sc.ID) {
			continue
		}
		out = append(out, domain.ScenarioSummary{
			ID:             sc.ID,
			Name:           sc.Name,
			TargetAudience: sc.TargetAudience,
			City:           sc.City,
			FinalReach:     sc.Result.FinalReach,
			GrossReach:     sc.Result.GrossReach,
			Confidence:     sc.Result.Confidence,
			Channels:       len(sc.Plan),
		})
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type mockReference struct {
	info      *driving.ReferenceInfo
	err       error
	validated *domain.ReferenceData
}

func (m *mockReference) Describe(context.Context) (*driving.ReferenceInfo, error) {
	return m.info, m.err
}

func (m *mockReference) Validate(_ context.Context, data *domain.ReferenceData) (*driving.ReferenceInfo, error) {
	m.validated = data
	if m.err != nil {
		return nil, m.err
	}
	info := *m.info
	info.Name = data.Name
	info.Default = false
	return &info, nil
}

type mockExport struct {
	format domain.ExportFormat
	name   string
	err    error
}

func (m *mockExport) Export(w io.Writer, sc *domain.Scenario, format domain.ExportFormat) error {
	if m.err != nil {
		return m.err
	}
	m.format = format
	m.name = sc.Name
	_, err := fmt.Fprintf(w, "%s report for %s", format, sc.Name)
	return err
}

func (m *mockExport) Formats() []domain.ExportFormat {
	return []domain.ExportFormat{domain.ExportXLSX, domain.ExportCSV, domain.ExportMarkdown, domain.ExportJSON}
}

type mockSettings struct {
	settings    domain.AppSettings
	set         map[string]string
	saved       bool
	validateErr error
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings(), set: make(map[string]string)}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.AppSettings) error {
	m.settings = *s
	m.saved = true
	return nil
}

func (m *mockSettings) Set(key, value string) error {
	if !strings.Contains(key, ".") {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"calculator.default_city", "storage.driver"}
}

func (m *mockSettings) Validate() error {
	return m.validateErr
}

func (m *mockSettings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func sampleResult() *domain.CalculationResult {
	return &domain.CalculationResult{
		Header:          "Net reach for All 18-44, RF",
		FinalReach:      0.6392,
		GrossReach:      0.8,
		Confidence:      domain.ConfidenceHigh,
		MinDistance:     0,
		DataSourceMsg:   "Using built-in reference data",
		SourceAudiences: []string{"All 18-44", "All 18-44 BC"},
		Plan:            []domain.PlanItem{{Name: "TV", Reach: 0.5}, {Name: "Internet", Reach: 0.3}},
		IncrementalData: []domain.IncrementalStep{
			{Name: "TV", Reach: 0.5, CumulativeReach: 0.5, Increment: 0.5, Exclusivity: 0.7},
			{Name: "Internet", Reach: 0.3, CumulativeReach: 0.6392, Increment: 0.1392, Exclusivity: 0.464},
		},
		KFactors: []domain.KFactor{{Pair: domain.NewPairKey("TV", "Internet"), Value: 1.0719}},
		DuplicationMatrix: domain.DuplicationMatrix{
			Channels: []string{"TV", "Internet"},
			Cells:    [][]float64{{1, 0.3216}, {0.536, 1}},
		},
		ExclusionAnalysis: []domain.ExclusionResult{
			{Name: "TV", Loss: 0.3392},
			{Name: "Internet", Loss: 0.1392},
		},
	}
}

// testServices holds the mocks injected for one test.
type testServices struct {
	calc      *mockCalculator
	scenarios *mockScenarios
	reference *mockReference
	export    *mockExport
	settings  *mockSettings
	plans     map[string]*domain.PlanFile
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	ts := &testServices{
		calc:      &mockCalculator{},
		scenarios: newMockScenarios(),
		reference: &mockReference{info: &driving.ReferenceInfo{
			Name:     "reference_data.csv",
			Default:  true,
			Rows:     2,
			Channels: []string{"TV", "Internet"},
			Pairs:    1,
			Table: &domain.ReferenceTable{Rows: []domain.ReferenceRow{
				{AudienceName: "All 18-44", Values: map[string]float64{"TV": 0.6, "Internet": 0.7}},
				{AudienceName: "W 25-54", Values: map[string]float64{"TV": 0.65, "Internet": 0.55}},
			}},
		}},
		export:   &mockExport{},
		settings: newMockSettings(),
		plans:    make(map[string]*domain.PlanFile),
	}
	SetServices(Services{
		Calculator: ts.calc,
		Scenario:   ts.scenarios,
		Reference:  ts.reference,
		Export:     ts.export,
		Settings:   ts.settings,
		PlanLoader: func(path string) (*domain.PlanFile, error) {
			pf, ok := ts.plans[path]
			if !ok {
				return nil, fmt.Errorf("open %s: %w", path, domain.ErrNotFound)
			}
			return pf, nil
		},
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return ts
}

// resetFlags restores package-level flag values between executions.
func resetFlags() {
	verbose = false
	calcAudience, calcCity, calcPlanFile, calcData = "", "", "", ""
	calcPlan = nil
	calcJSON = false
	calcSave, calcOutput, calcFormat = "", "", ""
	scenarioJSON = false
	scenarioFormat, scenarioOutput = "", ""
	referenceJSON = false
	mcpPort = 0
	mcpRate = mcp.DefaultRateLimit.RequestsPerSecond
	mcpBurst = mcp.DefaultRateLimit.BurstSize
}

// runCLI executes the root command with args and returns its output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
		logger.SetVerbose(false)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
