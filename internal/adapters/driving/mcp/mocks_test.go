package mcp

import (
	"context"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

// mockCalculatorService is a mock implementation of driving.CalculatorService.
type mockCalculatorService struct {
	result   *domain.CalculationResult
	channels []string
	err      error
	lastReq  domain.CalculationRequest
	calls    int
}

func (m *mockCalculatorService) Calculate(
	_ context.Context,
	req domain.CalculationRequest,
) (*domain.CalculationResult, error) {
	m.calls++
	m.lastReq = req
	return m.result, m.err
}

func (m *mockCalculatorService) Channels() []string {
	return m.channels
}

// mockScenarioService is a mock implementation of driving.ScenarioService.
type mockScenarioService struct {
	scenario  *domain.Scenario
	summaries []domain.ScenarioSummary
	err       error
	savedName string
	compared  []string
}

func (m *mockScenarioService) Save(
	_ context.Context, name string, req domain.CalculationRequest, result *domain.CalculationResult,
) (*domain.Scenario, error) {
	m.savedName = name
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Scenario{
		ID:             "sc-1",
		Name:           name,
		TargetAudience: req.TargetAudience,
		City:           req.City,
		Plan:           req.Plan,
		Result:         result,
	}, nil
}

func (m *mockScenarioService) Get(_ context.Context, _ string) (*domain.Scenario, error) {
	return m.scenario, m.err
}

func (m *mockScenarioService) List(_ context.Context) ([]domain.Scenario, error) {
	if m.scenario == nil {
		return nil, m.err
	}
	return []domain.Scenario{*m.scenario}, m.err
}

func (m *mockScenarioService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockScenarioService) Compare(_ context.Context, ids []string) ([]domain.ScenarioSummary, error) {
	m.compared = ids
	return m.summaries, m.err
}

// mockReferenceService is a mock implementation of driving.ReferenceService.
type mockReferenceService struct {
	info *driving.ReferenceInfo
	err  error
}

func (m *mockReferenceService) Describe(_ context.Context) (*driving.ReferenceInfo, error) {
	return m.info, m.err
}

func (m *mockReferenceService) Validate(_ context.Context, _ *domain.ReferenceData) (*driving.ReferenceInfo, error) {
	return m.info, m.err
}

func sampleResult() *domain.CalculationResult {
	return &domain.CalculationResult{
		Header:          "Results for audience: All 18-44 (RF)",
		FinalReach:      0.6392,
		GrossReach:      0.8,
		Confidence:      domain.ConfidenceHigh,
		DataSourceMsg:   "(using default reference data)",
		SourceAudiences: []string{"All 18-44", "All 18-44 BC"},
		IncrementalData: []domain.IncrementalStep{
			{Name: "TV", Reach: 0.5, CumulativeReach: 0.5, Increment: 0.5, Exclusivity: 1},
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
