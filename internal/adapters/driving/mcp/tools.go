package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// PlanItemInput is one channel of a media plan.
type PlanItemInput struct {
	Name  string  `json:"name" jsonschema:"media channel name, e.g. TV or Internet"`
	Reach float64 `json:"reach" jsonschema:"channel reach in percent (0-100)"`
}

// CalculateInput is the input schema for the calculate_net_reach tool.
type CalculateInput struct {
	TargetAudience string          `json:"target_audience" jsonschema:"target audience such as 'All 18-44' or 'W 25-54 BC'"`
	City           string          `json:"city,omitempty" jsonschema:"city shown in the result header"`
	Plan           []PlanItemInput `json:"plan" jsonschema:"media plan channels with reach percentages"`
	ReferenceCSV   string          `json:"reference_csv,omitempty" jsonschema:"optional reference table as CSV text"`
	ReferenceName  string          `json:"reference_name,omitempty" jsonschema:"display name of reference_csv"`
}

// CalculateOutput is the output schema for the calculate_net_reach tool.
type CalculateOutput struct {
	Header            string                   `json:"header"`
	DataSource        string                   `json:"data_source"`
	FinalReach        float64                  `json:"final_reach"`
	GrossReach        float64                  `json:"gross_reach"`
	Confidence        string                   `json:"confidence"`
	MinDistance       float64                  `json:"min_distance"`
	SourceAudiences   []string                 `json:"source_audiences"`
	Incremental       []domain.IncrementalStep `json:"incremental"`
	KFactors          []KFactorOutput          `json:"k_factors"`
	DuplicationMatrix DuplicationOutput        `json:"duplication_matrix"`
	ExclusionAnalysis []domain.ExclusionResult `json:"exclusion_analysis"`
}

// KFactorOutput is one predicted pair coefficient.
type KFactorOutput struct {
	Pair  string  `json:"pair"`
	Value float64 `json:"value"`
}

// DuplicationOutput is the channel-by-channel duplication matrix.
type DuplicationOutput struct {
	Channels []string    `json:"channels"`
	Cells    [][]float64 `json:"cells"`
}

// SaveScenarioInput is the input schema for the save_scenario tool.
type SaveScenarioInput struct {
	Name           string          `json:"name,omitempty" jsonschema:"scenario name; a timestamped name is used when empty"`
	TargetAudience string          `json:"target_audience" jsonschema:"target audience such as 'All 18-44' or 'W 25-54 BC'"`
	City           string          `json:"city,omitempty" jsonschema:"city shown in the result header"`
	Plan           []PlanItemInput `json:"plan" jsonschema:"media plan channels with reach percentages"`
}

// SaveScenarioOutput is the output schema for the save_scenario tool.
type SaveScenarioOutput struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	FinalReach float64         `json:"final_reach"`
	Result     CalculateOutput `json:"result"`
}

// ListScenariosInput is the input schema for the list_scenarios tool.
type ListScenariosInput struct {
	IDs []string `json:"ids,omitempty" jsonschema:"scenario IDs to compare; all scenarios when empty"`
}

// ListScenariosOutput is the output schema for the list_scenarios tool.
type ListScenariosOutput struct {
	Scenarios []domain.ScenarioSummary `json:"scenarios"`
	Count     int                      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate_net_reach",
		Description: "Estimate the deduplicated reach of a media plan for a target audience",
	}, rateLimited(s.limiter, s.handleCalculate))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_scenario",
		Description: "Calculate a media plan and save it as a named scenario",
	}, rateLimited(s.limiter, s.handleSaveScenario))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_scenarios",
		Description: "List saved scenarios with their net reach, gross reach and confidence",
	}, rateLimited(s.limiter, s.handleListScenarios))
}

// handleCalculate handles the calculate_net_reach tool invocation.
func (s *Server) handleCalculate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CalculateInput,
) (*mcp.CallToolResult, CalculateOutput, error) {
	result, err := s.ports.Calculator.Calculate(ctx, input.request())
	if err != nil {
		return nil, CalculateOutput{}, err
	}
	return nil, toCalculateOutput(result), nil
}

// handleSaveScenario handles the save_scenario tool invocation.
func (s *Server) handleSaveScenario(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveScenarioInput,
) (*mcp.CallToolResult, SaveScenarioOutput, error) {
	if s.ports.Scenario == nil {
		return nil, SaveScenarioOutput{}, ErrScenarioStoreUnavailable
	}

	req := CalculateInput{
		TargetAudience: input.TargetAudience,
		City:           input.City,
		Plan:           input.Plan,
	}.request()
	result, err := s.ports.Calculator.Calculate(ctx, req)
	if err != nil {
		return nil, SaveScenarioOutput{}, err
	}

	sc, err := s.ports.Scenario.Save(ctx, input.Name, req, result)
	if err != nil {
		return nil, SaveScenarioOutput{}, err
	}

	return nil, SaveScenarioOutput{
		ID:         sc.ID,
		Name:       sc.Name,
		FinalReach: result.FinalReach,
		Result:     toCalculateOutput(result),
	}, nil
}

// handleListScenarios handles the list_scenarios tool invocation.
func (s *Server) handleListScenarios(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListScenariosInput,
) (*mcp.CallToolResult, ListScenariosOutput, error) {
	if s.ports.Scenario == nil {
		return nil, ListScenariosOutput{}, ErrScenarioStoreUnavailable
	}

	summaries, err := s.ports.Scenario.Compare(ctx, input.IDs)
	if err != nil {
		return nil, ListScenariosOutput{}, err
	}
	if summaries == nil {
		summaries = []domain.ScenarioSummary{}
	}

	return nil, ListScenariosOutput{Scenarios: summaries, Count: len(summaries)}, nil
}

func (in CalculateInput) request() domain.CalculationRequest {
	req := domain.CalculationRequest{
		TargetAudience: in.TargetAudience,
		City:           in.City,
		Plan:           make([]domain.PlanItem, len(in.Plan)),
	}
	for i, item := range in.Plan {
		req.Plan[i] = domain.PlanItem{Name: item.Name, Reach: item.Reach}
	}
	if in.ReferenceCSV != "" {
		name := in.ReferenceName
		if name == "" {
			name = "reference.csv"
		}
		req.ReferenceData = &domain.ReferenceData{Name: name, Content: []byte(in.ReferenceCSV)}
	}
	return req
}

func toCalculateOutput(r *domain.CalculationResult) CalculateOutput {
	out := CalculateOutput{
		Header:            r.Header,
		DataSource:        r.DataSourceMsg,
		FinalReach:        r.FinalReach,
		GrossReach:        r.GrossReach,
		Confidence:        r.Confidence.String(),
		MinDistance:       r.MinDistance,
		SourceAudiences:   r.SourceAudiences,
		Incremental:       r.IncrementalData,
		KFactors:          make([]KFactorOutput, len(r.KFactors)),
		DuplicationMatrix: DuplicationOutput(r.DuplicationMatrix),
		ExclusionAnalysis: r.ExclusionAnalysis,
	}
	for i, k := range r.KFactors {
		out.KFactors[i] = KFactorOutput{Pair: k.Pair.String(), Value: k.Value}
	}
	return out
}
