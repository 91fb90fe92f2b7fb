package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for netreach resources.
	uriScheme = "netreach://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "channels",
		Name:        "channels",
		Description: "Media channel categories accepted in a plan",
		MIMEType:    mimeJSON,
	}, s.handleChannelsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reference",
		Name:        "reference",
		Description: "Summary of the reference survey table",
		MIMEType:    mimeJSON,
	}, s.handleReferenceResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "scenarios",
		Name:        "scenarios",
		Description: "Saved scenarios with net reach and confidence",
		MIMEType:    mimeJSON,
	}, s.handleScenariosResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "scenarios/{scenarioId}",
		Name:        "scenario",
		Description: "A saved scenario with its full calculation result",
		MIMEType:    mimeJSON,
	}, s.handleScenarioResource)
}

// handleChannelsResource returns the channel category set.
func (s *Server) handleChannelsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Calculator.Channels())
}

// handleReferenceResource summarises the configured reference table.
func (s *Server) handleReferenceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reference == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info, err := s.ports.Reference.Describe(ctx)
	if err != nil {
		return nil, fmt.Errorf("describing reference data: %w", err)
	}

	type audienceInfo struct {
		Name        string `json:"name"`
		Gender      string `json:"gender"`
		IncomeGroup string `json:"income_group"`
		AgeMin      int    `json:"age_min"`
		AgeMax      int    `json:"age_max"`
	}
	type referenceInfo struct {
		Name        string         `json:"name"`
		Default     bool           `json:"default"`
		Channels    []string       `json:"channels"`
		Pairs       int            `json:"pairs"`
		ZeroedCells int            `json:"zeroed_cells"`
		Missing     []string       `json:"missing_channels,omitempty"`
		Audiences   []audienceInfo `json:"audiences"`
	}

	out := referenceInfo{
		Name:        info.Name,
		Default:     info.Default,
		Channels:    info.Channels,
		Pairs:       info.Pairs,
		ZeroedCells: info.ZeroedCells,
		Missing:     info.MissingColumns,
		Audiences:   []audienceInfo{},
	}
	if info.Table != nil {
		for i := range info.Table.Rows {
			row := &info.Table.Rows[i]
			out.Audiences = append(out.Audiences, audienceInfo{
				Name:        row.AudienceName,
				Gender:      string(row.Gender),
				IncomeGroup: string(row.IncomeGroup),
				AgeMin:      row.AgeMin,
				AgeMax:      row.AgeMax,
			})
		}
	}

	return jsonResource(req.Params.URI, out)
}

// handleScenariosResource returns summaries of all saved scenarios.
func (s *Server) handleScenariosResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Scenario == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: mimeJSON,
				Text:     "[]",
			}},
		}, nil
	}

	summaries, err := s.ports.Scenario.Compare(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	if summaries == nil {
		summaries = []domain.ScenarioSummary{}
	}

	return jsonResource(req.Params.URI, summaries)
}

// handleScenarioResource returns one saved scenario.
func (s *Server) handleScenarioResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Scenario == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract scenarioId from URI: netreach://scenarios/{scenarioId}
	id := extractScenarioID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sc, err := s.ports.Scenario.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting scenario: %w", err)
	}

	return jsonResource(req.Params.URI, sc)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractScenarioID extracts the scenario ID from a URI like netreach://scenarios/{scenarioId}.
func extractScenarioID(uri string) string {
	const prefix = uriScheme + "scenarios/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
