package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

func TestExtractScenarioID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid scenario URI",
			uri:      "netreach://scenarios/sc-123",
			expected: "sc-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://scenarios/sc-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "netreach://scenarios/sc-123/result",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractScenarioID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleChannelsResource(t *testing.T) {
	server, err := NewServer(&Ports{Calculator: &mockCalculatorService{channels: []string{"TV", "Radio"}}})
	require.NoError(t, err)

	result, err := server.handleChannelsResource(context.Background(), makeReadResourceRequest("netreach://channels"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.JSONEq(t, `["TV","Radio"]`, result.Contents[0].Text)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
}

func TestServer_handleReferenceResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil reference service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}})
		require.NoError(t, err)

		_, err = server.handleReferenceResource(ctx, makeReadResourceRequest("netreach://reference"))

		require.Error(t, err)
	})

	t.Run("summarises audiences", func(t *testing.T) {
		reference := &mockReferenceService{info: &driving.ReferenceInfo{
			Name:     "default.csv",
			Default:  true,
			Rows:     1,
			Channels: []string{"TV"},
			Table: &domain.ReferenceTable{
				Rows: []domain.ReferenceRow{{
					AudienceName: "All 18-44",
					Gender:       domain.GenderAll,
					IncomeGroup:  domain.IncomeAll,
					AgeMin:       18,
					AgeMax:       44,
				}},
			},
		}}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Reference: reference})
		require.NoError(t, err)

		result, err := server.handleReferenceResource(ctx, makeReadResourceRequest("netreach://reference"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"name": "All 18-44"`)
		assert.Contains(t, result.Contents[0].Text, `"default": true`)
		assert.Contains(t, result.Contents[0].Text, `"age_max": 44`)
	})

	t.Run("returns error on describe failure", func(t *testing.T) {
		reference := &mockReferenceService{err: errors.New("bad file")}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Reference: reference})
		require.NoError(t, err)

		_, err = server.handleReferenceResource(ctx, makeReadResourceRequest("netreach://reference"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "describing reference data")
	})
}

func TestServer_handleScenariosResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil scenario service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}})
		require.NoError(t, err)

		result, err := server.handleScenariosResource(ctx, makeReadResourceRequest("netreach://scenarios"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns summaries", func(t *testing.T) {
		scenarios := &mockScenarioService{summaries: []domain.ScenarioSummary{{ID: "sc-1", Name: "Launch"}}}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Scenario: scenarios})
		require.NoError(t, err)

		result, err := server.handleScenariosResource(ctx, makeReadResourceRequest("netreach://scenarios"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "sc-1")
		assert.Contains(t, result.Contents[0].Text, "Launch")
		assert.Nil(t, scenarios.compared)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		scenarios := &mockScenarioService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Scenario: scenarios})
		require.NoError(t, err)

		_, err = server.handleScenariosResource(ctx, makeReadResourceRequest("netreach://scenarios"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing scenarios")
	})
}

func TestServer_handleScenarioResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns scenario", func(t *testing.T) {
		scenarios := &mockScenarioService{scenario: &domain.Scenario{ID: "sc-1", Name: "Launch", Result: sampleResult()}}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Scenario: scenarios})
		require.NoError(t, err)

		result, err := server.handleScenarioResource(ctx, makeReadResourceRequest("netreach://scenarios/sc-1"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"final_reach": 0.6392`)
	})

	t.Run("unknown scenario returns not found", func(t *testing.T) {
		scenarios := &mockScenarioService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Scenario: scenarios})
		require.NoError(t, err)

		_, err = server.handleScenarioResource(ctx, makeReadResourceRequest("netreach://scenarios/missing"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Scenario: &mockScenarioService{}})
		require.NoError(t, err)

		_, err = server.handleScenarioResource(ctx, makeReadResourceRequest("netreach://invalid/uri"))

		require.Error(t, err)
	})
}
