// Package mcp provides an MCP (Model Context Protocol) server adapter for netreach.
// It lets AI assistants estimate media plan reach and work with saved scenarios.
package mcp

import "errors"

// ErrMissingCalculatorService is returned when the calculator service is not provided.
var ErrMissingCalculatorService = errors.New("mcp: calculator service is required")

// ErrScenarioStoreUnavailable is returned by scenario tools when no scenario service is configured.
var ErrScenarioStoreUnavailable = errors.New("mcp: scenario storage is not configured")
