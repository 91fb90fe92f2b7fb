package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds the token bucket settings for tool calls.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit applies when no limit is configured.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 10, BurstSize: 20}

// rateLimited wraps a tool handler so every call waits for a token first.
func rateLimited[In, Out any](limiter *rate.Limiter, h mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, Out, error) {
		if err := limiter.Wait(ctx); err != nil {
			var zero Out
			return nil, zero, fmt.Errorf("rate limit: %w", err)
		}
		return h(ctx, req, input)
	}
}
