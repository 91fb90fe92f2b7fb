package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil calculator service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCalculatorService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Calculator: &mockCalculatorService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("invalid rate limit falls back to default", func(t *testing.T) {
		server, err := NewServerWithRateLimit(&Ports{Calculator: &mockCalculatorService{}}, RateLimitConfig{})
		require.NoError(t, err)
		assert.Equal(t, DefaultRateLimit.BurstSize, server.limiter.Burst())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil calculator service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingCalculatorService)
	})

	t.Run("calculator only is valid", func(t *testing.T) {
		ports := &Ports{
			Calculator: &mockCalculatorService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Calculator: &mockCalculatorService{},
			Scenario:   &mockScenarioService{},
			Reference:  &mockReferenceService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestRateLimited(t *testing.T) {
	server, err := NewServerWithRateLimit(
		&Ports{Calculator: &mockCalculatorService{result: sampleResult()}},
		RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1},
	)
	require.NoError(t, err)

	handler := rateLimited(server.limiter, server.handleCalculate)

	_, _, err = handler(context.Background(), nil, CalculateInput{TargetAudience: "All 18-44"})
	require.NoError(t, err)

	// The bucket is empty and refills far slower than the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err = handler(ctx, nil, CalculateInput{TargetAudience: "All 18-44"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
