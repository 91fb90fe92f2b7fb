package driving

import (
	"context"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// CalculatorService estimates the net reach of a media plan.
type CalculatorService interface {
	// Calculate runs one stateless calculation.
	// Failures are returned as *domain.CalcError.
	Calculate(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error)

	// Channels returns the configured channel category set.
	Channels() []string
}
