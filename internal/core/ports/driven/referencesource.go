package driven

import (
	"context"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ReferenceSource supplies the raw bytes of a reference table.
// Reading the bytes is the only blocking step before a calculation.
type ReferenceSource interface {
	// Load returns the current reference data.
	Load(ctx context.Context) (*domain.ReferenceData, error)
}
