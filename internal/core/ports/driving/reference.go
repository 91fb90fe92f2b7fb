package driving

import (
	"context"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ReferenceInfo describes a parsed reference table.
// Table is the parsed data and is left out of JSON output.
type ReferenceInfo struct {
	Name           string                 `json:"name"`
	Default        bool                   `json:"default"`
	Rows           int                    `json:"rows"`
	Channels       []string               `json:"channels"`
	Pairs          int                    `json:"pairs"`
	ZeroedCells    int                    `json:"zeroed_cells"`
	MissingColumns []string               `json:"missing_columns,omitempty"`
	MissingPairs   []domain.PairKey       `json:"missing_pairs,omitempty"`
	Table          *domain.ReferenceTable `json:"-"`
}

// ReferenceService inspects reference data.
type ReferenceService interface {
	// Describe parses the configured reference data and summarises it.
	Describe(ctx context.Context) (*ReferenceInfo, error)

	// Validate parses the given data and summarises it.
	Validate(ctx context.Context, data *domain.ReferenceData) (*ReferenceInfo, error)
}
