// Package embedded provides the built-in reference table.
package embedded

import (
	"context"
	_ "embed"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

//go:embed default.csv
var defaultTable []byte

// Name is the display name of the built-in table.
const Name = "default.csv"

// Ensure Source implements the interface.
var _ driven.ReferenceSource = (*Source)(nil)

// Source serves the reference table compiled into the binary.
type Source struct{}

// New creates a source for the built-in table.
func New() *Source {
	return &Source{}
}

// Load returns a copy of the built-in table.
func (s *Source) Load(ctx context.Context) (*domain.ReferenceData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Data(), nil
}

// Data returns the built-in table without going through a source.
func Data() *domain.ReferenceData {
	content := make([]byte, len(defaultTable))
	copy(content, defaultTable)
	return &domain.ReferenceData{
		Name:    Name,
		Content: content,
		Default: true,
	}
}
