package driven

import (
	"io"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// PlanReader decodes a media plan file.
type PlanReader interface {
	// Read decodes plan items from r. Reach values are percentages.
	Read(r io.Reader) (*domain.PlanFile, error)
}
