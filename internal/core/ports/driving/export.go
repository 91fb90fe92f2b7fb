package driving

import (
	"io"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ExportService writes scenario reports.
type ExportService interface {
	// Export writes the scenario in the given format.
	Export(w io.Writer, scenario *domain.Scenario, format domain.ExportFormat) error

	// Formats returns the registered formats.
	Formats() []domain.ExportFormat
}
