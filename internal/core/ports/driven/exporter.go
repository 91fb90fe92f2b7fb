package driven

import (
	"io"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// ReportExporter writes a scenario report in a single format.
type ReportExporter interface {
	// Format returns the format this exporter produces.
	Format() domain.ExportFormat

	// Export writes the report for the scenario to w.
	Export(w io.Writer, scenario *domain.Scenario) error
}
