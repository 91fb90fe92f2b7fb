package export

import (
	"encoding/json"
	"io"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

var _ driven.ReportExporter = (*JSONExporter)(nil)

// JSONExporter writes the whole scenario, inputs and result, as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

// Format returns domain.ExportJSON.
func (e *JSONExporter) Format() domain.ExportFormat { return domain.ExportJSON }

// Export writes the report.
func (e *JSONExporter) Export(w io.Writer, sc *domain.Scenario) error {
	if err := checkScenario(sc); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}
