package export

import (
	"encoding/csv"
	"io"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

var _ driven.ReportExporter = (*CSVExporter)(nil)

// CSVExporter writes each report section as a titled block separated by a blank line.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// Format returns domain.ExportCSV.
func (e *CSVExporter) Format() domain.ExportFormat { return domain.ExportCSV }

// Export writes the report.
func (e *CSVExporter) Export(w io.Writer, sc *domain.Scenario) error {
	if err := checkScenario(sc); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	for i, sec := range buildSections(sc) {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{sec.title}); err != nil {
			return err
		}
		if err := writer.Write(sec.header); err != nil {
			return err
		}
		for _, row := range sec.rows {
			record := make([]string, len(row))
			for j, c := range row {
				record[j] = c.String()
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
