package services

import (
	"fmt"
	"io"
	"sort"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService dispatches scenario reports to format-specific exporters.
type ExportService struct {
	exporters map[domain.ExportFormat]driven.ReportExporter
}

// NewExportService registers the given exporters by format.
func NewExportService(exporters ...driven.ReportExporter) *ExportService {
	s := &ExportService{exporters: make(map[domain.ExportFormat]driven.ReportExporter, len(exporters))}
	for _, e := range exporters {
		s.exporters[e.Format()] = e
	}
	return s
}

// Export writes the scenario in the given format.
func (s *ExportService) Export(w io.Writer, scenario *domain.Scenario, format domain.ExportFormat) error {
	if scenario == nil || scenario.Result == nil {
		return fmt.Errorf("%w: scenario has no result to export", domain.ErrInvalidInput)
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return fmt.Errorf("%w: no exporter for format %q", domain.ErrInvalidInput, format)
	}
	if err := exporter.Export(w, scenario); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	return nil
}

// Formats returns the registered formats, sorted.
func (s *ExportService) Formats() []domain.ExportFormat {
	formats := make([]domain.ExportFormat, 0, len(s.exporters))
	for f := range s.exporters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
