package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

var _ driven.ReportExporter = (*MarkdownExporter)(nil)

// MarkdownExporter writes the report as GitHub-flavoured markdown tables.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a markdown exporter.
func NewMarkdownExporter() *MarkdownExporter { return &MarkdownExporter{} }

// Format returns domain.ExportMarkdown.
func (e *MarkdownExporter) Format() domain.ExportFormat { return domain.ExportMarkdown }

// Export writes the report.
func (e *MarkdownExporter) Export(w io.Writer, sc *domain.Scenario) error {
	if err := checkScenario(sc); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", escapeMarkdown(sc.Name))
	if sc.Result.Header != "" {
		fmt.Fprintf(bw, "%s\n\n", escapeMarkdown(sc.Result.Header))
	}

	for _, sec := range buildSections(sc) {
		fmt.Fprintf(bw, "## %s\n\n", sec.title)
		if len(sec.rows) == 0 {
			fmt.Fprint(bw, "_none_\n\n")
			continue
		}

		writeMarkdownRow(bw, sec.header)
		align := make([]string, len(sec.header))
		for i := range align {
			align[i] = "---"
			if i > 0 && i < len(sec.rows[0]) && sec.rows[0][i].isNumeric() {
				align[i] = "---:"
			}
		}
		writeMarkdownRow(bw, align)

		for _, row := range sec.rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = escapeMarkdown(c.String())
			}
			writeMarkdownRow(bw, cells)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func writeMarkdownRow(w io.Writer, cells []string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
