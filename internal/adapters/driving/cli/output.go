package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// maxTableWidth caps table width when stdout is not a terminal.
const maxTableWidth = 120

// terminalWidth returns the stdout width, or zero when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func formatKFactor(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// renderTable draws rows under headers. Numeric columns are right-aligned.
func renderTable(headers []string, rows [][]string) string {
	right := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	left := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return left
			}
			return right
		})

	if width := terminalWidth(); width > 0 && width < maxTableWidth {
		if natural := lipgloss.Width(t.String()); natural > width {
			t = t.Width(width)
		}
	}
	return t.String()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printResult writes a calculation result as text.
func printResult(cmd *cobra.Command, result *domain.CalculationResult) {
	cmd.Println(result.Header)
	cmd.Println(result.DataSourceMsg)
	cmd.Println()

	cmd.Printf("Net reach:   %s\n", formatPercent(result.FinalReach))
	cmd.Printf("Gross reach: %s\n", formatPercent(result.GrossReach))
	cmd.Printf("Confidence:  %s (distance %.3f)\n", result.Confidence, result.MinDistance)
	cmd.Printf("Matched:     %s\n", strings.Join(result.SourceAudiences, ", "))
	cmd.Println()

	cmd.Println("Incremental reach:")
	rows := make([][]string, 0, len(result.IncrementalData))
	for i, step := range result.IncrementalData {
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s", i+1, step.Name),
			formatPercent(step.Reach),
			formatPercent(step.CumulativeReach),
			formatPercent(step.Increment),
			formatPercent(step.Exclusivity),
		})
	}
	cmd.Println(renderTable([]string{"Channel", "Reach", "Cumulative", "Increment", "Exclusivity"}, rows))
	cmd.Println()

	if len(result.KFactors) > 0 {
		cmd.Println("K-factors:")
		rows = rows[:0]
		for _, k := range result.KFactors {
			rows = append(rows, []string{k.Pair.String(), formatKFactor(k.Value)})
		}
		cmd.Println(renderTable([]string{"Pair", "K"}, rows))
		cmd.Println()
	}

	if len(result.DuplicationMatrix.Channels) > 1 {
		cmd.Println("Duplication matrix (share of row audience also reached by column):")
		m := result.DuplicationMatrix
		headers := append([]string{""}, m.Channels...)
		rows = rows[:0]
		for i, name := range m.Channels {
			row := []string{name}
			for _, v := range m.Cells[i] {
				row = append(row, formatPercent(v))
			}
			rows = append(rows, row)
		}
		cmd.Println(renderTable(headers, rows))
		cmd.Println()
	}

	if len(result.ExclusionAnalysis) > 0 {
		cmd.Println("Exclusion analysis (net reach lost without the channel):")
		rows = rows[:0]
		for _, e := range result.ExclusionAnalysis {
			rows = append(rows, []string{e.Name, formatPercent(e.Loss)})
		}
		cmd.Println(renderTable([]string{"Channel", "Loss"}, rows))
	}
}
