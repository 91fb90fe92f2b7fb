// Package export writes scenario reports as xlsx workbooks, CSV, markdown or JSON.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// cellKind tells format writers how to render a value.
type cellKind int

const (
	kindText cellKind = iota
	kindPercent
	kindNumber
)

type cell struct {
	kind  cellKind
	text  string
	value float64
}

func text(s string) cell { return cell{kind: kindText, text: s} }
func percent(v float64) cell { return cell{kind: kindPercent, value: v} }
func number(v float64) cell { return cell{kind: kindNumber, value: v} }
func (c cell) isNumeric() bool { return c.kind != kindText }

// String renders the cell as text: percentages with one decimal, numbers with three.
func (c cell) String() string {
	switch c.kind {
	case kindPercent:
		return fmt.Sprintf("%.1f%%", c.value*100)
	case kindNumber:
		return fmt.Sprintf("%.3f", c.value)
	default:
		return c.text
	}
}

// section is one titled table of a report.
type section struct {
	title  string
	header []string
	rows   [][]cell
}

// buildSections lays a scenario out as the tables shared by every tabular format.
func buildSections(sc *domain.Scenario) []section {
	res := sc.Result

	summary := section{
		title:  "Summary",
		header: []string{"Field", "Value"},
		rows: [][]cell{
			{text("Scenario"), text(sc.Name)},
			{text("Target audience"), text(sc.TargetAudience)},
			{text("City"), text(sc.City)},
			{text("Created"), text(sc.CreatedAt.UTC().Format(time.RFC3339))},
			{text("Net reach"), percent(res.FinalReach)},
			{text("Gross reach"), percent(res.GrossReach)},
			{text("Confidence"), text(res.Confidence.String())},
			{text("Nearest distance"), number(res.MinDistance)},
			{text("Source audiences"), text(strings.Join(res.SourceAudiences, ", "))},
			{text("Data source"), text(res.DataSourceMsg)},
		},
	}

	plan := section{title: "Media plan", header: []string{"Channel", "Reach"}}
	for _, item := range res.Plan {
		plan.rows = append(plan.rows, []cell{text(item.Name), percent(item.Reach)})
	}

	incremental := section{
		title:  "Incremental reach",
		header: []string{"Channel", "Reach", "Cumulative reach", "Increment", "Exclusivity"},
	}
	for _, step := range res.IncrementalData {
		incremental.rows = append(incremental.rows, []cell{
			text(step.Name), percent(step.Reach), percent(step.CumulativeReach),
			percent(step.Increment), percent(step.Exclusivity),
		})
	}

	kFactors := section{title: "K-factors", header: []string{"Pair", "K"}}
	for _, k := range res.KFactors {
		kFactors.rows = append(kFactors.rows, []cell{text(k.Pair.String()), number(k.Value)})
	}

	matrix := section{
		title:  "Duplication matrix",
		header: append([]string{"Channel"}, res.DuplicationMatrix.Channels...),
	}
	for i, name := range res.DuplicationMatrix.Channels {
		row := []cell{text(name)}
		if i < len(res.DuplicationMatrix.Cells) {
			for _, v := range res.DuplicationMatrix.Cells[i] {
				row = append(row, percent(v))
			}
		}
		matrix.rows = append(matrix.rows, row)
	}

	exclusions := section{title: "Exclusion analysis", header: []string{"Channel", "Reach lost"}}
	for _, e := range res.ExclusionAnalysis {
		exclusions.rows = append(exclusions.rows, []cell{text(e.Name), percent(e.Loss)})
	}

	return []section{summary, plan, incremental, kFactors, matrix, exclusions}
}

func checkScenario(sc *domain.Scenario) error {
	if sc == nil || sc.Result == nil {
		return fmt.Errorf("%w: scenario has no result", domain.ErrInvalidInput)
	}
	return nil
}
