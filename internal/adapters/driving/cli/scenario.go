package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	scenarioJSON   bool
	scenarioFormat string
	scenarioOutput string
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage saved scenarios",
	Long: `Save, inspect, compare and export net reach calculations.

Scenarios are created with 'netreach calc --save NAME'.`,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show [scenario-id]",
	Short: "Show a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete [scenario-id]",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

var scenarioCompareCmd = &cobra.Command{
	Use:   "compare [scenario-id ...]",
	Short: "Compare scenarios side by side",
	Long:  `Compare net reach, gross reach and confidence of the given scenarios, or of all scenarios.`,
	RunE:  runScenarioCompare,
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export [scenario-id]",
	Short: "Export a scenario report",
	Long: `Write a report of a saved scenario.

The format is taken from --format, then from the --output extension,
then from the export.format setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenarioExport,
}

func init() {
	scenarioListCmd.Flags().BoolVar(&scenarioJSON, "json", false, "output as JSON")
	scenarioShowCmd.Flags().BoolVar(&scenarioJSON, "json", false, "output as JSON")
	scenarioCompareCmd.Flags().BoolVar(&scenarioJSON, "json", false, "output as JSON")
	scenarioExportCmd.Flags().StringVar(&scenarioFormat, "format", "", "report format (xlsx, csv, markdown, json)")
	scenarioExportCmd.Flags().StringVarP(&scenarioOutput, "output", "o", "", "output file (defaults to the scenario name)")

	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
	scenarioCmd.AddCommand(scenarioDeleteCmd)
	scenarioCmd.AddCommand(scenarioCompareCmd)
	scenarioCmd.AddCommand(scenarioExportCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioList(cmd *cobra.Command, _ []string) error {
	if scenarioService == nil {
		return errors.New("scenario service not configured")
	}

	scenarios, err := scenarioService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list scenarios: %w", err)
	}

	if scenarioJSON {
		return printJSON(cmd, scenarios)
	}

	if len(scenarios) == 0 {
		cmd.Println("No scenarios saved.")
		cmd.Println("Use 'netreach calc --save NAME' to save one.")
		return nil
	}

	cmd.Println("Saved scenarios:")
	for i := range scenarios {
		sc := &scenarios[i]
		reach := "-"
		if sc.Result != nil {
			reach = formatPercent(sc.Result.FinalReach)
		}
		cmd.Printf("  [%s] %s - %s, %s (%s)\n",
			sc.ID, sc.Name, sc.TargetAudience, reach, sc.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runScenarioShow(cmd *cobra.Command, args []string) error {
	if scenarioService == nil {
		return errors.New("scenario service not configured")
	}

	sc, err := scenarioService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get scenario: %w", err)
	}

	if scenarioJSON {
		return printJSON(cmd, sc)
	}

	cmd.Printf("Scenario: %s\n", sc.Name)
	cmd.Printf("ID: %s\n", sc.ID)
	cmd.Printf("Saved: %s\n", sc.CreatedAt.Format("2006-01-02 15:04"))
	plan := make([]string, 0, len(sc.Plan))
	for _, item := range sc.Plan {
		plan = append(plan, fmt.Sprintf("%s=%g", item.Name, item.Reach))
	}
	cmd.Printf("Plan: %s\n", strings.Join(plan, " "))
	cmd.Println()

	if sc.Result == nil {
		cmd.Println("(no result stored)")
		return nil
	}
	printResult(cmd, sc.Result)
	return nil
}

func runScenarioDelete(cmd *cobra.Command, args []string) error {
	if scenarioService == nil {
		return errors.New("scenario service not configured")
	}

	if err := scenarioService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}

	cmd.Printf("Deleted scenario: %s\n", args[0])
	return nil
}

func runScenarioCompare(cmd *cobra.Command, args []string) error {
	if scenarioService == nil {
		return errors.New("scenario service not configured")
	}

	summaries, err := scenarioService.Compare(commandContext(cmd), args)
	if err != nil {
		return fmt.Errorf("failed to compare scenarios: %w", err)
	}

	if scenarioJSON {
		return printJSON(cmd, summaries)
	}

	if len(summaries) == 0 {
		cmd.Println("No scenarios to compare.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			s.TargetAudience,
			s.City,
			fmt.Sprintf("%d", s.Channels),
			formatPercent(s.FinalReach),
			formatPercent(s.GrossReach),
			s.Confidence.String(),
		})
	}
	cmd.Println(renderTable(
		[]string{"Scenario", "Audience", "City", "Channels", "Net reach", "Gross reach", "Confidence"}, rows))
	return nil
}

func runScenarioExport(cmd *cobra.Command, args []string) error {
	if scenarioService == nil {
		return errors.New("scenario service not configured")
	}

	sc, err := scenarioService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get scenario: %w", err)
	}

	path := scenarioOutput
	if path == "" {
		format := resolveExportFormat("", scenarioFormat)
		path = fileSafeName(sc.Name) + "." + format.Extension()
	}

	if err := exportToFile(sc, path, scenarioFormat); err != nil {
		return fmt.Errorf("failed to export scenario: %w", err)
	}

	cmd.Printf("Exported %q to %s\n", sc.Name, path)
	return nil
}

// fileSafeName replaces characters that are awkward in file names.
func fileSafeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "scenario"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
