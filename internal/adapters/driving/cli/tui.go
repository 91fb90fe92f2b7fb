package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/netreach/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The calculator screen has one field per media channel. Enter reach
percentages, press enter to calculate and ctrl+s to save the result
as a scenario.

Controls:
  tab, shift+tab - Move between fields
  ↑/k, ↓/j       - Navigate lists
  Enter          - Select / Calculate
  ctrl+s         - Save scenario
  d              - Delete scenario
  Esc            - Back
  ?              - Help
  q              - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the injected services.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Calculator: calculatorService,
		Scenario:   scenarioService,
		Settings:   settingsService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ctx := commandContext(cmd)
	ports := tuiPorts()
	ports.ReferenceChanges = watchReference(ctx)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
