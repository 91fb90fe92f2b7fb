// Package cli provides the netreach command-line interface built on cobra.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
	"github.com/custodia-labs/netreach/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services used by the commands. They are injected by main before Execute.
var (
	calculatorService driving.CalculatorService
	scenarioService   driving.ScenarioService
	referenceService  driving.ReferenceService
	exportService     driving.ExportService
	settingsService   driving.SettingsService
	planLoader        PlanLoader
	referenceWatcher  ReferenceWatcher
)

// PlanLoader reads a media plan file from disk.
type PlanLoader func(path string) (*domain.PlanFile, error)

// ReferenceWatcher reports changes to the configured reference table.
type ReferenceWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Services groups the core services the CLI drives.
type Services struct {
	Calculator driving.CalculatorService
	Scenario   driving.ScenarioService
	Reference  driving.ReferenceService
	Export     driving.ExportService
	Settings   driving.SettingsService
	PlanLoader PlanLoader

	// Watcher is set when the reference table is read from a file.
	Watcher ReferenceWatcher
}

var rootCmd = &cobra.Command{
	Use:   "netreach",
	Short: "Estimate the net reach of a media plan",
	Long: `netreach estimates the deduplicated reach of a multi-channel media plan.

Give it per-channel reach percentages and a target audience such as
"All 18-44 BC" and it predicts pairwise channel overlaps from a reference
survey table, builds up reach channel by channel and reports how much each
channel contributes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print calculation details to stderr")
}

// SetServices injects the core services.
func SetServices(s Services) {
	calculatorService = s.Calculator
	scenarioService = s.Scenario
	referenceService = s.Reference
	exportService = s.Export
	settingsService = s.Settings
	planLoader = s.PlanLoader
	referenceWatcher = s.Watcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// watchReference starts the reference watcher when one is configured.
// A nil channel is returned when there is nothing to watch.
func watchReference(ctx context.Context) <-chan struct{} {
	if referenceWatcher == nil {
		return nil
	}
	changes, err := referenceWatcher.Watch(ctx)
	if err != nil {
		logger.Warn("not watching reference data: %v", err)
		return nil
	}
	return changes
}

// readReferenceFile loads a user reference table from disk.
func readReferenceFile(path string) (*domain.ReferenceData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference data: %w", err)
	}
	return &domain.ReferenceData{
		Name:    filepath.Base(path),
		Content: content,
	}, nil
}
