package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

var referenceJSON bool

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Inspect reference survey data",
	Long: `Inspect the reference table used to predict channel overlaps.

The built-in table is used unless calculator.reference_path is set.`,
}

var referenceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured reference table",
	RunE:  runReferenceShow,
}

var referenceValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a reference table file",
	Long: `Parse a reference table and report rows, channel columns, pair columns
and cells that could not be read as numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: runReferenceValidate,
}

var referenceChannelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List the media channel categories",
	RunE:  runReferenceChannels,
}

func init() {
	referenceShowCmd.Flags().BoolVar(&referenceJSON, "json", false, "output the summary as JSON")
	referenceCmd.AddCommand(referenceShowCmd)
	referenceCmd.AddCommand(referenceValidateCmd)
	referenceCmd.AddCommand(referenceChannelsCmd)
	rootCmd.AddCommand(referenceCmd)
}

func runReferenceShow(cmd *cobra.Command, _ []string) error {
	if referenceService == nil {
		return errors.New("reference service not configured")
	}

	info, err := referenceService.Describe(commandContext(cmd))
	if err != nil {
		return err
	}

	if referenceJSON {
		return printJSON(cmd, info)
	}

	printReferenceSummary(cmd, info)
	cmd.Println()

	channels := info.Channels
	headers := append([]string{"Audience"}, channels...)
	rows := make([][]string, 0, len(info.Table.Rows))
	for i := range info.Table.Rows {
		row := &info.Table.Rows[i]
		cells := []string{row.AudienceName}
		for _, c := range channels {
			cells = append(cells, formatPercent(row.Reach(c)))
		}
		rows = append(rows, cells)
	}
	cmd.Println(renderTable(headers, rows))
	return nil
}

func runReferenceValidate(cmd *cobra.Command, args []string) error {
	if referenceService == nil {
		return errors.New("reference service not configured")
	}

	data, err := readReferenceFile(args[0])
	if err != nil {
		return err
	}

	info, err := referenceService.Validate(commandContext(cmd), data)
	if err != nil {
		return err
	}

	printReferenceSummary(cmd, info)
	if info.Rows == 0 {
		return fmt.Errorf("%s has no audience rows", info.Name)
	}
	cmd.Println()
	cmd.Println("Reference data is usable.")
	return nil
}

func runReferenceChannels(cmd *cobra.Command, _ []string) error {
	if calculatorService == nil {
		return errors.New("calculator service not configured")
	}

	cmd.Println("Media channels:")
	for _, c := range calculatorService.Channels() {
		cmd.Printf("  %s\n", c)
	}
	return nil
}

func printReferenceSummary(cmd *cobra.Command, info *driving.ReferenceInfo) {
	name := info.Name
	if info.Default {
		name += " (built-in)"
	}
	cmd.Printf("Reference data: %s\n", name)
	cmd.Printf("  Audiences: %d\n", info.Rows)
	cmd.Printf("  Channel columns: %d (%s)\n", len(info.Channels), strings.Join(info.Channels, ", "))
	cmd.Printf("  Pair columns: %d\n", info.Pairs)
	if info.ZeroedCells > 0 {
		cmd.Printf("  Unreadable cells treated as 0: %d\n", info.ZeroedCells)
	}
	if len(info.MissingColumns) > 0 {
		cmd.Printf("  Missing channel columns: %s\n", strings.Join(info.MissingColumns, ", "))
	}
	if len(info.MissingPairs) > 0 {
		pairs := make([]string, 0, len(info.MissingPairs))
		for _, p := range info.MissingPairs {
			pairs = append(pairs, p.String())
		}
		cmd.Printf("  Missing pair columns: %d (co-reach treated as 0)\n", len(pairs))
		if verbose {
			for _, p := range pairs {
				cmd.Printf("    %s\n", p)
			}
		}
	}
}
