package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure calculator defaults, scenario storage and report export.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting by its config key.

Keys:
  calculator.reference_path    user reference table (empty for the built-in table)
  calculator.default_city      city used when none is given
  calculator.default_audience  audience used when none is given
  calculator.channels          comma-separated channel categories
  calculator.cache_size        parsed reference tables kept in memory
  storage.driver               sqlite, memory or postgres
  storage.postgres_dsn         connection string for the postgres driver
  export.format                xlsx, csv, markdown or json`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Calculator]")
	if settings.Calculator.ReferencePath != "" {
		cmd.Printf("  Reference data: %s\n", settings.Calculator.ReferencePath)
	} else {
		cmd.Printf("  Reference data: (built-in)\n")
	}
	cmd.Printf("  Default audience: %s\n", settings.Calculator.DefaultAudience)
	cmd.Printf("  Default city: %s\n", settings.Calculator.DefaultCity)
	cmd.Printf("  Channels: %s\n", strings.Join(settings.Calculator.Channels, ", "))
	cmd.Printf("  Cache size: %d\n", settings.Calculator.CacheSize)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Driver: %s\n", settings.Storage.Driver.Description())
	if settings.Storage.Driver == domain.StoragePostgres {
		if settings.Storage.PostgresDSN != "" {
			cmd.Printf("  DSN: %s\n", maskDSN(settings.Storage.PostgresDSN))
		} else {
			cmd.Printf("  DSN: (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Format: %s\n", settings.Export.Format)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'netreach settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

//nolint:gocognit // CLI interactive flow
func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("netreach Setup Wizard")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Printf("Default target audience [%s]: ", settings.Calculator.DefaultAudience)
	if input := readLine(reader); input != "" {
		settings.Calculator.DefaultAudience = input
	}

	cmd.Printf("Default city [%s]: ", settings.Calculator.DefaultCity)
	if input := readLine(reader); input != "" {
		settings.Calculator.DefaultCity = input
	}

	cmd.Printf("Reference data file (empty for built-in) [%s]: ", settings.Calculator.ReferencePath)
	if input := readLine(reader); input != "" {
		settings.Calculator.ReferencePath = input
	}
	cmd.Println()

	drivers := []domain.StorageDriver{domain.StorageSQLite, domain.StorageMemory, domain.StoragePostgres}
	cmd.Println("Scenario storage:")
	current := 1
	for i, d := range drivers {
		cmd.Printf("  %d. %s\n", i+1, d.Description())
		if d == settings.Storage.Driver {
			current = i + 1
		}
	}
	cmd.Printf("Select [%d]: ", current)
	settings.Storage.Driver = drivers[parseChoice(readLine(reader), len(drivers), current)-1]

	if settings.Storage.Driver == domain.StoragePostgres {
		cmd.Print("PostgreSQL DSN: ")
		if dsn := readSecret(reader); dsn != "" {
			settings.Storage.PostgresDSN = dsn
		}
		cmd.Println()
	}
	cmd.Println()

	formats := []domain.ExportFormat{domain.ExportXLSX, domain.ExportCSV, domain.ExportMarkdown, domain.ExportJSON}
	cmd.Println("Default export format:")
	current = 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f)
		if f == settings.Export.Format {
			current = i + 1
		}
	}
	cmd.Printf("Select [%d]: ", current)
	settings.Export.Format = formats[parseChoice(readLine(reader), len(formats), current)-1]
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret(fallback *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(fallback)
}

// maskDSN hides the password of a connection string.
func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err == nil && u.Scheme != "" && u.User != nil {
		return u.Redacted()
	}
	return maskKeyValueDSN(dsn)
}

// maskKeyValueDSN masks password=... in "host=x password=y" style strings.
func maskKeyValueDSN(dsn string) string {
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
