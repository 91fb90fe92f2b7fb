package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// fallbackAudience is used when neither a flag, a plan file nor settings name one.
const fallbackAudience = "All 18-44"

var (
	calcAudience string
	calcCity     string
	calcPlan     []string
	calcPlanFile string
	calcData     string
	calcJSON     bool
	calcSave     string
	calcOutput   string
	calcFormat   string
)

var calcCmd = &cobra.Command{
	Use:   "calc [channel=reach ...]",
	Short: "Estimate the net reach of a media plan",
	Long: `Estimates the deduplicated reach of a media plan for a target audience.

Each channel is given as NAME=REACH with reach in percent, either as
arguments or with --plan. A plan can also be read from a YAML, TOML or
JSON file with --plan-file.

Examples:
  netreach calc TV=50 Internet=30
  netreach calc --audience "W 25-54 BC" --plan TV=60 --plan Radio=20
  netreach calc --plan-file plan.yaml --save "Q3 launch"`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcAudience, "audience", "a", "", "target audience, e.g. \"All 18-44 BC\"")
	calcCmd.Flags().StringVar(&calcCity, "city", "", "city shown in the result header")
	calcCmd.Flags().StringArrayVarP(&calcPlan, "plan", "p", nil, "channel reach as NAME=PERCENT (repeatable)")
	calcCmd.Flags().StringVarP(&calcPlanFile, "plan-file", "f", "", "read the media plan from a YAML, TOML or JSON file")
	calcCmd.Flags().StringVar(&calcData, "data", "", "use this reference table instead of the configured one")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "output the result as JSON")
	calcCmd.Flags().StringVar(&calcSave, "save", "", "save the calculation as a named scenario")
	calcCmd.Flags().StringVarP(&calcOutput, "output", "o", "", "write a report of the result to this file")
	calcCmd.Flags().StringVar(&calcFormat, "format", "", "report format for --output (xlsx, csv, markdown, json)")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	if calculatorService == nil {
		return errors.New("calculator service not configured")
	}

	req, err := buildCalcRequest(args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	result, err := calculatorService.Calculate(ctx, req)
	if err != nil {
		return err
	}

	var saved *domain.Scenario
	if calcSave != "" {
		if scenarioService == nil {
			return errors.New("scenario service not configured")
		}
		saved, err = scenarioService.Save(ctx, calcSave, req, result)
		if err != nil {
			return fmt.Errorf("failed to save scenario: %w", err)
		}
	}

	if calcOutput != "" {
		sc := saved
		if sc == nil {
			sc = &domain.Scenario{
				Name:           "Calculation",
				TargetAudience: req.TargetAudience,
				City:           req.City,
				Plan:           req.Plan,
				Result:         result,
			}
		}
		if err := exportToFile(sc, calcOutput, calcFormat); err != nil {
			return err
		}
	}

	if calcJSON {
		return printJSON(cmd, result)
	}

	printResult(cmd, result)
	if saved != nil {
		cmd.Println()
		cmd.Printf("Saved scenario %q (%s)\n", saved.Name, saved.ID)
	}
	if calcOutput != "" {
		cmd.Printf("Report written to %s\n", calcOutput)
	}
	return nil
}

// buildCalcRequest merges the plan file, flags and positional items.
// Flags override values read from the plan file; settings fill the gaps.
func buildCalcRequest(args []string) (domain.CalculationRequest, error) {
	var req domain.CalculationRequest

	if calcPlanFile != "" {
		if planLoader == nil {
			return req, errors.New("plan file reader not configured")
		}
		file, err := planLoader(calcPlanFile)
		if err != nil {
			return req, fmt.Errorf("failed to read plan file: %w", err)
		}
		req.Plan = append(req.Plan, file.Plan...)
		req.TargetAudience = file.TargetAudience
		req.City = file.City
	}

	for _, raw := range append(append([]string(nil), calcPlan...), args...) {
		item, err := parsePlanItem(raw)
		if err != nil {
			return req, err
		}
		req.Plan = append(req.Plan, item)
	}

	if calcAudience != "" {
		req.TargetAudience = calcAudience
	}
	if calcCity != "" {
		req.City = calcCity
	}
	if req.TargetAudience == "" || req.City == "" {
		applyDefaults(&req)
	}

	if calcData != "" {
		data, err := readReferenceFile(calcData)
		if err != nil {
			return req, err
		}
		req.ReferenceData = data
	}

	return req, nil
}

// applyDefaults fills an empty audience or city from settings.
func applyDefaults(req *domain.CalculationRequest) {
	audience, city := fallbackAudience, domain.DefaultAppSettings().Calculator.DefaultCity
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			audience = settings.Calculator.DefaultAudience
			city = settings.Calculator.DefaultCity
		}
	}
	if req.TargetAudience == "" {
		req.TargetAudience = audience
	}
	if req.City == "" {
		req.City = city
	}
}

// parsePlanItem parses "TV=50", "TV=50%" or "TV=12,5".
func parsePlanItem(raw string) (domain.PlanItem, error) {
	idx := strings.LastIndex(raw, "=")
	if idx <= 0 {
		return domain.PlanItem{}, fmt.Errorf("%w: plan item %q must be NAME=PERCENT", domain.ErrInvalidInput, raw)
	}

	name := strings.TrimSpace(raw[:idx])
	value := strings.TrimSpace(raw[idx+1:])
	value = strings.TrimSuffix(value, "%")
	value = strings.ReplaceAll(value, ",", ".")

	reach, err := strconv.ParseFloat(value, 64)
	if err != nil || name == "" {
		return domain.PlanItem{}, fmt.Errorf("%w: plan item %q must be NAME=PERCENT", domain.ErrInvalidInput, raw)
	}
	return domain.PlanItem{Name: name, Reach: reach}, nil
}

// exportToFile writes a report for sc to path.
// An empty format is taken from the extension, then from settings.
func exportToFile(sc *domain.Scenario, path, format string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	f := resolveExportFormat(path, format)
	if !f.IsValid() {
		return fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, f)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := exportService.Export(out, sc, f); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return err
	}
	return out.Close()
}

func resolveExportFormat(path, format string) domain.ExportFormat {
	if format != "" {
		return domain.ExportFormat(format)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range []domain.ExportFormat{domain.ExportXLSX, domain.ExportCSV, domain.ExportMarkdown, domain.ExportJSON} {
		if ext == f.Extension() {
			return f
		}
	}

	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			return settings.Export.Format
		}
	}
	return domain.ExportXLSX
}
