package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
	"github.com/custodia-labs/netreach/internal/logger"
)

// Ensure CalculatorService implements the interface.
var _ driving.CalculatorService = (*CalculatorService)(nil)

// CalculatorService runs the net reach pipeline:
// load -> match -> predict -> build -> diagnose.
//
// A calculation holds no state between calls. The only shared value is an
// optional cache of parsed reference tables keyed by the SHA-256 of their
// bytes; cached tables are never mutated, so concurrent calls are safe.
type CalculatorService struct {
	source   driven.ReferenceSource
	channels []string
	cache    *lru.Cache[string, *domain.ReferenceTable]
}

// NewCalculatorService creates a calculator reading reference data from source.
// An empty channel list uses the default categories; a cache size of zero
// disables table caching.
func NewCalculatorService(source driven.ReferenceSource, settings domain.CalculatorSettings) *CalculatorService {
	channels := settings.Channels
	if len(channels) == 0 {
		channels = domain.DefaultChannels()
	}

	s := &CalculatorService{
		source:   source,
		channels: append([]string(nil), channels...),
	}
	if settings.CacheSize > 0 {
		cache, err := lru.New[string, *domain.ReferenceTable](settings.CacheSize)
		if err == nil {
			s.cache = cache
		}
	}
	return s
}

// Channels returns the configured channel category set.
func (s *CalculatorService) Channels() []string {
	return append([]string(nil), s.channels...)
}

// Calculate estimates the net reach of the request's media plan.
func (s *CalculatorService) Calculate(
	ctx context.Context, req domain.CalculationRequest,
) (*domain.CalculationResult, error) {
	logger.Section("Net Reach Calculation")

	data := req.ReferenceData
	if data == nil {
		if s.source == nil {
			return nil, errors.New("reference source not configured")
		}
		loaded, err := s.source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading reference data: %w", err)
		}
		data = loaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.parseTable(data.Content)
	if err != nil {
		return nil, err
	}
	logger.Debug("Reference data %q: %d rows, %d columns", data.Name, len(table.Rows), len(table.Columns))

	audience, err := ParseAudience(req.TargetAudience)
	if err != nil {
		return nil, err
	}
	logger.Debug("Audience: gender=%s income=%s age=%d-%d",
		audience.Gender, audience.IncomeGroup, audience.AgeMin, audience.AgeMax)

	plan, err := s.normalisePlan(req.Plan)
	if err != nil {
		return nil, err
	}

	match, err := MatchAudience(audience, table.Rows)
	if err != nil {
		return nil, err
	}
	logger.Info("Matched %q (distance %.3f, confidence %s)",
		match.Primary.AudienceName, match.PrimaryDistance, match.Confidence)
	if match.Secondary != nil {
		logger.Debug("Secondary match %q (distance %.3f)", match.Secondary.AudienceName, match.SecondaryDistance)
	}

	kFactors := PredictKFactors(s.channels, match)
	overlaps := PlanOverlaps(plan, kFactors)
	logger.Debug("Predicted %d K-factors, %d plan pairs", len(kFactors), len(overlaps))

	steps := BuildIncremental(plan, overlaps)
	finalReach := FinalReach(steps)
	logger.Info("Net reach %.1f%% over %d channels", finalReach*100, len(plan))

	return &domain.CalculationResult{
		Header:            fmt.Sprintf("Results for audience: %s (%s)", req.TargetAudience, req.City),
		FinalReach:        finalReach,
		GrossReach:        GrossReach(plan),
		Confidence:        match.Confidence,
		MinDistance:       match.PrimaryDistance,
		DataSourceMsg:     dataSourceMessage(data),
		SourceAudiences:   match.SourceAudiences(),
		Audience:          audience,
		Plan:              plan,
		IncrementalData:   steps,
		KFactors:          RelevantKFactors(overlaps, kFactors),
		DuplicationMatrix: BuildDuplicationMatrix(plan, overlaps),
		ExclusionAnalysis: AnalyzeExclusions(plan, overlaps, finalReach),
	}, nil
}

// parseTable parses content, reusing a cached table for identical bytes.
func (s *CalculatorService) parseTable(content []byte) (*domain.ReferenceTable, error) {
	if s.cache == nil {
		return ParseReferenceTable(content)
	}

	sum := sha256.Sum256(content)
	key := hex.EncodeToString(sum[:])
	if table, ok := s.cache.Get(key); ok {
		logger.Debug("Reference table cache hit")
		return table, nil
	}

	table, err := ParseReferenceTable(content)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, table)
	return table, nil
}

// normalisePlan drops items without positive reach, validates the rest and
// converts percentages to fractions. Input order is kept.
func (s *CalculatorService) normalisePlan(items []domain.PlanItem) ([]domain.PlanItem, error) {
	plan := make([]domain.PlanItem, 0, len(items))
	for _, item := range items {
		if math.IsNaN(item.Reach) || item.Reach <= 0 {
			continue
		}
		plan = append(plan, domain.PlanItem{Name: strings.TrimSpace(item.Name), Reach: item.Reach})
	}

	if len(plan) == 0 {
		return nil, domain.NewCalcError(domain.CodeEmptyPlan, domain.ErrEmptyPlan,
			"enter a reach greater than 0 for at least one media channel")
	}

	known := make(map[string]bool, len(s.channels))
	for _, c := range s.channels {
		known[c] = true
	}
	seen := make(map[string]bool, len(plan))

	for i, item := range plan {
		if !known[item.Name] {
			return nil, domain.NewCalcError(domain.CodeInvalidPlan, domain.ErrUnknownChannel,
				"unknown media channel %q (known: %s)", item.Name, strings.Join(s.channels, ", "))
		}
		if seen[item.Name] {
			return nil, domain.NewCalcError(domain.CodeInvalidPlan, domain.ErrDuplicateChannel,
				"media channel %q appears more than once", item.Name)
		}
		if item.Reach > 100 {
			return nil, domain.NewCalcError(domain.CodeInvalidPlan, domain.ErrInvalidInput,
				"reach of %q is %.1f%%, must be at most 100%%", item.Name, item.Reach)
		}
		seen[item.Name] = true
		plan[i].Reach = item.Reach / 100
	}

	return plan, nil
}

func dataSourceMessage(data *domain.ReferenceData) string {
	if data.Default {
		return "(using default reference data)"
	}
	return fmt.Sprintf("(using uploaded file: %s)", data.Name)
}
