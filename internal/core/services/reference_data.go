package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

// Ensure ReferenceService implements the interface.
var _ driving.ReferenceService = (*ReferenceService)(nil)

// ReferenceService inspects reference tables.
type ReferenceService struct {
	source   driven.ReferenceSource
	channels []string
}

// NewReferenceService creates a reference service checking coverage of channels.
func NewReferenceService(source driven.ReferenceSource, channels []string) *ReferenceService {
	if len(channels) == 0 {
		channels = domain.DefaultChannels()
	}
	return &ReferenceService{source: source, channels: channels}
}

// Describe parses the configured reference data and summarises it.
func (s *ReferenceService) Describe(ctx context.Context) (*driving.ReferenceInfo, error) {
	if s.source == nil {
		return nil, errors.New("reference source not configured")
	}
	data, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, data)
}

// Validate parses data and reports rows, channels, pair coverage and zeroed cells.
func (s *ReferenceService) Validate(_ context.Context, data *domain.ReferenceData) (*driving.ReferenceInfo, error) {
	table, err := ParseReferenceTable(data.Content)
	if err != nil {
		return nil, err
	}

	info := &driving.ReferenceInfo{
		Name:        data.Name,
		Default:     data.Default,
		Rows:        len(table.Rows),
		Channels:    table.ChannelColumns(),
		Pairs:       len(table.PairColumns()),
		ZeroedCells: table.ZeroedCells,
		Table:       table,
	}

	present := make(map[string]bool, len(table.Columns))
	for _, c := range table.Columns {
		present[c] = true
	}
	for _, c := range domain.MetadataColumns() {
		if !present[c] {
			info.MissingColumns = append(info.MissingColumns, c)
		}
	}
	for i := 0; i < len(s.channels); i++ {
		for j := i + 1; j < len(s.channels); j++ {
			pair := domain.NewPairKey(s.channels[i], s.channels[j])
			if !present[string(pair)] {
				info.MissingPairs = append(info.MissingPairs, pair)
			}
		}
	}

	return info, nil
}
