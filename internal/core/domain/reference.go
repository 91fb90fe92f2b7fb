package domain

// Metadata column names of a reference table.
const (
	ColumnAudienceName = "AudienceName"
	ColumnGender       = "Gender"
	ColumnAgeMin       = "Age_min"
	ColumnAgeMax       = "Age_max"
	ColumnIncomeGroup  = "Income_Group"
)

// MetadataColumns returns the mandatory metadata columns in canonical order.
func MetadataColumns() []string {
	return []string{ColumnAudienceName, ColumnGender, ColumnAgeMin, ColumnAgeMax, ColumnIncomeGroup}
}

// ReferenceRow is one historical audience observation.
// Values maps a channel name or canonical pair key to a fraction in [0,1].
// Rows are never mutated after loading.
type ReferenceRow struct {
	AudienceName string
	Gender       Gender
	IncomeGroup  IncomeGroup
	AgeMin       int
	AgeMax       int
	Values       map[string]float64
}

// Profile returns the audience profile described by the row metadata.
func (r *ReferenceRow) Profile() AudienceProfile {
	return AudienceProfile{
		Gender:      r.Gender,
		IncomeGroup: r.IncomeGroup,
		AgeMin:      r.AgeMin,
		AgeMax:      r.AgeMax,
	}
}

// Reach returns the reach fraction of a channel, or 0 if the column is absent.
func (r *ReferenceRow) Reach(channel string) float64 {
	return r.Values[channel]
}

// CoReach returns the co-reach fraction of a pair, or 0 if the column is absent.
func (r *ReferenceRow) CoReach(pair PairKey) float64 {
	return r.Values[string(pair)]
}

// ReferenceTable is a parsed reference dataset.
type ReferenceTable struct {
	// Columns is the header in file order, with pair columns canonicalised.
	Columns []string

	// Rows holds the observations in file order.
	Rows []ReferenceRow

	// ZeroedCells counts numeric cells that failed to parse and were set to 0.
	ZeroedCells int
}

// ChannelColumns returns the non-metadata, non-pair columns.
func (t *ReferenceTable) ChannelColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if isMetadataColumn(c) {
			continue
		}
		if _, ok := ParsePairKey(c); ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// PairColumns returns the pair columns as canonical keys.
func (t *ReferenceTable) PairColumns() []PairKey {
	var out []PairKey
	for _, c := range t.Columns {
		if key, ok := ParsePairKey(c); ok {
			out = append(out, key)
		}
	}
	return out
}

// IsMetadataColumn reports whether name is one of the fixed metadata columns.
func IsMetadataColumn(name string) bool {
	return isMetadataColumn(name)
}

func isMetadataColumn(name string) bool {
	switch name {
	case ColumnAudienceName, ColumnGender, ColumnAgeMin, ColumnAgeMax, ColumnIncomeGroup:
		return true
	default:
		return false
	}
}

// ReferenceData is raw reference table bytes with a display name.
type ReferenceData struct {
	// Name identifies the data in user-facing messages (e.g. a file name).
	Name string

	// Content is the raw delimited text.
	Content []byte

	// Default is true when the data is the built-in table.
	Default bool
}
