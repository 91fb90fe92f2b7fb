package domain

const unknownDescription = "Unknown"

// StorageDriver selects the scenario store backend.
type StorageDriver string

// Available storage drivers.
const (
	// StorageSQLite is a local SQLite database file.
	StorageSQLite StorageDriver = "sqlite"

	// StorageMemory keeps scenarios for the lifetime of the process.
	StorageMemory StorageDriver = "memory"

	// StoragePostgres is a shared PostgreSQL database.
	StoragePostgres StorageDriver = "postgres"
)

// IsValid returns true if the driver is recognised.
func (d StorageDriver) IsValid() bool {
	switch d {
	case StorageSQLite, StorageMemory, StoragePostgres:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d StorageDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StorageDriver) Description() string {
	switch d {
	case StorageSQLite:
		return "SQLite (local file)"
	case StorageMemory:
		return "Memory (not persisted)"
	case StoragePostgres:
		return "PostgreSQL (shared)"
	default:
		return unknownDescription
	}
}

// ExportFormat identifies a report format.
type ExportFormat string

// Available export formats.
const (
	ExportXLSX     ExportFormat = "xlsx"
	ExportCSV      ExportFormat = "csv"
	ExportMarkdown ExportFormat = "markdown"
	ExportJSON     ExportFormat = "json"
)

// IsValid returns true if the format is recognised.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportXLSX, ExportCSV, ExportMarkdown, ExportJSON:
		return true
	default:
		return false
	}
}

// Extension returns the file extension for the format, without the dot.
func (f ExportFormat) Extension() string {
	if f == ExportMarkdown {
		return "md"
	}
	return string(f)
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}

// CalculatorSettings holds calculation defaults.
type CalculatorSettings struct {
	// ReferencePath is a user reference table. Empty uses the built-in table.
	ReferencePath string

	// DefaultCity is used when a request has no city.
	DefaultCity string

	// DefaultAudience is used when a request has no target audience.
	DefaultAudience string

	// Channels is the ordered channel category set.
	Channels []string

	// CacheSize is the number of parsed reference tables kept in memory.
	CacheSize int
}

// StorageSettings holds scenario store configuration.
type StorageSettings struct {
	Driver      StorageDriver
	PostgresDSN string
}

// ExportSettings holds report export configuration.
type ExportSettings struct {
	Format ExportFormat
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Calculator CalculatorSettings
	Storage    StorageSettings
	Export     ExportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Calculator: CalculatorSettings{
			DefaultCity:     "RF",
			DefaultAudience: "All 18-44",
			Channels:        DefaultChannels(),
			CacheSize:       8,
		},
		Storage: StorageSettings{
			Driver: StorageSQLite,
		},
		Export: ExportSettings{
			Format: ExportXLSX,
		},
	}
}
