package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyReferencePath   = "calculator.reference_path"
	keyDefaultCity     = "calculator.default_city"
	keyDefaultAudience = "calculator.default_audience"
	keyChannels        = "calculator.channels"
	keyCacheSize       = "calculator.cache_size"
	keyStorageDriver   = "storage.driver"
	keyPostgresDSN     = "storage.postgres_dsn" //nolint:gosec // G101: config key name, not a credential.
	keyExportFormat    = "export.format"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Calculator: domain.CalculatorSettings{
			ReferencePath:   s.configStore.GetString(keyReferencePath),
			DefaultCity:     s.getString(keyDefaultCity, defaults.Calculator.DefaultCity),
			DefaultAudience: s.getString(keyDefaultAudience, defaults.Calculator.DefaultAudience),
			Channels:        s.getChannels(defaults.Calculator.Channels),
			CacheSize:       s.getCacheSize(defaults.Calculator.CacheSize),
		},
		Storage: domain.StorageSettings{
			Driver:      s.getDriver(defaults.Storage.Driver),
			PostgresDSN: s.configStore.GetString(keyPostgresDSN),
		},
		Export: domain.ExportSettings{
			Format: s.getExportFormat(defaults.Export.Format),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyReferencePath, settings.Calculator.ReferencePath},
		{keyDefaultCity, settings.Calculator.DefaultCity},
		{keyDefaultAudience, settings.Calculator.DefaultAudience},
		{keyChannels, settings.Calculator.Channels},
		{keyCacheSize, settings.Calculator.CacheSize},
		{keyStorageDriver, settings.Storage.Driver.String()},
		{keyPostgresDSN, settings.Storage.PostgresDSN},
		{keyExportFormat, settings.Export.Format.String()},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyReferencePath:
		if value != "" {
			if _, err := os.Stat(value); err != nil {
				return fmt.Errorf("reference file: %w", err)
			}
		}
		return s.configStore.Set(key, value)

	case keyDefaultCity, keyDefaultAudience, keyPostgresDSN:
		return s.configStore.Set(key, value)

	case keyChannels:
		channels := splitList(value)
		if len(channels) < 2 {
			return fmt.Errorf("%w: at least two channels are required", domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, channels)

	case keyCacheSize:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: cache size must be a non-negative integer", domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, n)

	case keyStorageDriver:
		driver := domain.StorageDriver(value)
		if !driver.IsValid() {
			return fmt.Errorf("invalid storage driver: %s", value)
		}
		return s.configStore.Set(key, driver.String())

	case keyExportFormat:
		format := domain.ExportFormat(value)
		if !format.IsValid() {
			return fmt.Errorf("invalid export format: %s", value)
		}
		return s.configStore.Set(key, format.String())

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns the recognised config keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyReferencePath, keyDefaultCity, keyDefaultAudience, keyChannels,
		keyCacheSize, keyStorageDriver, keyPostgresDSN, keyExportFormat,
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Storage.Driver == domain.StoragePostgres && settings.Storage.PostgresDSN == "" {
		return fmt.Errorf("storage driver %q requires %s to be set",
			settings.Storage.Driver.Description(), keyPostgresDSN)
	}

	if path := settings.Calculator.ReferencePath; path != "" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("reference file %s: %w", path, err)
		}
	}

	seen := make(map[string]bool, len(settings.Calculator.Channels))
	for _, c := range settings.Calculator.Channels {
		if seen[c] {
			return fmt.Errorf("channel %q is listed twice in %s", c, keyChannels)
		}
		seen[c] = true
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getChannels(defaultVal []string) []string {
	channels := s.configStore.GetStringSlice(keyChannels)
	if len(channels) < 2 {
		return defaultVal
	}
	return channels
}

func (s *SettingsService) getCacheSize(defaultVal int) int {
	if _, exists := s.configStore.Get(keyCacheSize); !exists {
		return defaultVal
	}
	n := s.configStore.GetInt(keyCacheSize)
	if n < 0 {
		return defaultVal
	}
	return n
}

func (s *SettingsService) getDriver(defaultVal domain.StorageDriver) domain.StorageDriver {
	driver := domain.StorageDriver(s.configStore.GetString(keyStorageDriver))
	if !driver.IsValid() {
		return defaultVal
	}
	return driver
}

func (s *SettingsService) getExportFormat(defaultVal domain.ExportFormat) domain.ExportFormat {
	format := domain.ExportFormat(s.configStore.GetString(keyExportFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
