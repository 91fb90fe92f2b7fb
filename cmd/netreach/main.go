// Command netreach estimates the deduplicated reach of media plans.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/netreach/internal/adapters/driven/config/file"
	"github.com/custodia-labs/netreach/internal/adapters/driven/export"
	"github.com/custodia-labs/netreach/internal/adapters/driven/planfile"
	"github.com/custodia-labs/netreach/internal/adapters/driven/reference/embedded"
	reffile "github.com/custodia-labs/netreach/internal/adapters/driven/reference/file"
	"github.com/custodia-labs/netreach/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/netreach/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/netreach/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/netreach/internal/adapters/driving/cli"
	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
	"github.com/custodia-labs/netreach/internal/core/services"
	"github.com/custodia-labs/netreach/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	homeDir, err := file.DefaultDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var configStore driven.ConfigStore
	if store, err := file.NewConfigStore(homeDir); err != nil {
		logger.Warn("config file unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = store
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading settings: %v\n", err)
		return 1
	}

	var (
		source  driven.ReferenceSource
		watcher cli.ReferenceWatcher
	)
	if settings.Calculator.ReferencePath != "" {
		fileSource := reffile.New(settings.Calculator.ReferencePath)
		defer fileSource.Close()
		source, watcher = fileSource, fileSource
	} else {
		source = embedded.New()
	}

	scenarioStore, closeStore, err := openScenarioStore(ctx, settings.Storage, homeDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeStore()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Calculator: services.NewCalculatorService(source, settings.Calculator),
		Scenario:   services.NewScenarioService(scenarioStore),
		Reference:  services.NewReferenceService(source, settings.Calculator.Channels),
		Export: services.NewExportService(
			export.NewXLSXExporter(),
			export.NewCSVExporter(),
			export.NewMarkdownExporter(),
			export.NewJSONExporter(),
		),
		Settings:   settingsService,
		PlanLoader: loadPlan,
		Watcher:    watcher,
	})

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// openScenarioStore opens the store selected by the storage settings.
// The returned func releases it.
func openScenarioStore(
	ctx context.Context,
	cfg domain.StorageSettings,
	homeDir string,
) (driven.ScenarioStore, func(), error) {
	switch cfg.Driver {
	case domain.StorageMemory:
		return memory.NewScenarioStore(), func() {}, nil

	case domain.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrating postgres: %w", err)
		}
		return postgres.NewScenarioStore(pool), pool.Close, nil

	default:
		store, err := sqlite.NewStore(filepath.Join(homeDir, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening scenario database: %w", err)
		}
		return store.ScenarioStore(), func() { _ = store.Close() }, nil
	}
}

// loadPlan reads a media plan file, picking the decoder by extension.
func loadPlan(path string) (*domain.PlanFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return planfile.ForPath(path).Read(f)
}
