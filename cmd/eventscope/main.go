// Command eventscope browses harvested event feeds in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veldt-labs/eventscope/internal/adapters/driven/config/file"
	"github.com/veldt-labs/eventscope/internal/adapters/driven/fetch"
	"github.com/veldt-labs/eventscope/internal/adapters/driven/storage/sqlite"
	"github.com/veldt-labs/eventscope/internal/adapters/driving/cli"
	"github.com/veldt-labs/eventscope/internal/connectors/ics"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
	"github.com/veldt-labs/eventscope/internal/core/services"
	"github.com/veldt-labs/eventscope/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := defaultConfigDir()
	if err != nil {
		return err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	settings, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	snapshots, err := sqlite.NewSnapshotStore(dataDir)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			logger.Warn("Closing snapshot store: %v", err)
		}
	}()

	fetcher := buildFetcher(settings)
	eventService := services.NewFeedService(fetcher, snapshots)

	// A local artifact gets a file watcher so the TUI reloads when the
	// harvester rewrites it.
	if settings.ArtifactPath != "" {
		watcher, err := fetch.NewWatcher(settings.ArtifactPath)
		if err != nil {
			logger.Warn("Artifact watch unavailable: %v", err)
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go watcher.Run(ctx)
			cli.SetTUIChanges(watcher.Changes())
		}
	}

	cli.Wire(eventService, ics.New(), configStore)
	cli.SetVersion(version)

	return cli.Execute()
}

// buildFetcher prefers a local artifact file over remote candidates.
func buildFetcher(settings *driven.Settings) driven.DocumentFetcher {
	if settings.ArtifactPath != "" {
		return fetch.NewFileFetcher(settings.ArtifactPath)
	}
	return fetch.NewHTTPFetcher(settings.FeedURLs)
}

func defaultConfigDir() (string, error) {
	if dir := os.Getenv("EVENTSCOPE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, "eventscope"), nil
}
