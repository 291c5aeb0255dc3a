// Package file provides the TOML-backed configuration store.
// Configuration lives in a TOML file within the eventscope config
// directory, config.toml under the user config dir by default.
package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// defaultWindowDays bounds the harvest lookahead when unconfigured,
// matching the harvester's default.
const defaultWindowDays = 180

// fileSettings is the on-disk TOML shape.
type fileSettings struct {
	FeedURLs     []string `toml:"feed_urls,omitempty"`
	ArtifactPath string   `toml:"artifact_path,omitempty"`
	ICSFeeds     []string `toml:"ics_feeds,omitempty"`
	Keywords     []string `toml:"keywords,omitempty"`
	City         string   `toml:"city,omitempty"`
	State        string   `toml:"state,omitempty"`
	Country      string   `toml:"country,omitempty"`
	WindowDays   int      `toml:"window_days,omitempty"`
	DataDir      string   `toml:"data_dir,omitempty"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a TOML config store.
// If configDir is empty, defaults to ~/.eventscope.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".eventscope")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Path returns the backing file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the settings file. A missing file yields defaults, not an error.
func (s *ConfigStore) Load() (*driven.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fileCfg fileSettings
	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: defaults only.
	case err != nil:
		return nil, err
	default:
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
	}

	settings := &driven.Settings{
		FeedURLs:     fileCfg.FeedURLs,
		ArtifactPath: fileCfg.ArtifactPath,
		ICSFeeds:     fileCfg.ICSFeeds,
		Keywords:     fileCfg.Keywords,
		City:         fileCfg.City,
		State:        fileCfg.State,
		Country:      fileCfg.Country,
		WindowDays:   fileCfg.WindowDays,
		DataDir:      fileCfg.DataDir,
	}
	if settings.WindowDays <= 0 {
		settings.WindowDays = defaultWindowDays
	}
	return settings, nil
}

// Save persists the settings, creating the file if needed.
func (s *ConfigStore) Save(settings *driven.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileCfg := fileSettings{
		FeedURLs:     settings.FeedURLs,
		ArtifactPath: settings.ArtifactPath,
		ICSFeeds:     settings.ICSFeeds,
		Keywords:     settings.Keywords,
		City:         settings.City,
		State:        settings.State,
		Country:      settings.Country,
		WindowDays:   settings.WindowDays,
		DataDir:      settings.DataDir,
	}

	data, err := toml.Marshal(fileCfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}
