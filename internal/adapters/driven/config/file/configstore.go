// Package file provides the TOML-backed configuration store.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// ConfigStore persists application settings in a TOML file within the
// paperchat config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings domain.Settings
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.paperchat/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".paperchat")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		settings: domain.DefaultSettings(),
	}

	if err := s.load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return s, nil
}

// Settings returns a copy of the current settings.
func (s *ConfigStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists immediately.
func (s *ConfigStore) Update(settings domain.Settings) error {
	if !settings.Provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, settings.Provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.save()
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// load reads settings from disk, keeping defaults for missing keys.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	settings := domain.DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.settings = settings
	return nil
}

// save writes settings to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	// Write atomically via a temp file in the same directory.
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}
