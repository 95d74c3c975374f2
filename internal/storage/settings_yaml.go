package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"timekeeper/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// ConfigDirFunc resolves the base configuration directory.
type ConfigDirFunc func() (string, error)

type yamlSettings struct {
	DefaultHours   *int  `yaml:"default_hours"`
	DefaultMinutes *int  `yaml:"default_minutes"`
	DefaultSeconds *int  `yaml:"default_seconds"`
	ChimeEnabled   *bool `yaml:"chime_enabled"`
}

// Store reads and writes user preferences as YAML.
type Store struct {
	appName   string
	configDir ConfigDirFunc
}

// NewStore creates a settings store rooted at <configDir>/<appName>.
func NewStore(appName string, configDir ConfigDirFunc) *Store {
	if configDir == nil {
		configDir = os.UserConfigDir
	}
	return &Store{appName: appName, configDir: configDir}
}

// Path returns the settings file location.
func (store *Store) Path() (string, error) {
	configDir, err := store.configDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, store.appName, settingsFileName), nil
}

// Load reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := store.Path()
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *Store) Save(settings preferences.Settings) error {
	configPath, err := store.Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		DefaultHours:   &settings.DefaultHours,
		DefaultMinutes: &settings.DefaultMinutes,
		DefaultSeconds: &settings.DefaultSeconds,
		ChimeEnabled:   &settings.ChimeEnabled,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.DefaultHours != nil && *fileData.DefaultHours >= 0 {
		settings.DefaultHours = *fileData.DefaultHours
	}
	if fileData.DefaultMinutes != nil && *fileData.DefaultMinutes >= 0 {
		settings.DefaultMinutes = *fileData.DefaultMinutes
	}
	if fileData.DefaultSeconds != nil && *fileData.DefaultSeconds >= 0 {
		settings.DefaultSeconds = *fileData.DefaultSeconds
	}
	if fileData.ChimeEnabled != nil {
		settings.ChimeEnabled = *fileData.ChimeEnabled
	}
}
