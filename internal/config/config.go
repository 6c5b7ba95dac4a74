package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultSetName  = "sample"
	DefaultBaseURL  = "https://arcanaland.github.io/namecards/"
	DefaultListen   = "127.0.0.1:8080"
	DefaultIconSize = 354 // 30mm at 300dpi
)

// Config represents the application configuration
type Config struct {
	DefaultSet string `toml:"default_set"`
	BaseURL    string `toml:"base_url"`
	Listen     string `toml:"listen"`
	IconSize   int    `toml:"icon_size"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		DefaultSet: DefaultSetName,
		BaseURL:    DefaultBaseURL,
		Listen:     DefaultListen,
		IconSize:   DefaultIconSize,
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetLibraryPath returns the directory holding named card sets
func GetLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "namecards", "sets")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "namecards", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing.
// Keys absent from an existing file keep their default values.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if config.IconSize <= 0 {
		config.IconSize = DefaultIconSize
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetSetPath returns the path to a card set, either in the library or a
// relative path. Library sets may be given with or without extension.
func GetSetPath(setName string) (string, error) {
	libraryPath := GetLibraryPath()
	for _, candidate := range []string{setName, setName + ".json", setName + ".jsonc"} {
		setPath := filepath.Join(libraryPath, candidate)
		if info, err := os.Stat(setPath); err == nil && !info.IsDir() {
			return setPath, nil
		}
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(setName); err == nil {
		return setName, nil
	}

	return "", fmt.Errorf("card set not found: %s", setName)
}

// GetDefaultSet returns the default set name from config
func GetDefaultSet() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultSet, nil
}

// SetDefaultSet sets the default set in the config
func SetDefaultSet(setName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultSet = setName

	return writeConfig(config)
}
