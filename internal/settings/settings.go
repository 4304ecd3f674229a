// Package settings loads the bridge's own configuration file. The file is
// optional; every field has a working default.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/profiles"
)

var ErrNoConfigFile = errors.New("no config file found")

// Settings holds everything tunable about the bridge.
type Settings struct {
	LogFile  string `yaml:"log_file" json:"log_file"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	FederationEndpoint     string `yaml:"federation_endpoint" json:"federation_endpoint"`
	Issuer                 string `yaml:"issuer" json:"issuer"`
	SessionDurationSeconds int    `yaml:"session_duration_seconds" json:"session_duration_seconds"`
	TimeoutSeconds         int    `yaml:"timeout_seconds" json:"timeout_seconds"`

	MetadataRules []profiles.MetadataRule `yaml:"metadata_rules" json:"metadata_rules"`
}

// Default returns the settings used when no config file exists.
func Default() (*Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return &Settings{
		LogFile:                filepath.Join(home, ".aws", "logs", "aws_profile_bridge.log"),
		LogLevel:               "info",
		SessionDurationSeconds: 43200,
		TimeoutSeconds:         10,
	}, nil
}

// Load reads settings from ~/.config/aws-profile-bridge, trying YAML first
// and falling back to JSON, the same way the file is documented. A missing
// file yields defaults.
func Load() (*Settings, error) {
	defaults, err := Default()
	if err != nil {
		return nil, err
	}

	path, err := findConfigFile()
	if err != nil {
		if errors.Is(err, ErrNoConfigFile) {
			return defaults, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return &cfg, nil
}

func findConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "aws-profile-bridge")

	for _, name := range []string{"config.yml", "config.yaml", "config.json"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNoConfigFile
}
