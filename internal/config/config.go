package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Project-Sylos/Studio/internal/assistant"
	"github.com/Project-Sylos/Studio/internal/logging"
	"github.com/Project-Sylos/Studio/internal/scaffold"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() types.Config {
	return types.Config{
		API: types.APIConfig{
			Host: "localhost",
			Port: 8087,
		},
		Store: types.StoreConfig{
			DBPath: "./studio.db",
		},
		Assistant: types.AssistantConfig{
			Provider:    assistant.ProviderStatic,
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.2,
		},
		Logging: types.LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Studio: types.StudioConfig{
			DefaultVariant: scaffold.VariantPortlet,
			MaxUploadBytes: 32 << 20,
		},
	}
}

// LoadFromFile loads configuration from a JSON or YAML file. Fields missing
// from the file keep their defaults; an explicit empty db_path selects the
// in-memory transcript store.
func LoadFromFile(configPath string) (*types.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if isYAML(configPath) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Ensure DB path is absolute
	if cfg.Store.DBPath != "" && !filepath.IsAbs(cfg.Store.DBPath) {
		absPath, err := filepath.Abs(cfg.Store.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
		cfg.Store.DBPath = absPath
	}

	return &cfg, nil
}

// Validate checks that the configuration parameters are valid
func Validate(cfg *types.Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if cfg.API.Port < 1 || cfg.API.Port > 65535 {
		return fmt.Errorf("API port must be between 1 and 65535, got %d", cfg.API.Port)
	}

	switch cfg.Assistant.Provider {
	case assistant.ProviderOpenAI, assistant.ProviderStatic:
	default:
		return fmt.Errorf("assistant provider must be %q or %q, got %q",
			assistant.ProviderOpenAI, assistant.ProviderStatic, cfg.Assistant.Provider)
	}
	if cfg.Assistant.Provider == assistant.ProviderOpenAI && cfg.Assistant.Model == "" {
		return fmt.Errorf("assistant model is required for the openai provider")
	}
	if cfg.Assistant.Temperature < 0 || cfg.Assistant.Temperature > 2 {
		return fmt.Errorf("assistant temperature must be between 0 and 2, got %g", cfg.Assistant.Temperature)
	}

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "console" {
		return fmt.Errorf("log format must be json or console, got %q", cfg.Logging.Format)
	}

	if _, err := scaffold.Lookup(cfg.Studio.DefaultVariant); err != nil {
		return fmt.Errorf("default_variant must be one of %s, got %q",
			strings.Join(scaffold.Names(), ", "), cfg.Studio.DefaultVariant)
	}
	if cfg.Studio.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must be non-negative, got %d", cfg.Studio.MaxUploadBytes)
	}

	return nil
}

// SaveToFile saves configuration as JSON or YAML depending on the extension
func SaveToFile(cfg *types.Config, configPath string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(configPath) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
