package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"presetbird/logger"
	"presetbird/resolution"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const DefaultConfigPath = "config.toml"

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return err
	}
	if !resolution.IsSupported(c.PresetBird.DefaultRatio) {
		return fmt.Errorf("presetbird.defaultRatio %q is not a supported ratio", c.PresetBird.DefaultRatio)
	}
	return nil
}

// Defaults returns a configuration that is valid on its own; config files
// only need to override what differs.
func Defaults() Config {
	return Config{
		PresetBird: PresetBird{
			ActionTrigger: "!",
			DefaultRatio:  resolution.DefaultRatio,
			MaxQueueSize:  10,
		},
		ComfyUi: ComfyUiConfig{
			Url:         "127.0.0.1",
			Port:        8188,
			WorkflowDir: "comfyuijson",
			OutputDir:   ".",
			APIGroup:    "API",
			RatioNode: RatioNode{
				Type:            "ClassicAspectRatio|Mie",
				RatioIndex:      0,
				ResolutionIndex: 1,
			},
			Targets: []SizeTarget{
				{Node: "EmptyLatentImage", WidthIndex: 0, HeightIndex: 1},
				{Node: "EmptySD3LatentImage", WidthIndex: 0, HeightIndex: 1},
			},
			Prompts: []PromptTarget{
				{Node: "Prompt", Index: 0},
			},
		},
		Text: TextConfig{
			Gemini:     GeminiConfig{Model: "gemini-2.5-flash-lite-preview-06-17"},
			OpenRouter: OpenRouterConfig{Url: "https://openrouter.ai/api/v1"},
		},
		Database: DatabaseConfig{
			Path:         "bird.db",
			MaxValueSize: 1024 * 1024,
			CacheSize:    1024,
		},
		Logging: logger.Config{
			Level:  logger.LevelInfo,
			Format: "text",
		},
	}
}

// LoadConfig loads the configuration from configPath and any service
// configs next to it, on top of Defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := Defaults()

	if configPath == "" {
		configPath = DefaultConfigPath
	}

	// Check if main config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	// Get absolute path for better error messages
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		absPath = configPath // fallback to relative path
	}

	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", absPath, err)
	}

	if err := loadServiceConfigs(filepath.Dir(configPath), &config); err != nil {
		return nil, fmt.Errorf("error loading service configs: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// loadServiceConfigs loads the optional per-service files in settings/
func loadServiceConfigs(dir string, config *Config) error {
	serviceConfigs := map[string]interface{}{
		"settings/comfyui.toml":  &config.ComfyUi,
		"settings/database.toml": &config.Database,
		"settings/birdhole.toml": &config.Birdhole,
		"settings/text.toml":     &config.Text,
		"settings/logging.toml":  &config.Logging,
	}

	for name, configStruct := range serviceConfigs {
		configPath := filepath.Join(dir, name)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			continue
		}

		if _, err := toml.DecodeFile(configPath, configStruct); err != nil {
			return fmt.Errorf("error parsing service config file %s: %w", configPath, err)
		}
	}

	return nil
}

func (b BirdholeConfig) Enabled() bool {
	return b.Host != ""
}

func (t TextConfig) Enabled() bool {
	return t.Provider != ""
}

// WorkflowPath resolves a workflow name to its JSON file.
func (c ComfyUiConfig) WorkflowPath(name string) string {
	return filepath.Join(c.WorkflowDir, name+".json")
}
