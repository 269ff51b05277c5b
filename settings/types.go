package settings

import (
	"presetbird/irc/networks"
	"presetbird/logger"
)

type (
	Config struct {
		Networks   map[string]networks.Network `toml:"networks" validate:"omitempty,dive"`
		PresetBird PresetBird                  `toml:"presetbird" validate:"required"`
		ComfyUi    ComfyUiConfig               `toml:"comfyui" validate:"required"`
		Database   DatabaseConfig              `toml:"database" validate:"required"`
		Birdhole   BirdholeConfig              `toml:"birdhole"`
		Text       TextConfig                  `toml:"text"`
		Logging    logger.Config               `toml:"logging" validate:"required"`
	}

	PresetBird struct {
		ActionTrigger string `toml:"actionTrigger" validate:"required"`
		DefaultRatio  string `toml:"defaultRatio" validate:"required"`
		MaxQueueSize  int    `toml:"maxQueueSize" validate:"gte=1"`
	}

	ComfyUiConfig struct {
		Url         string         `toml:"url" validate:"required"`
		Port        int            `toml:"port" validate:"required,gt=0"`
		WorkflowDir string         `toml:"workflowDir" validate:"required"`
		OutputDir   string         `toml:"outputDir"`
		APIGroup    string         `toml:"apiGroup"`
		FreeVram    bool           `toml:"freeVram"`
		RatioNode   RatioNode      `toml:"ratioNode"`
		Targets     []SizeTarget   `toml:"targets" validate:"dive"`
		Prompts     []PromptTarget `toml:"prompts" validate:"dive"`
	}

	// RatioNode locates the ratio and resolution widgets of the aspect ratio
	// node inside a saved workflow.
	RatioNode struct {
		Type            string `toml:"type"`
		RatioIndex      int    `toml:"ratioIndex" validate:"gte=0"`
		ResolutionIndex int    `toml:"resolutionIndex" validate:"gte=0"`
	}

	// SizeTarget is a node whose width and height widgets receive the chosen
	// preset, matched by node type or title.
	SizeTarget struct {
		Node        string `toml:"node" validate:"required"`
		WidthIndex  int    `toml:"widthIndex" validate:"gte=0"`
		HeightIndex int    `toml:"heightIndex" validate:"gte=0,nefield=WidthIndex"`
	}

	// PromptTarget is a text node whose widget receives the render prompt.
	PromptTarget struct {
		Node  string `toml:"node" validate:"required"`
		Index int    `toml:"index" validate:"gte=0"`
	}

	// TextConfig selects the language model behind the prompt commands.
	// They are off while Provider is empty.
	TextConfig struct {
		Provider   string           `toml:"provider" validate:"omitempty,oneof=gemini openrouter"`
		Gemini     GeminiConfig     `toml:"gemini"`
		OpenRouter OpenRouterConfig `toml:"openrouter"`
	}

	GeminiConfig struct {
		ApiKey string `toml:"apiKey"`
		Model  string `toml:"model"`
	}

	OpenRouterConfig struct {
		Url          string `toml:"url" validate:"omitempty,url"`
		ApiKey       string `toml:"apiKey"`
		DefaultModel string `toml:"defaultModel"`
	}

	// BirdholeConfig is the optional file host render outputs are uploaded
	// to. Uploads are off while Host is empty.
	BirdholeConfig struct {
		Host     string `toml:"host" validate:"omitempty,url"`
		Port     int    `toml:"port" validate:"gte=0"`
		EndPoint string `toml:"endPoint"`
		Key      string `toml:"key"`
		UrlLen   int    `toml:"urlLen" validate:"gte=0"`
		Expiry   int    `toml:"expiry" validate:"gte=0"`
	}

	DatabaseConfig struct {
		Path         string `toml:"path" validate:"required"`
		MaxValueSize int    `toml:"maxValueSize" validate:"gte=0"`
		CacheSize    int    `toml:"cacheSize" validate:"gte=0"`
	}
)
