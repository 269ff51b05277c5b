package openrouter

import "presetbird/text"

type (
	RequestBody struct {
		Model       string         `json:"model"`
		Messages    []text.Message `json:"messages"`
		Temperature float32        `json:"temperature,omitempty"`
		TopP        float32        `json:"top_p,omitempty"`
		Seed        int64          `json:"seed,omitempty"`
	}

	Choice struct {
		FinishReason string       `json:"finish_reason"`
		Message      text.Message `json:"message"`
	}

	Response struct {
		ID      string   `json:"id"`
		Choices []Choice `json:"choices"`
		Model   string   `json:"model"`
	}
)
