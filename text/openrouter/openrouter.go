package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"presetbird/http/request"
	"presetbird/settings"
	"presetbird/text"
)

// Connector speaks the OpenAI chat completions API, which OpenRouter and
// most local model servers accept.
type Connector struct {
	config settings.OpenRouterConfig
}

func New(config settings.OpenRouterConfig) (*Connector, error) {
	if config.Url == "" {
		return nil, errors.New("openrouter url is not set")
	}
	if config.DefaultModel == "" {
		return nil, errors.New("openrouter default model is not set")
	}
	return &Connector{config: config}, nil
}

// buildHttpRequest constructs the request.Request object for the API call.
func buildHttpRequest(config settings.OpenRouterConfig, payload *RequestBody) request.Request {
	req := request.Request{
		Url:     strings.TrimSuffix(config.Url, "/") + "/chat/completions",
		Method:  http.MethodPost,
		Payload: payload,
	}
	if config.ApiKey != "" {
		req.AddHeader("Authorization", "Bearer "+config.ApiKey)
	}
	return req
}

func (c *Connector) Invoke(ctx context.Context, messages []text.Message, opts text.Options) (string, error) {
	if len(messages) == 0 {
		return "", text.ErrNoMessages
	}

	body := &RequestBody{
		Model:       c.config.DefaultModel,
		Messages:    messages,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		Seed:        opts.Seed,
	}

	httpRequest := buildHttpRequest(c.config, body)
	var response Response
	if err := httpRequest.Call(ctx, &response); err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned an empty response")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
