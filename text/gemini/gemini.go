package gemini

import (
	"context"
	"errors"

	"presetbird/settings"
	"presetbird/text"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Connector talks to Gemini. A client is opened per call.
type Connector struct {
	config settings.GeminiConfig
}

func New(config settings.GeminiConfig) (*Connector, error) {
	if config.ApiKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	return &Connector{config: config}, nil
}

// newClient creates and returns a new genai.Client
func newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

// processResponse extracts the first text content part from the genai response.
func processResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates found in response")
	}
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					return string(txt), nil
				}
			}
		}
	}
	return "", errors.New("no text content found in response")
}

// toGenaiContent converts messages to chat history. Anything that is not
// the assistant speaks as the user.
func toGenaiContent(messages []text.Message) (history []*genai.Content) {
	for _, msg := range messages {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		history = append(history, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  role,
		})
	}
	return history
}

// configure applies the system instruction and sampling options. Gemini has
// no seed parameter, so opts.Seed is not sent.
func configure(model *genai.GenerativeModel, system string, opts text.Options) {
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}
	if opts.TopP > 0 {
		model.SetTopP(opts.TopP)
	}
}

// Invoke sends the conversation as chat history and returns the reply to
// its last message.
func (c *Connector) Invoke(ctx context.Context, messages []text.Message, opts text.Options) (string, error) {
	system, conversation := text.SplitSystem(messages)
	if len(conversation) == 0 {
		return "", text.ErrNoMessages
	}

	client, err := newClient(ctx, c.config.ApiKey)
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(c.config.Model)
	configure(model, system, opts)

	last := conversation[len(conversation)-1]
	chat := model.StartChat()
	chat.History = toGenaiContent(conversation[:len(conversation)-1])

	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", err
	}
	return processResponse(resp)
}
