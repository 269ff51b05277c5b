package gemini

import (
	"testing"

	"presetbird/settings"
	"presetbird/text"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNeedsKey(t *testing.T) {
	_, err := New(settings.GeminiConfig{})
	assert.Error(t, err)

	c, err := New(settings.GeminiConfig{ApiKey: "key", Model: "gemini"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", c.config.Model)
}

func TestProcessResponse(t *testing.T) {
	_, err := processResponse(nil)
	assert.Error(t, err)

	_, err = processResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)

	got, err := processResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("a heron at dusk")}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "a heron at dusk", got)
}

func TestToGenaiContent(t *testing.T) {
	history := toGenaiContent([]text.Message{
		text.User("hi"),
		{Role: "assistant", Content: "hello"},
	})

	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("hello")}, history[1].Parts)
}

func TestConfigure(t *testing.T) {
	model := &genai.GenerativeModel{}
	configure(model, "be brief", text.Options{Temperature: 0.8, TopP: 0.9, Seed: 7})

	require.NotNil(t, model.SystemInstruction)
	assert.Equal(t, []genai.Part{genai.Text("be brief")}, model.SystemInstruction.Parts)
	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.8, *model.Temperature, 0.0001)
	require.NotNil(t, model.TopP)
	assert.InDelta(t, 0.9, *model.TopP, 0.0001)

	bare := &genai.GenerativeModel{}
	configure(bare, "", text.Options{})
	assert.Nil(t, bare.SystemInstruction)
	assert.Nil(t, bare.Temperature)
}
