package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"presetbird/text"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	reply    string
	err      error
	messages []text.Message
	opts     text.Options
}

func (r *recorder) Invoke(_ context.Context, messages []text.Message, opts text.Options) (string, error) {
	r.messages = messages
	r.opts = opts
	return r.reply, r.err
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAdvanced, m)

	m, err = ParseMode("Simple")
	require.NoError(t, err)
	assert.Equal(t, ModeSimple, m)

	_, err = ParseMode("fancy")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		mode       Mode
		systemHas  string
		userEquals string
	}{
		{"random advanced", "  ", ModeAdvanced, "Example outputs:", randomRequest},
		{"random simple", "", ModeSimple, "Randomly generate", randomRequest},
		{"translate", "un oiseau", ModeSimple, "prompt translator", "un oiseau"},
		{"expand", " a bird ", ModeAdvanced, "analyze the provided description", "a bird"},
	}

	for _, tt := range tests {
		test := tt
		t.Run(test.name, func(t *testing.T) {
			msgs := Messages(test.input, test.mode)
			require.Len(t, msgs, 2)
			assert.Equal(t, "system", msgs[0].Role)
			assert.Contains(t, msgs[0].Content, test.systemHas)
			assert.Equal(t, text.User(test.userEquals), msgs[1])
		})
	}
}

func TestGenerate(t *testing.T) {
	r := &recorder{reply: "  watercolor heron \n"}
	got, err := Generate(context.Background(), r, "heron", ModeAdvanced, 42)
	require.NoError(t, err)
	assert.Equal(t, "watercolor heron", got)
	assert.Equal(t, text.Options{Temperature: 0.8, TopP: 0.9, Seed: 42}, r.opts)

	r.err = errors.New("down")
	_, err = Generate(context.Background(), r, "", ModeSimple, 0)
	assert.EqualError(t, err, "down")
}

func TestKontextPresets(t *testing.T) {
	presets := KontextPresets()
	require.Len(t, presets, 17)
	assert.Equal(t, DefaultKontextPreset, presets[0].Name)

	for _, p := range presets {
		assert.True(t, strings.HasPrefix(p.System(), kontextIntro), p.Name)
		assert.True(t, strings.HasSuffix(p.System(), kontextOutro), p.Name)
	}

	p, err := FindKontextPreset("move-camera")
	require.NoError(t, err)
	assert.Equal(t, "Move Camera", p.Name)

	p, err = FindKontextPreset("REMOVE TEXT")
	require.NoError(t, err)
	assert.Equal(t, "remove-text", p.Slug())

	_, err = FindKontextPreset("explode")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestKontext(t *testing.T) {
	r := &recorder{reply: " Place the cat on the moon. "}

	got, err := Kontext(context.Background(), r, " a cat ", "", "teleport")
	require.NoError(t, err)
	assert.Equal(t, "Place the cat on the moon.", got)
	assert.Equal(t, text.User("Image description: a cat\n"), r.messages[1])

	_, err = Kontext(context.Background(), r, "a cat", "make it night", "Relight")
	require.NoError(t, err)
	assert.Equal(t, "Image description: a cat\nEdit instruction: make it night", r.messages[1].Content)

	_, err = Kontext(context.Background(), r, "", " ", "Zoom")
	require.NoError(t, err)
	assert.Equal(t, "No additional image description or edit instruction provided.", r.messages[1].Content)

	_, err = Kontext(context.Background(), r, "", "", "nope")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, []string{"zh", "en", "es", "fr", "de", "ja", "ko", "ru", "it", "pt"}, Languages())
	assert.Equal(t, "Japanese", LanguageName("ja"))
	assert.Equal(t, "nl", LanguageName("nl"))

	r := &recorder{reply: "你好\n"}
	got, err := Translate(context.Background(), r, "hello", "zh")
	require.NoError(t, err)
	assert.Equal(t, "你好\n", got)
	assert.Contains(t, r.messages[0].Content, "Translate any user input into Chinese.")
	assert.Equal(t, text.User("hello"), r.messages[1])
}
