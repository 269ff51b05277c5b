package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"presetbird/captions"
	"presetbird/extension"
	"presetbird/image/comfyui"
	"presetbird/resolution"
	"presetbird/settings"
	"presetbird/text"
	"presetbird/text/gemini"
	"presetbird/text/openrouter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(context.Background(), nil, &out), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"dance"}, &out), errUsage)
}

func TestRunPresets(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPresets([]string{"-ratio", "21:9"}, &out))
	assert.Equal(t, "21:9\t"+strings.Join(resolution.PresetsFor("21:9"), ", ")+"\n", out.String())

	out.Reset()
	require.NoError(t, runPresets(nil, &out))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), len(resolution.Ratios()))

	assert.ErrorIs(t, runPresets([]string{"-ratio", "5:4"}, &out), resolution.ErrInvalidRatio)
}

func TestRunSync(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("image", "comfyui", "testdata", "portrait.json"))
	require.NoError(t, err)
	in := filepath.Join(dir, "portrait.json")
	require.NoError(t, os.WriteFile(in, data, 0o644))
	synced := filepath.Join(dir, "synced.json")

	config := settings.Defaults()
	var out bytes.Buffer
	require.NoError(t, runSync([]string{"-workflow", in, "-out", synced}, &config, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1:ClassicAspectRatio|Mie[1]: 1024x1024 ( 1MP ) -> 768x432 ( 0.32MP )", lines[0])
	assert.Equal(t, "16:9 768x432 ( 0.32MP )", lines[3])

	out.Reset()
	require.NoError(t, runSync([]string{"-workflow", synced}, &config, &out))
	assert.Equal(t, "16:9 768x432 ( 0.32MP )\n", out.String())

	w, err := comfyui.LoadWorkflow(synced)
	require.NoError(t, err)
	report, err := comfyui.Reconcile(w, config.ComfyUi, comfyui.Request{})
	require.NoError(t, err)
	assert.Empty(t, report.Changes)

	assert.ErrorIs(t, runSync(nil, &config, &out), errUsage)
}

func TestDisplayReusesNode(t *testing.T) {
	var out bytes.Buffer
	display, err := newDisplay(extension.DefaultRegistry(), &out)
	require.NoError(t, err)

	display("portrait", []string{"a.png", "b.png"})
	display("portrait", []string{"c.png"})

	assert.Equal(t, "portrait:\na.png\nb.png\nportrait:\nc.png\n", out.String())
}

type fakeConnector struct {
	messages []text.Message
}

func (f *fakeConnector) Invoke(_ context.Context, messages []text.Message, _ text.Options) (string, error) {
	f.messages = messages
	return " a heron in fog ", nil
}

func TestNewConnector(t *testing.T) {
	config := settings.Defaults().Text

	_, err := newConnector(config)
	assert.ErrorContains(t, err, "no text provider")

	config.Provider = "gemini"
	_, err = newConnector(config)
	assert.Error(t, err, "missing api key")
	config.Gemini.ApiKey = "key"
	c, err := newConnector(config)
	require.NoError(t, err)
	assert.IsType(t, &gemini.Connector{}, c)

	config.Provider = "openrouter"
	config.OpenRouter.DefaultModel = "tiny"
	c, err = newConnector(config)
	require.NoError(t, err)
	assert.IsType(t, &openrouter.Connector{}, c)

	config.Provider = "ollama"
	_, err = newConnector(config)
	assert.ErrorContains(t, err, "unknown text provider")
}

func TestRunPrompt(t *testing.T) {
	llm := &fakeConnector{}
	var out bytes.Buffer

	require.NoError(t, runPrompt(context.Background(), []string{"-mode", "simple", "un", "héron"}, llm, &out))
	assert.Equal(t, "prompt simple:\na heron in fog\n", out.String())
	assert.Equal(t, text.User("un héron"), llm.messages[1])

	out.Reset()
	require.NoError(t, runPrompt(context.Background(), []string{"-kontext", "relight", "a", "cat"}, llm, &out))
	assert.Equal(t, "kontext relight:\na heron in fog\n", out.String())
	assert.Equal(t, text.User("Image description: a cat\n"), llm.messages[1])

	out.Reset()
	require.NoError(t, runPrompt(context.Background(), []string{"-translate", "de", "hello"}, llm, &out))
	assert.Contains(t, llm.messages[0].Content, "German")

	assert.ErrorIs(t, runPrompt(context.Background(), []string{"-translate", "de"}, llm, &out), errUsage)
	assert.Error(t, runPrompt(context.Background(), []string{"-mode", "fancy"}, llm, &out))
}

func TestRunCaptions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("\xff\xd8\xff\xe0"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("gone"), 0o644))

	var out bytes.Buffer
	require.NoError(t, runCaptions([]string{"sync", "-dir", dir, "-text", "bird, "}, &out))
	assert.Equal(t, "captions sync:\nCreated 1 and deleted 1 captions for files in "+dir+".\n", out.String())

	out.Reset()
	require.NoError(t, runCaptions([]string{"rename", "-dir", dir, "-prefix", "heron_", "-numbering", "##"}, &out))
	assert.Contains(t, out.String(), "1 files updated.")

	out.Reset()
	require.NoError(t, runCaptions([]string{"edit", "-dir", dir, "-op", "append", "-text", "grey"}, &out))
	assert.Contains(t, out.String(), "Append operation completed successfully for 1 files")

	out.Reset()
	require.NoError(t, runCaptions([]string{"summary", "-dir", dir}, &out))
	assert.Equal(t, "captions summary:\n=== FILE: heron_01.txt ===\nbird, grey\n", out.String())

	out.Reset()
	require.NoError(t, runCaptions([]string{"delete", "-dir", dir, "-prefix", "heron_"}, &out))
	assert.Contains(t, out.String(), "1 files deleted")

	assert.ErrorIs(t, runCaptions(nil, &out), errUsage)
	assert.ErrorIs(t, runCaptions([]string{"sync"}, &out), errUsage)
	assert.ErrorIs(t, runCaptions([]string{"shred", "-dir", dir}, &out), errUsage)
	assert.ErrorIs(t, runCaptions([]string{"edit", "-dir", dir, "-op", "shuffle"}, &out), captions.ErrUnknownOperation)
}
