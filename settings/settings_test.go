package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultsAreValid(t *testing.T) {
	config := Defaults()
	assert.NoError(t, config.Validate())
	assert.False(t, config.Birdhole.Enabled())
	assert.False(t, config.Text.Enabled())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
[presetbird]
actionTrigger = "."
defaultRatio = "16:9"

[comfyui]
url = "gpu.local"
port = 8189

[[comfyui.targets]]
node = "Latent"
widthIndex = 1
heightIndex = 2

[networks.libera]
enabled = true
nick = "presetbird"
channels = ["#presets"]

[[networks.libera.servers]]
host = "irc.libera.chat"
port = 6697
ssl = true
`)
	writeFile(t, filepath.Join(dir, "settings", "logging.toml"), `
level = "debug"
format = "json"
`)

	writeFile(t, filepath.Join(dir, "settings", "birdhole.toml"), `
host = "https://hole.example"
port = 443
endPoint = "/upload"
`)

	writeFile(t, filepath.Join(dir, "settings", "text.toml"), `
provider = "gemini"

[gemini]
apiKey = "key"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ".", config.PresetBird.ActionTrigger)
	assert.Equal(t, "16:9", config.PresetBird.DefaultRatio)
	assert.Equal(t, 10, config.PresetBird.MaxQueueSize)
	assert.Equal(t, "gpu.local", config.ComfyUi.Url)
	assert.Equal(t, 8189, config.ComfyUi.Port)
	assert.Equal(t, "comfyuijson", config.ComfyUi.WorkflowDir)
	require.Len(t, config.ComfyUi.Targets, 1)
	assert.Equal(t, SizeTarget{Node: "Latent", WidthIndex: 1, HeightIndex: 2}, config.ComfyUi.Targets[0])
	assert.Equal(t, "json", config.Logging.Format)
	assert.True(t, config.Birdhole.Enabled())
	assert.Equal(t, 443, config.Birdhole.Port)
	assert.True(t, config.Text.Enabled())
	assert.Equal(t, "key", config.Text.Gemini.ApiKey)
	assert.Equal(t, "gemini-2.5-flash-lite-preview-06-17", config.Text.Gemini.Model)
	assert.Equal(t, []PromptTarget{{Node: "Prompt"}}, config.ComfyUi.Prompts)

	require.Contains(t, config.Networks, "libera")
	network := config.Networks["libera"]
	assert.Equal(t, []string{"#presets"}, network.Channels)
	require.Len(t, network.Servers, 1)
	assert.True(t, network.Servers[0].SSL)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "[presetbird\n")
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	unsupported := filepath.Join(dir, "ratio.toml")
	writeFile(t, unsupported, "[presetbird]\ndefaultRatio = \"5:4\"\n")
	_, err = LoadConfig(unsupported)
	assert.ErrorContains(t, err, "5:4")

	sameIndex := filepath.Join(dir, "index.toml")
	writeFile(t, sameIndex, "[[comfyui.targets]]\nnode = \"x\"\nwidthIndex = 0\nheightIndex = 0\n")
	_, err = LoadConfig(sameIndex)
	assert.Error(t, err)

	provider := filepath.Join(dir, "provider.toml")
	writeFile(t, provider, "[text]\nprovider = \"ollama\"\n")
	_, err = LoadConfig(provider)
	assert.Error(t, err)
}

func TestWorkflowPath(t *testing.T) {
	c := Defaults().ComfyUi
	assert.Equal(t, filepath.Join("comfyuijson", "flux.json"), c.WorkflowPath("flux"))
}
