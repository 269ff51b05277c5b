package help

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	h, ok := Find("RENDER")
	require.True(t, ok)
	assert.True(t, h.Queueable)

	_, ok = Find("sing")
	assert.False(t, ok)
}

func TestFindHelp(t *testing.T) {
	assert.Equal(t, "{b}.ratios{b}: Lists the supported aspect ratios.", FindHelp("ratios", "."))
	assert.Contains(t, FindHelp("presets", "!"), "Example: !presets 16:9")
	assert.Equal(t, "Unknown command !sing, try !help", FindHelp("sing", "!"))
}

func TestNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range Names() {
		assert.False(t, seen[name], name)
		seen[name] = true
	}
	assert.Contains(t, seen, "resolution")
}
