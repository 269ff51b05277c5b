package state

import (
	"testing"

	"presetbird/irc/networks"
	"presetbird/settings"

	"github.com/lrstanley/girc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(text string) girc.Event {
	return girc.Event{
		Source:  &girc.Source{Name: "bird", Ident: "~bird", Host: "nest.example"},
		Command: girc.PRIVMSG,
		Params:  []string{"#presets", text},
	}
}

func newState(t *testing.T, text string) (*State, bool) {
	t.Helper()
	config := settings.Defaults()
	return New(nil, newEvent(text), &networks.Network{NetworkName: "libera"}, &config)
}

func TestNewParsesCommand(t *testing.T) {
	s, ok := newState(t, "!Presets 16:9")
	require.True(t, ok)
	assert.Equal(t, "presets", s.Action())
	assert.Equal(t, "16:9", s.Message())
	assert.Equal(t, "bird", s.Nick())
	assert.Equal(t, "~birdnest.examplelibera", s.UserCacheKey(""))
}

func TestNewIgnoresOtherMessages(t *testing.T) {
	for _, text := range []string{"hello there", "!", ""} {
		_, ok := newState(t, text)
		assert.False(t, ok, "message %q", text)
	}
}

func TestNetworkTriggerOverridesConfig(t *testing.T) {
	config := settings.Defaults()
	network := &networks.Network{ActionTrigger: "."}

	_, ok := New(nil, newEvent("!ratios"), network, &config)
	assert.False(t, ok)

	s, ok := New(nil, newEvent(".ratios"), network, &config)
	require.True(t, ok)
	assert.Equal(t, "ratios", s.Action())
	assert.Equal(t, ".", s.GetActionTrigger())
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		message string
		args    []Argument
	}{
		{"key value", "!render sdxl --ratio=16:9", "sdxl", []Argument{{"ratio", "16:9"}}},
		{"quoted one word", `!render sdxl --resolution="768x432"`, "sdxl", []Argument{{"resolution", "768x432"}}},
		{"quoted words", `!render sdxl --resolution="768x432 ( 0.32MP )" now`, "sdxl now", []Argument{{"resolution", "768x432 ( 0.32MP )"}}},
		{"bool flag", "!presets --all", "", []Argument{{"all", true}}},
		{"bare dashes", "!presets -- 1:1", "-- 1:1", []Argument{}},
	}

	for _, tt := range tests {
		test := tt
		t.Run(test.name, func(t *testing.T) {
			s, ok := newState(t, test.text)
			require.True(t, ok)
			assert.Equal(t, test.message, s.Message())
			assert.Equal(t, test.args, s.Arguments)
		})
	}
}

func TestArgumentGetters(t *testing.T) {
	s, ok := newState(t, "!x --n=3 --flag --name=bird")
	require.True(t, ok)

	n, ok := s.GetIntArg("n", 0)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	assert.True(t, s.GetBoolArg("flag"))
	assert.False(t, s.GetBoolArg("missing"))

	name, ok := s.GetStringArg("name", "")
	assert.True(t, ok)
	assert.Equal(t, "bird", name)

	_, ok = s.GetStringArg("flag", "")
	assert.False(t, ok)
}

func TestRepliesGoToOutput(t *testing.T) {
	s, ok := newState(t, "!ratios")
	require.True(t, ok)

	var got []string
	s.WithOutput(func(m string) { got = append(got, m) })
	s.Send("plain")
	s.SendError("broken")

	require.Len(t, got, 2)
	assert.Equal(t, "plain", got[0])
	assert.Contains(t, got[1], "[ERROR]")
	assert.Contains(t, got[1], "broken")
}
