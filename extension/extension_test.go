package extension

import (
	"testing"

	"presetbird/graph"
	"presetbird/resolution"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aspectRatioSetup(hostCalls *[]string) func(*graph.Node) {
	return func(n *graph.Node) {
		ratio := n.AddCombo(RatioWidget, resolution.Ratios(), resolution.DefaultRatio)
		ratio.Callback = func(v string) { *hostCalls = append(*hostCalls, v) }
		n.AddCombo(ResolutionWidget, nil, "")
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "ClassicAspectRatio|Mie", AddSuffix(AspectRatioClass))
	assert.Equal(t, "Show Anything 🐑", AddEmoji("Show Anything"))
	assert.Equal(t, "🐑 MieNodes/🐑 Common", Category)
}

func TestClassicAspectRatioNodeCreated(t *testing.T) {
	var hostCalls []string
	r := DefaultRegistry()

	node, err := r.CreateNode("ClassicAspectRatio|Mie", aspectRatioSetup(&hostCalls))
	require.NoError(t, err)

	res := node.Widget(ResolutionWidget)
	require.NotNil(t, res)
	assert.Equal(t, resolution.PresetsFor("1:1"), res.Options.Values)
	assert.Equal(t, "512x512 ( 0.25MP )", res.Value)
	assert.True(t, node.IsDirty())
}

func TestClassicAspectRatioRatioChanged(t *testing.T) {
	var hostCalls []string
	r := DefaultRegistry()

	node, err := r.CreateNode("ClassicAspectRatio|Mie", aspectRatioSetup(&hostCalls))
	require.NoError(t, err)
	node.SetDirtyCanvas(false)

	ratio := node.Widget(RatioWidget)
	res := node.Widget(ResolutionWidget)

	ratio.SetValue("16:9")
	assert.Equal(t, "768x432 ( 0.32MP )", res.Value)
	assert.Equal(t, resolution.PresetsFor("16:9"), res.Options.Values)
	assert.True(t, node.IsDirty())

	// The user picks a bigger preset, then re-selects the same ratio.
	res.Value = "1024x576 ( 0.56MP )"
	ratio.SetValue("16:9")
	assert.Equal(t, "1024x576 ( 0.56MP )", res.Value)

	assert.Equal(t, []string{"16:9", "16:9"}, hostCalls, "host callback still runs")
}

func TestClassicAspectRatioAddsMissingResolutionWidget(t *testing.T) {
	r := DefaultRegistry()
	node, err := r.CreateNode("ClassicAspectRatio|Mie", func(n *graph.Node) {
		n.AddCombo(RatioWidget, nil, "9:21")
	})
	require.NoError(t, err)

	res := node.Widget(ResolutionWidget)
	require.NotNil(t, res)
	assert.Equal(t, "384x896 ( 0.33MP )", res.Value)
	assert.Equal(t, resolution.Ratios(), node.Widget(RatioWidget).Options.Values)
}

func TestClassicAspectRatioWithoutRatioWidget(t *testing.T) {
	r := DefaultRegistry()
	node, err := r.CreateNode("ClassicAspectRatio|Mie", nil)
	require.NoError(t, err)

	assert.Empty(t, node.Widgets)
	assert.False(t, node.IsDirty())
}

func TestClassicAspectRatioIgnoresOtherCategories(t *testing.T) {
	ext := NewClassicAspectRatio()
	assert.True(t, ext.Matches(Def(AspectRatioClass, "x")))
	assert.False(t, ext.Matches(NodeDef{Name: "ClassicAspectRatio|Mie", Category: "other"}))
	assert.False(t, ext.Matches(NodeDef{Name: "EmptyLatentImage", Category: Category}))
}

func TestShowAnythingCreatesOnceAndUpdatesInPlace(t *testing.T) {
	r := DefaultRegistry()
	node, err := r.CreateNode("ShowAnything|Mie", func(n *graph.Node) {
		n.AddWidget(&graph.Widget{Name: "anything"})
	})
	require.NoError(t, err)

	r.Executed(node, ExecutedMessage{Text: []string{"hello", " world"}})
	require.Len(t, node.Widgets, 2)
	display := node.Widget(DisplayWidget)
	require.NotNil(t, display)
	assert.Equal(t, "hello world", display.Value)
	assert.True(t, display.Options.ReadOnly)
	assert.True(t, display.Options.Multiline)

	removed := false
	node.AddWidget(&graph.Widget{Name: "stray", OnRemove: func() { removed = true }})

	r.Executed(node, ExecutedMessage{Text: []string{"again"}})
	require.Len(t, node.Widgets, 2)
	assert.Same(t, display, node.Widget(DisplayWidget))
	assert.Equal(t, "again", display.Value)
	assert.True(t, removed)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewShowAnything()))
	assert.ErrorIs(t, r.Register(NewShowAnything()), ErrDuplicateExtension)
}

func TestExtensionNames(t *testing.T) {
	assert.Equal(t, "ClassicAspectRatio|Mie", NewClassicAspectRatio().Name())
	assert.Equal(t, AddSuffix(ShowAnythingClass), NewShowAnything().Name())
}

func TestRegistryUnknownClass(t *testing.T) {
	_, err := DefaultRegistry().CreateNode("Nope", nil)
	assert.Error(t, err)
}

func TestRegistryDefs(t *testing.T) {
	defs := DefaultRegistry().Defs()
	require.Len(t, defs, 2)
	assert.Equal(t, "ClassicAspectRatio|Mie", defs[0].Name)
	assert.Equal(t, "Show Anything 🐑", defs[1].DisplayName)
}

func TestParseExecutedMessage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ExecutedMessage
		wantErr bool
	}{
		{"list", `{"node":"7","output":{"text":["a","b"]}}`, ExecutedMessage{Node: "7", Text: []string{"a", "b"}}, false},
		{"single", `{"node":"7","output":{"text":"abc"}}`, ExecutedMessage{Node: "7", Text: []string{"abc"}}, false},
		{"no text", `{"node":"3","output":{"images":[]}}`, ExecutedMessage{Node: "3"}, false},
		{"bad text", `{"node":"3","output":{"text":42}}`, ExecutedMessage{}, true},
		{"bad json", `{`, ExecutedMessage{}, true},
	}

	for _, tt := range tests {
		test := tt
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseExecutedMessage([]byte(test.in))
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseNodeOutput(t *testing.T) {
	msg, err := ParseNodeOutput("12", []byte(`{"text":["a heron"],"images":[]}`))
	require.NoError(t, err)
	assert.Equal(t, ExecutedMessage{Node: "12", Text: []string{"a heron"}}, msg)

	msg, err = ParseNodeOutput("12", nil)
	require.NoError(t, err)
	assert.Empty(t, msg.Text)

	_, err = ParseNodeOutput("12", []byte(`[1]`))
	assert.Error(t, err)
}
