package extension

import (
	"presetbird/graph"
	"presetbird/logger"
	"presetbird/resolution"
)

const (
	AspectRatioClass = "ClassicAspectRatio"

	RatioWidget      = "ratio"
	ResolutionWidget = "resolution"
)

// ClassicAspectRatio keeps a node's resolution dropdown in step with its
// ratio dropdown.
type ClassicAspectRatio struct {
	nodeName string
}

func NewClassicAspectRatio() *ClassicAspectRatio {
	return &ClassicAspectRatio{nodeName: AddSuffix(AspectRatioClass)}
}

func (e *ClassicAspectRatio) Name() string {
	return e.nodeName
}

func (e *ClassicAspectRatio) Matches(def NodeDef) bool {
	return def.Category == Category && def.Name == e.nodeName
}

// OnNodeCreated fills the resolution dropdown for the current ratio and hooks
// the ratio widget so later changes refresh it. Nodes without a ratio widget
// are left alone.
func (e *ClassicAspectRatio) OnNodeCreated(node *graph.Node) {
	ratio := node.Widget(RatioWidget)
	if ratio == nil {
		return
	}
	if ratio.Value == "" {
		ratio.Value = resolution.DefaultRatio
	}
	if len(ratio.Options.Values) == 0 {
		ratio.Options.Values = resolution.Ratios()
	}

	res := node.Widget(ResolutionWidget)
	if res == nil {
		res = node.AddCombo(ResolutionWidget, nil, "")
	}

	sync := func(value string) {
		OnRatioChanged(node, res, value)
	}
	sync(ratio.Value)
	ratio.Chain(sync)
}

func (e *ClassicAspectRatio) OnExecuted(*graph.Node, ExecutedMessage) {}

// OnRatioChanged applies a ratio change to the resolution widget and asks for
// a redraw.
func OnRatioChanged(node *graph.Node, res *graph.Widget, ratio string) {
	choices, selected := resolution.ReconcileSelection(ratio, res.Value)
	res.SetChoices(choices)
	if res.Value != selected {
		logger.Node(node.Type, node.ID).Debug("Resolution reset", "ratio", ratio, "from", res.Value, "to", selected)
		res.Value = selected
	}
	node.SetDirtyCanvas(true)
}
