package extension

import (
	"encoding/json"
	"fmt"
	"strings"

	"presetbird/graph"
	"presetbird/logger"
)

const (
	ShowAnythingClass = "ShowAnything"

	DisplayWidget = "displaytext"
)

// ShowAnything shows the text a node produced in a read-only widget. The
// widget is created on the first execution and updated in place afterwards.
type ShowAnything struct {
	nodeName string
}

func NewShowAnything() *ShowAnything {
	return &ShowAnything{nodeName: AddSuffix(ShowAnythingClass)}
}

func (e *ShowAnything) Name() string {
	return e.nodeName
}

func (e *ShowAnything) Matches(def NodeDef) bool {
	return def.Name == e.nodeName
}

func (e *ShowAnything) OnNodeCreated(*graph.Node) {}

func (e *ShowAnything) OnExecuted(node *graph.Node, msg ExecutedMessage) {
	display := node.Widget(DisplayWidget)

	// Only the input and our own display widget survive an execution.
	node.RetainWidgets(func(i int, w *graph.Widget) bool {
		return i == 0 || w == display
	})

	if display == nil {
		display = node.AddWidget(&graph.Widget{
			Name:    DisplayWidget,
			Type:    graph.WidgetString,
			Options: graph.WidgetOptions{Multiline: true, ReadOnly: true},
		})
	}

	display.Value = strings.Join(msg.Text, "")
	logger.Node(node.Type, node.ID).Info("ShowAnything", "text", display.Value)
	node.SetDirtyCanvas(true)
}

type executedPayload struct {
	Node   string          `json:"node"`
	Output json.RawMessage `json:"output"`
}

// ParseExecutedMessage decodes the data of a websocket "executed" event.
func ParseExecutedMessage(data []byte) (ExecutedMessage, error) {
	var payload executedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return ExecutedMessage{}, fmt.Errorf("failed to decode executed message: %w", err)
	}
	return ParseNodeOutput(payload.Node, payload.Output)
}

// ParseNodeOutput decodes the output object of one node, as found in an
// executed event or in the prompt history. The text output may be a list
// of strings or a single string.
func ParseNodeOutput(node string, output []byte) (ExecutedMessage, error) {
	msg := ExecutedMessage{Node: node}
	if len(output) == 0 {
		return msg, nil
	}

	var outputs struct {
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(output, &outputs); err != nil {
		return ExecutedMessage{}, fmt.Errorf("failed to decode output of node %s: %w", node, err)
	}
	if len(outputs.Text) == 0 {
		return msg, nil
	}

	if err := json.Unmarshal(outputs.Text, &msg.Text); err == nil {
		return msg, nil
	}

	var single string
	if err := json.Unmarshal(outputs.Text, &single); err != nil {
		return ExecutedMessage{}, fmt.Errorf("unsupported text output for node %s: %w", node, err)
	}
	msg.Text = []string{single}
	return msg, nil
}
