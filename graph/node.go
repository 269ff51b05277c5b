package graph

import (
	"fmt"

	"github.com/google/uuid"
)

func NewNode(nodeType, title, category string) *Node {
	return &Node{
		ID:       uuid.New().String(),
		Type:     nodeType,
		Title:    title,
		Category: category,
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s) widgets=%d", n.Type, n.ID, len(n.Widgets))
}

// Widget finds a widget by name, nil when the node has none.
func (n *Node) Widget(name string) *Widget {
	for _, w := range n.Widgets {
		if w != nil && w.Name == name {
			return w
		}
	}
	return nil
}

func (n *Node) AddWidget(w *Widget) *Widget {
	n.Widgets = append(n.Widgets, w)
	return w
}

// AddCombo adds a dropdown widget with the given choices and value.
func (n *Node) AddCombo(name string, values []string, value string) *Widget {
	return n.AddWidget(&Widget{
		Name:    name,
		Type:    WidgetCombo,
		Value:   value,
		Options: WidgetOptions{Values: values},
	})
}

// RetainWidgets keeps the widgets for which keep returns true, in order, and
// calls OnRemove on the others.
func (n *Node) RetainWidgets(keep func(i int, w *Widget) bool) {
	kept := n.Widgets[:0]
	for i, w := range n.Widgets {
		if keep(i, w) {
			kept = append(kept, w)
			continue
		}
		if w != nil && w.OnRemove != nil {
			w.OnRemove()
		}
	}
	for i := len(kept); i < len(n.Widgets); i++ {
		n.Widgets[i] = nil
	}
	n.Widgets = kept
}

// SetDirtyCanvas asks the editor to redraw the node.
func (n *Node) SetDirtyCanvas(dirty bool) {
	n.dirty = dirty
}

func (n *Node) IsDirty() bool {
	return n.dirty
}
