package graph

type (
	// Callback runs after a widget value changes.
	Callback func(value string)

	WidgetOptions struct {
		Values    []string
		Multiline bool
		ReadOnly  bool
	}

	Widget struct {
		Name     string
		Type     string
		Value    string
		Options  WidgetOptions
		Callback Callback
		OnRemove func()
	}

	// Node is the editor's view of one operation in the graph. Widgets keep
	// the order they were added in, the first ones being the node inputs.
	Node struct {
		ID       string
		Type     string
		Title    string
		Category string
		Widgets  []*Widget
		dirty    bool
	}
)

const (
	WidgetCombo  = "combo"
	WidgetString = "STRING"
)
