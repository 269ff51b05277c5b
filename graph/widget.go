package graph

// SetValue stores value and runs the callback chain, the same path a user
// edit takes.
func (w *Widget) SetValue(value string) {
	w.Value = value
	if w.Callback != nil {
		w.Callback(value)
	}
}

// Chain installs next to run after whatever callback is already set.
func (w *Widget) Chain(next Callback) {
	prev := w.Callback
	w.Callback = func(value string) {
		if prev != nil {
			prev(value)
		}
		next(value)
	}
}

// SetChoices replaces the dropdown values. The slice is owned by the widget
// afterwards.
func (w *Widget) SetChoices(values []string) {
	w.Options.Values = values
}
