package resolution

// PresetsFor returns the six preset labels for ratio, smallest first. Unknown
// ratios get the 1:1 list so a dropdown is never left empty. The slice is a
// copy and may be modified by the caller.
func PresetsFor(ratio string) []string {
	labels, ok := labelTable[ratio]
	if !ok {
		labels = labelTable[DefaultRatio]
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// ReconcileSelection computes the preset list for ratio and the value that
// should be selected in it. previous is kept when it is still one of the
// choices, otherwise the smallest preset is selected. An empty previous means
// nothing was selected yet.
func ReconcileSelection(ratio, previous string) ([]string, string) {
	choices := PresetsFor(ratio)
	if previous != "" {
		for _, choice := range choices {
			if choice == previous {
				return choices, previous
			}
		}
	}
	return choices, choices[0]
}

// Reconcile is ReconcileSelection expressed on a Selection. The returned
// selection carries the ratio as given, even when it fell back to 1:1 presets.
func (s Selection) Reconcile(ratio string) ([]string, Selection) {
	choices, selected := ReconcileSelection(ratio, s.Resolution)
	return choices, Selection{Ratio: ratio, Resolution: selected}
}

// Preset parses the selected resolution.
func (s Selection) Preset() (Preset, error) {
	return ParsePreset(s.Resolution)
}
