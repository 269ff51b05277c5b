package comfyui

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"presetbird/logger"
	"presetbird/resolution"
	"presetbird/settings"
)

// LoadWorkflow reads a workflow JSON file.
func LoadWorkflow(path string) (Workflow, error) {
	// Validate file path to prevent path traversal
	if strings.Contains(path, "..") {
		return nil, fmt.Errorf("invalid workflow file path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file %s: %w", path, err)
	}

	var workflow Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow json %s: %w", path, err)
	}
	return workflow, nil
}

func SaveWorkflow(path string, workflow Workflow) error {
	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workflow: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workflow file %s: %w", path, err)
	}
	return nil
}

func (w Workflow) nodes() ([]nodeView, error) {
	rawNodes, ok := w["nodes"].([]interface{})
	if !ok {
		return nil, errors.New("workflow has no nodes")
	}

	views := make([]nodeView, 0, len(rawNodes))
	for _, n := range rawNodes {
		node, ok := n.(map[string]interface{})
		if !ok {
			continue
		}
		values, ok := node["widgets_values"].([]interface{})
		if !ok {
			continue
		}

		view := nodeView{Values: values}
		view.Type, _ = node["type"].(string)
		view.Title, _ = node["title"].(string)
		view.Label = fmt.Sprintf("%v:%s", node["id"], view.Type)
		views = append(views, view)
	}
	return views, nil
}

// Reconcile brings the aspect ratio node of a workflow in line with the
// preset table, applies req on top and writes the resulting preset into
// every size target. Values are changed in place.
func Reconcile(workflow Workflow, config settings.ComfyUiConfig, req Request) (Report, error) {
	nodes, err := workflow.nodes()
	if err != nil {
		return Report{}, err
	}
	return reconcileNodes(nodes, config, req)
}

func reconcileNodes(nodes []nodeView, config settings.ComfyUiConfig, req Request) (Report, error) {
	var report Report
	var selected *resolution.Selection

	for _, node := range nodes {
		if !node.matches(config.RatioNode.Type) {
			continue
		}
		sel, changes, ok := SyncRatioValues(node, config.RatioNode, req)
		if !ok {
			logger.Warn("Aspect ratio node has too few widgets", "node", node.Label)
			continue
		}
		report.Changes = append(report.Changes, changes...)
		if selected == nil {
			selected = &sel
		}
	}

	if selected == nil {
		ratio := req.Ratio
		if ratio == "" {
			ratio = resolution.DefaultRatio
		}
		_, value := resolution.ReconcileSelection(ratio, req.Resolution)
		selected = &resolution.Selection{Ratio: ratio, Resolution: value}
	}

	preset, err := selected.Preset()
	if err != nil {
		return Report{}, err
	}
	report.Selection = *selected
	report.Preset = preset

	for _, node := range nodes {
		for _, target := range config.Targets {
			if node.matches(target.Node) {
				report.Changes = append(report.Changes, ApplyPreset(node, target, preset)...)
			}
		}
		if req.Prompt == "" {
			continue
		}
		for _, target := range config.Prompts {
			if node.matches(target.Node) {
				report.Changes = append(report.Changes, ApplyPrompt(node, target, req.Prompt)...)
			}
		}
	}

	return report, nil
}

func (n nodeView) matches(name string) bool {
	return name != "" && (n.Type == name || n.Title == name)
}

// SyncRatioValues reconciles the ratio and resolution widget values of one
// aspect ratio node. ok is false when the widget indexes are out of range.
func SyncRatioValues(node nodeView, idx settings.RatioNode, req Request) (resolution.Selection, []Change, bool) {
	if idx.RatioIndex >= len(node.Values) || idx.ResolutionIndex >= len(node.Values) {
		return resolution.Selection{}, nil, false
	}

	var changes []Change
	set := func(i int, value string) {
		if current, ok := node.Values[i].(string); !ok || current != value {
			changes = append(changes, Change{Node: node.Label, Widget: i, From: node.Values[i], To: value})
			node.Values[i] = value
		}
	}

	ratio, _ := node.Values[idx.RatioIndex].(string)
	if req.Ratio != "" {
		ratio = req.Ratio
	}
	if ratio == "" {
		ratio = resolution.DefaultRatio
	}
	set(idx.RatioIndex, ratio)

	previous, _ := node.Values[idx.ResolutionIndex].(string)
	if req.Resolution != "" {
		previous = req.Resolution
	}
	_, selected := resolution.ReconcileSelection(ratio, previous)
	set(idx.ResolutionIndex, selected)

	return resolution.Selection{Ratio: ratio, Resolution: selected}, changes, true
}

// ApplyPreset writes width and height into a size target node.
func ApplyPreset(node nodeView, target settings.SizeTarget, preset resolution.Preset) []Change {
	var changes []Change
	for _, field := range []struct {
		index int
		value int
	}{
		{target.WidthIndex, preset.Width},
		{target.HeightIndex, preset.Height},
	} {
		if field.index >= len(node.Values) {
			logger.Warn("Size target has too few widgets", "node", node.Label, "widget", field.index)
			continue
		}
		if current, ok := toInt(node.Values[field.index]); ok && current == field.value {
			continue
		}
		changes = append(changes, Change{Node: node.Label, Widget: field.index, From: node.Values[field.index], To: field.value})
		node.Values[field.index] = field.value
	}
	return changes
}

// ApplyPrompt writes prompt into the text widget of a prompt target node.
func ApplyPrompt(node nodeView, target settings.PromptTarget, prompt string) []Change {
	if target.Index >= len(node.Values) {
		logger.Warn("Prompt target has too few widgets", "node", node.Label, "widget", target.Index)
		return nil
	}
	if current, ok := node.Values[target.Index].(string); ok && current == prompt {
		return nil
	}
	change := Change{Node: node.Label, Widget: target.Index, From: node.Values[target.Index], To: prompt}
	node.Values[target.Index] = prompt
	return []Change{change}
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}
