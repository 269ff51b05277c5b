package comfyui

import (
	"time"

	"presetbird/extension"
	"presetbird/resolution"
)

type (
	// Workflow is a decoded ComfyUI workflow in the editor's save format.
	Workflow map[string]interface{}

	// Request overrides what a workflow's aspect ratio node says and, with
	// Prompt, what its prompt nodes say. Empty fields keep the saved value.
	Request struct {
		Ratio      string
		Resolution string
		Prompt     string
	}

	// Change records one widget value that was rewritten.
	Change struct {
		Node   string
		Widget int
		From   interface{}
		To     interface{}
	}

	Report struct {
		Selection resolution.Selection
		Preset    resolution.Preset
		Changes   []Change
	}

	Job struct {
		ID       string
		Workflow string
		Request  Request
	}

	// Result holds the saved output files and the text outputs of nodes
	// like ShowAnything, in node id order.
	Result struct {
		Report  Report
		Files   []string
		Text    []extension.ExecutedMessage
		Elapsed time.Duration
	}

	// nodeView is the part of a node the reconciler needs, shared by raw JSON
	// workflows and graphs loaded through the client.
	nodeView struct {
		Label  string
		Type   string
		Title  string
		Values []interface{}
	}
)
