package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"presetbird/extension"
	"presetbird/graph"
	"presetbird/helpers"
	"presetbird/image/comfyui"
	"presetbird/logger"
	"presetbird/settings"

	"github.com/google/uuid"
)

func runSync(args []string, config *settings.Config, out io.Writer) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	workflowFile := fs.String("workflow", "", "workflow JSON file")
	outFile := fs.String("out", "", "where to write the result, defaults to -workflow")
	ratio := fs.String("ratio", "", "aspect ratio to switch to")
	res := fs.String("resolution", "", "preset to select")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workflowFile == "" {
		return fmt.Errorf("sync: -workflow is required: %w", errUsage)
	}
	if *outFile == "" {
		*outFile = *workflowFile
	}

	workflow, err := comfyui.LoadWorkflow(*workflowFile)
	if err != nil {
		return err
	}

	report, err := comfyui.Reconcile(workflow, config.ComfyUi, comfyui.Request{Ratio: *ratio, Resolution: *res})
	if err != nil {
		return fmt.Errorf("failed to reconcile %s: %w", *workflowFile, err)
	}

	for _, change := range report.Changes {
		fmt.Fprintf(out, "%s[%d]: %v -> %v\n", change.Node, change.Widget, change.From, change.To)
	}
	fmt.Fprintf(out, "%s %s\n", report.Selection.Ratio, report.Selection.Resolution)

	if len(report.Changes) == 0 && *outFile == *workflowFile {
		return nil
	}
	return comfyui.SaveWorkflow(*outFile, workflow)
}

func runRender(ctx context.Context, args []string, config *settings.Config, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	workflow := fs.String("workflow", "", "workflow name")
	ratio := fs.String("ratio", "", "aspect ratio")
	res := fs.String("resolution", "", "preset to select")
	text := fs.String("prompt", "", "text for the prompt nodes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workflow == "" {
		return fmt.Errorf("render: -workflow is required (available: %s): %w",
			strings.Join(comfyui.GetWorkflows(config.ComfyUi), ", "), errUsage)
	}

	display, err := newDisplay(extension.DefaultRegistry(), out)
	if err != nil {
		return err
	}

	job := comfyui.Job{
		ID:       uuid.NewString(),
		Workflow: *workflow,
		Request:  comfyui.Request{Ratio: *ratio, Resolution: *res, Prompt: *text},
	}
	result, err := comfyui.Render(ctx, config.ComfyUi, job, display)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s in %s\n",
		result.Report.Selection.Ratio,
		result.Report.Selection.Resolution,
		helpers.HumanDuration(result.Elapsed))
	return nil
}

// newDisplay returns a callback that shows outputs through a ShowAnything
// node. The node is created once and reused for every call.
func newDisplay(registry *extension.Registry, out io.Writer) (func(name string, lines []string), error) {
	node, err := registry.CreateNode(extension.AddSuffix(extension.ShowAnythingClass), func(n *graph.Node) {
		n.AddWidget(&graph.Widget{Name: "anything", Type: graph.WidgetString})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create display node: %w", err)
	}

	return func(name string, lines []string) {
		registry.Executed(node, extension.ExecutedMessage{
			Node: node.ID,
			Text: []string{name, ":\n", strings.Join(lines, "\n")},
		})
		display := node.Widget(extension.DisplayWidget)
		if display == nil {
			logger.Warn("Display widget missing", "node", node.ID)
			return
		}
		fmt.Fprintln(out, display.Value)
	}, nil
}
