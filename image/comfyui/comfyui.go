package comfyui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"presetbird/http/request"
	"presetbird/logger"
	"presetbird/settings"

	"github.com/richinsley/comfy2go/client"
	"github.com/schollz/progressbar/v3"
)

func freeVram(ctx context.Context, clientAddr string, clientPort int) error {
	free := request.Request{
		Url:     fmt.Sprintf("http://%s:%d/free", clientAddr, clientPort),
		Method:  http.MethodPost,
		Payload: map[string]bool{"unload_models": true, "free_memory": true},
	}
	if err := free.Call(ctx, nil); err != nil {
		return fmt.Errorf("could not free vram: %w", err)
	}

	logger.Info("Successfully sent free VRAM request to ComfyUI")
	return nil
}

// Render loads a workflow through the ComfyUI client, writes the requested
// preset and prompt into the nodes of the API group, queues it and saves
// every output file. Text outputs are read back from the prompt history.
// display, when set, receives each text output and then the saved file
// names once the prompt has finished.
func Render(ctx context.Context, config settings.ComfyUiConfig, job Job, display func(name string, files []string)) (*Result, error) {
	log := logger.Service("comfyui").With("job", job.ID, "workflow", job.Workflow)
	started := time.Now()

	workflowFile := config.WorkflowPath(job.Workflow)
	if strings.Contains(job.Workflow, "..") || !WorkflowExists(config, job.Workflow) {
		return nil, fmt.Errorf("unknown workflow %q", job.Workflow)
	}

	if config.FreeVram {
		defer func() {
			if err := freeVram(context.WithoutCancel(ctx), config.Url, config.Port); err != nil {
				log.Error("Error freeing VRAM", "error", err)
			}
		}()
	}

	c := client.NewComfyClient(config.Url, config.Port, nil)
	if !c.IsInitialized() {
		if err := c.Init(); err != nil {
			return nil, fmt.Errorf("error initializing client: %w", err)
		}
	}

	graph, _, err := c.NewGraphFromJsonFile(workflowFile)
	if err != nil {
		return nil, fmt.Errorf("error loading graph JSON: %w", err)
	}

	group := graph.GetGroupWithTitle(config.APIGroup)
	if group == nil {
		return nil, fmt.Errorf("workflow %s has no %q group", job.Workflow, config.APIGroup)
	}

	var views []nodeView
	for _, node := range graph.GetNodesInGroup(group) {
		values, ok := node.WidgetValues.([]interface{})
		if !ok {
			continue
		}
		views = append(views, nodeView{
			Label:  node.Title,
			Type:   node.Type,
			Title:  node.Title,
			Values: values,
		})
	}

	report, err := reconcileNodes(views, config, job.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to apply resolution: %w", err)
	}
	for _, change := range report.Changes {
		log.Debug("Set widget value", "node", change.Node, "widget", change.Widget, "from", change.From, "to", change.To)
	}
	log.Info("Resolution applied", "ratio", report.Selection.Ratio, "resolution", report.Selection.Resolution)

	item, err := c.QueuePrompt(graph)
	if err != nil {
		return nil, fmt.Errorf("failed to queue prompt: %w", err)
	}

	result := &Result{Report: report}
	var bar *progressbar.ProgressBar
	var currentNodeTitle string
	var promptID string

	for continueLoop := true; continueLoop; {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case msg := <-item.Messages:
			switch msg.Type {
			case "started":
				qm := msg.ToPromptMessageStarted()
				promptID = qm.PromptID
				log.Info("Start executing prompt", "prompt_id", qm.PromptID)
			case "executing":
				bar = nil
				qm := msg.ToPromptMessageExecuting()
				currentNodeTitle = qm.Title
				log.Debug("Executing node", "node_id", qm.NodeID)
			case "progress":
				qm := msg.ToPromptMessageProgress()
				if bar == nil {
					bar = progressbar.Default(int64(qm.Max), currentNodeTitle)
				}
				_ = bar.Set(qm.Value)
			case "stopped":
				qm := msg.ToPromptMessageStopped()
				if qm.Exception != nil {
					return nil, fmt.Errorf("execution stopped with exception: %s: %s", qm.Exception.ExceptionType, qm.Exception.ExceptionMessage)
				}
				continueLoop = false
			case "data":
				qm := msg.ToPromptMessageData()
				for k, v := range qm.Data {
					if k != "images" && k != "gifs" && k != "audio" {
						continue
					}
					for _, output := range v {
						data, err := c.GetImage(output)
						if err != nil {
							return nil, fmt.Errorf("failed to get output %s: %w", output.Filename, err)
						}
						path := filepath.Join(config.OutputDir, filepath.Base(output.Filename))
						if err := os.WriteFile(path, *data, 0o644); err != nil {
							return nil, fmt.Errorf("failed to write output %s: %w", path, err)
						}
						result.Files = append(result.Files, path)
					}
				}
			}
		}
	}

	if promptID != "" {
		text, err := textOutputs(ctx, config.Url, config.Port, promptID)
		if err != nil {
			log.Warn("Text outputs unavailable", "error", err)
		}
		result.Text = text
	}

	result.Elapsed = time.Since(started)
	if len(result.Files) == 0 && len(result.Text) == 0 {
		return nil, errors.New("error processing comfyui: no output received")
	}
	if display != nil {
		for _, msg := range result.Text {
			display(job.Workflow+" #"+msg.Node, msg.Text)
		}
		if len(result.Files) > 0 {
			display(job.Workflow, result.Files)
		}
	}
	log.Info("Render finished", "files", len(result.Files), "text", len(result.Text), "elapsed", result.Elapsed)
	return result, nil
}
