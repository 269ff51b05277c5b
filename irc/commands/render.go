package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"presetbird/birdbase"
	"presetbird/helpers"
	"presetbird/image/comfyui"
	"presetbird/irc/commands/help"
	"presetbird/irc/state"
	"presetbird/logger"
	"presetbird/queue"
	"presetbird/resolution"
	"presetbird/text/prompt"

	"github.com/google/uuid"
)

// render queues a workflow. The ratio and resolution come from the
// arguments, falling back to the sender's stored selection and then to what
// the workflow itself says. Words after the workflow name become the prompt.
func (h *Handler) render(s *state.State) {
	if s.GetBoolArg("help") || s.IsEmptyMessage() {
		s.Send(help.FindHelp("render", s.GetActionTrigger()))
		return
	}
	if h.Queue == nil || h.Render == nil {
		s.SendError("Rendering is not enabled")
		return
	}

	workflow, words, _ := strings.Cut(s.Message(), " ")
	if !comfyui.WorkflowExists(s.Config.ComfyUi, workflow) {
		s.SendError(fmt.Sprintf("Unknown workflow %s, try %sworkflows", workflow, s.GetActionTrigger()))
		return
	}

	enhance := s.GetBoolArg("enhance")
	if enhance && h.Text == nil {
		s.SendError("Prompt generation is not enabled")
		return
	}
	seed, _ := s.GetIntArg("seed", 0)

	req, err := h.renderRequest(s)
	if err != nil {
		s.SendError(err.Error())
		return
	}
	req.Prompt = strings.TrimSpace(words)

	job := comfyui.Job{
		ID:       uuid.NewString(),
		Workflow: workflow,
		Request:  req,
	}

	msg, err := h.Queue.Enqueue(queue.Item{
		ID:    job.ID,
		Name:  workflow,
		Owner: s.Nick(),
		Run: func(ctx context.Context) {
			if enhance {
				enhanced, err := h.enhancePrompt(ctx, job.Request.Prompt, int64(seed))
				if err != nil {
					logger.Error("Prompt enhancement failed", "job", job.ID, "error", err)
					s.SendError(fmt.Sprintf("Could not enhance the prompt: %s", err))
					return
				}
				s.Send("✨ " + enhanced)
				job.Request.Prompt = enhanced
			}
			h.runRender(ctx, s, job)
		},
	})
	if err != nil {
		s.SendError(err.Error())
		return
	}
	if msg != "" {
		s.SendInfo(msg)
	}
}

func (h *Handler) renderRequest(s *state.State) (comfyui.Request, error) {
	var req comfyui.Request

	ratio, _ := s.GetStringArg("ratio", "")
	explicit, _ := s.GetStringArg("resolution", "")

	if ratio != "" && !resolution.IsSupported(ratio) {
		return req, fmt.Errorf("%s is not a supported ratio, try %sratios", ratio, s.GetActionTrigger())
	}

	key := s.UserCacheKey(selectionKey)

	if ratio != "" && explicit != "" {
		label, err := matchPreset(ratio, explicit)
		if err != nil {
			return req, err
		}
		sel := resolution.Selection{Ratio: ratio, Resolution: label}
		if h.Selections != nil {
			if err := h.Selections.Save(key, sel); err != nil {
				logger.Error("Failed to save selection", "key", key, "error", err)
				return req, errors.New("could not update your selection")
			}
		}
		return comfyui.Request{Ratio: sel.Ratio, Resolution: sel.Resolution}, nil
	}

	if h.Selections == nil {
		if explicit != "" {
			return req, errors.New("--resolution needs --ratio")
		}
		return comfyui.Request{Ratio: ratio}, nil
	}

	if ratio != "" {
		_, sel, err := h.Selections.Reconcile(key, ratio)
		if err != nil {
			logger.Error("Failed to reconcile selection", "key", key, "error", err)
			return req, errors.New("could not update your selection")
		}
		return comfyui.Request{Ratio: sel.Ratio, Resolution: sel.Resolution}, nil
	}

	sel, err := h.Selections.Load(key)
	if errors.Is(err, birdbase.ErrNoSelection) {
		if explicit != "" {
			return req, errors.New("--resolution needs --ratio")
		}
		return req, nil
	}
	if err != nil {
		logger.Error("Failed to load selection", "key", key, "error", err)
		return req, errors.New("could not load your selection")
	}

	if explicit != "" {
		label, err := matchPreset(sel.Ratio, explicit)
		if err != nil {
			return req, err
		}
		sel.Resolution = label
	}
	return comfyui.Request{Ratio: sel.Ratio, Resolution: sel.Resolution}, nil
}

// enhancePrompt expands the render prompt with the language model. An empty
// prompt asks for a random one.
func (h *Handler) enhancePrompt(ctx context.Context, input string, seed int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, textTimeout)
	defer cancel()
	return prompt.Generate(ctx, h.Text, input, prompt.ModeAdvanced, seed)
}

func (h *Handler) runRender(ctx context.Context, s *state.State, job comfyui.Job) {
	s.Send(fmt.Sprintf("🎨 Rendering {b}%s{b} for %s", job.Workflow, s.Nick()))

	result, err := h.Render(ctx, job)
	if err != nil {
		logger.Error("Render failed", "job", job.ID, "workflow", job.Workflow, "error", err)
		s.SendError(fmt.Sprintf("%s failed: %s", job.Workflow, err))
		return
	}

	sel := result.Report.Selection
	description := fmt.Sprintf("%s %s %s", job.Workflow, sel.Ratio, sel.Resolution)

	files := make([]string, 0, len(result.Files))
	for _, file := range result.Files {
		if h.Upload == nil {
			files = append(files, filepath.Base(file))
			continue
		}
		url, err := h.Upload(ctx, file, description)
		if err != nil {
			logger.Error("Upload failed", "job", job.ID, "file", file, "error", err)
			files = append(files, filepath.Base(file))
			continue
		}
		files = append(files, url)
	}

	for _, msg := range result.Text {
		s.Send("📝 " + strings.Join(msg.Text, " "))
	}

	s.SendSuccess(fmt.Sprintf("%s: %s %s at %s in %s",
		s.Nick(),
		strings.Join(files, ", "),
		sel.Ratio,
		sel.Resolution,
		helpers.HumanDuration(result.Elapsed)))
}
