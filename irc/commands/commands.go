package commands

import (
	"context"
	"time"

	"presetbird/birdbase"
	"presetbird/image/comfyui"
	"presetbird/irc/state"
	"presetbird/logger"
	"presetbird/queue"
	"presetbird/text"
)

const textTimeout = 2 * time.Minute

type (
	// RenderFunc runs one render job to completion.
	RenderFunc func(ctx context.Context, job comfyui.Job) (*comfyui.Result, error)

	// UploadFunc publishes a rendered file and returns where it can be seen.
	UploadFunc func(ctx context.Context, file, description string) (string, error)

	Handler struct {
		Selections *birdbase.SelectionStore
		Queue      *queue.Queue
		Render     RenderFunc
		Upload     UploadFunc
		Text       text.Connector
	}
)

// Dispatch runs the command in s and reports whether it was one of ours.
func (h *Handler) Dispatch(s *state.State) bool {
	logger.Debug("Dispatching command", "action", s.Action(), "nick", s.Nick())

	switch s.Action() {
	case "ratios":
		h.ratios(s)
	case "presets":
		h.presets(s)
	case "resolution":
		h.resolution(s)
	case "render":
		h.render(s)
	case "workflows":
		h.workflows(s)
	case "queue":
		h.queueStatus(s)
	case "prompt":
		h.prompt(s)
	case "kontext":
		h.kontext(s)
	case "translate":
		h.translate(s)
	case "help":
		h.help(s)
	default:
		return false
	}
	return true
}
