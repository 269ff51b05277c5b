package commands

import (
	"fmt"
	"strings"

	"presetbird/helpers"
	"presetbird/image/comfyui"
	"presetbird/irc/commands/help"
	"presetbird/irc/state"
)

func (h *Handler) help(s *state.State) {
	trigger := s.GetActionTrigger()
	if s.IsEmptyMessage() {
		s.Send("Commands: " + helpers.JoinBold(help.Names()) + fmt.Sprintf(" | %shelp <command> for details", trigger))
		return
	}
	name := strings.TrimPrefix(strings.Fields(s.Message())[0], trigger)
	if _, ok := help.Find(name); !ok {
		s.SendError(help.FindHelp(name, trigger))
		return
	}
	s.Send(help.FindHelp(name, trigger))
}

func (h *Handler) workflows(s *state.State) {
	workflows := comfyui.GetWorkflows(s.Config.ComfyUi)
	if len(workflows) == 0 {
		s.SendInfo("No workflows are available")
		return
	}
	s.Send("📸 Workflows: " + helpers.JoinBold(workflows))
}

func (h *Handler) queueStatus(s *state.State) {
	if h.Queue == nil {
		s.SendInfo("Rendering is not enabled")
		return
	}

	processing := h.Queue.ProcessingName()
	waiting := h.Queue.Names()

	switch {
	case processing == "" && len(waiting) == 0:
		s.Send("Queue Status: ⚪ Empty")
	case len(waiting) == 0:
		s.Send(fmt.Sprintf("Queue Status: 🟢 Processing (%s)", processing))
	case processing == "":
		s.Send(fmt.Sprintf("Queue Status: 🟡 %d queued (%s)", len(waiting), strings.Join(waiting, ", ")))
	default:
		s.Send(fmt.Sprintf("Queue Status: 🟢 Processing (%s) | 🟡 %d queued (%s)", processing, len(waiting), strings.Join(waiting, ", ")))
	}
}
