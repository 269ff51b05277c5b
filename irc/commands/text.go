package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"presetbird/irc/commands/help"
	"presetbird/irc/state"
	"presetbird/logger"
	"presetbird/text/prompt"
)

// textReply runs a language model call and sends the answer back.
func (h *Handler) textReply(s *state.State, name string, call func(ctx context.Context) (string, error)) {
	if h.Text == nil {
		s.SendError("Prompt generation is not enabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), textTimeout)
	defer cancel()

	out, err := call(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		err = errors.New("the model took too long")
	}
	if err != nil {
		logger.Error("Text request failed", "command", name, "nick", s.Nick(), "error", err)
		s.SendError(fmt.Sprintf("%s failed: %s", name, err))
		return
	}
	if strings.TrimSpace(out) == "" {
		s.SendError(name + " returned nothing")
		return
	}
	s.Send(out)
}

// prompt writes an image prompt from a description, or a random one when
// no description is given.
func (h *Handler) prompt(s *state.State) {
	if s.GetBoolArg("help") {
		s.Send(help.FindHelp("prompt", s.GetActionTrigger()))
		return
	}

	modeArg, _ := s.GetStringArg("mode", "")
	mode, err := prompt.ParseMode(modeArg)
	if err != nil {
		s.SendError(fmt.Sprintf("Unknown mode %s, use simple or advanced", modeArg))
		return
	}
	seed, _ := s.GetIntArg("seed", 0)

	h.textReply(s, "prompt", func(ctx context.Context) (string, error) {
		return prompt.Generate(ctx, h.Text, s.Message(), mode, int64(seed))
	})
}

// kontext writes an editing instruction for an image described in the
// message.
func (h *Handler) kontext(s *state.State) {
	if s.GetBoolArg("help") {
		s.Send(help.FindHelp("kontext", s.GetActionTrigger()))
		return
	}
	if s.GetBoolArg("presets") {
		var names []string
		for _, p := range prompt.KontextPresets() {
			names = append(names, p.Slug())
		}
		s.Send("🖌️ Kontext presets: " + strings.Join(names, ", "))
		return
	}

	preset, _ := s.GetStringArg("preset", prompt.DefaultKontextPreset)
	if _, err := prompt.FindKontextPreset(preset); err != nil {
		s.SendError(fmt.Sprintf("Unknown preset %s, try %skontext --presets", preset, s.GetActionTrigger()))
		return
	}
	instruction, _ := s.GetStringArg("instruction", "")

	h.textReply(s, "kontext", func(ctx context.Context) (string, error) {
		return prompt.Kontext(ctx, h.Text, s.Message(), instruction, preset)
	})
}

func (h *Handler) translate(s *state.State) {
	if s.GetBoolArg("help") || s.IsEmptyMessage() {
		s.Send(help.FindHelp("translate", s.GetActionTrigger()))
		return
	}

	language, _ := s.GetStringArg("to", prompt.DefaultLanguage)
	h.textReply(s, "translate", func(ctx context.Context) (string, error) {
		return prompt.Translate(ctx, h.Text, s.Message(), language)
	})
}
