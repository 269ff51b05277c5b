package commands

import (
	"errors"
	"fmt"
	"strings"

	"presetbird/birdbase"
	"presetbird/helpers"
	"presetbird/irc/commands/help"
	"presetbird/irc/state"
	"presetbird/logger"
	"presetbird/resolution"
)

const selectionKey = "_resolution"

func (h *Handler) ratios(s *state.State) {
	s.Send("📐 Supported ratios: " + helpers.JoinBold(resolution.Ratios()))
}

func (h *Handler) presets(s *state.State) {
	if s.GetBoolArg("help") || s.IsEmptyMessage() {
		s.Send(help.FindHelp("presets", s.GetActionTrigger()))
		return
	}

	ratio := s.Message()
	presets := resolution.PresetsFor(ratio)
	if !resolution.IsSupported(ratio) {
		s.SendInfo(fmt.Sprintf("%s is not a supported ratio, showing %s: %s",
			ratio, resolution.DefaultRatio, strings.Join(presets, ", ")))
		return
	}
	s.Send(fmt.Sprintf("📐 {b}%s{b}: %s", ratio, strings.Join(presets, ", ")))
}

// resolution moves the sender's stored selection to a new ratio. An
// explicit --resolution replaces the stored one before reconciling.
func (h *Handler) resolution(s *state.State) {
	if s.GetBoolArg("help") {
		s.Send(help.FindHelp("resolution", s.GetActionTrigger()))
		return
	}
	if h.Selections == nil {
		s.SendError("Selections are not enabled")
		return
	}

	key := s.UserCacheKey(selectionKey)
	if s.GetBoolArg("forget") {
		if err := h.Selections.Forget(key); err != nil {
			logger.Error("Failed to forget selection", "key", key, "error", err)
			s.SendError("Could not forget your selection")
			return
		}
		s.SendSuccess("Your selection was forgotten")
		return
	}

	previous, err := h.Selections.Load(key)
	if err != nil && !errors.Is(err, birdbase.ErrNoSelection) {
		logger.Error("Failed to load selection", "key", key, "error", err)
		s.SendError("Could not load your selection")
		return
	}

	if s.IsEmptyMessage() {
		if errors.Is(err, birdbase.ErrNoSelection) {
			s.SendInfo(fmt.Sprintf("No selection yet, try %sresolution <ratio>", s.GetActionTrigger()))
			return
		}
		s.Send(formatSelection(previous))
		return
	}

	ratio := s.Message()
	if !resolution.IsSupported(ratio) {
		s.SendError(fmt.Sprintf("%s is not a supported ratio, try %sratios", ratio, s.GetActionTrigger()))
		return
	}

	if explicit, ok := s.GetStringArg("resolution", ""); ok && explicit != "" {
		label, err := matchPreset(ratio, explicit)
		if err != nil {
			s.SendError(err.Error())
			return
		}
		previous.Resolution = label
	}

	_, next := previous.Reconcile(ratio)
	if err := h.Selections.Save(key, next); err != nil {
		logger.Error("Failed to save selection", "key", key, "error", err)
		s.SendError("Could not save your selection")
		return
	}
	s.SendSuccess(formatSelection(next))
}

// matchPreset accepts a full preset label or just its "WxH" part.
func matchPreset(ratio, value string) (string, error) {
	wanted, err := resolution.ParsePreset(value)
	if err != nil {
		return "", err
	}
	for _, label := range resolution.PresetsFor(ratio) {
		preset, err := resolution.ParsePreset(label)
		if err == nil && preset == wanted {
			return label, nil
		}
	}
	return "", fmt.Errorf("%dx%d is not a preset of %s", wanted.Width, wanted.Height, ratio)
}

func formatSelection(sel resolution.Selection) string {
	return fmt.Sprintf("📐 {b}%s{b} at {b}%s{b}", sel.Ratio, sel.Resolution)
}
