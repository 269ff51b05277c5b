package help

import (
	"fmt"
	"strings"
)

type (
	Help struct {
		Name      string
		Help      string
		Arguments []Arguments
		Queueable bool
		Example   string
	}

	Arguments struct {
		Argument string
		Help     string
		Values   string
	}
)

func Commands() []Help {
	return []Help{
		{
			Name: "ratios",
			Help: "Lists the supported aspect ratios.",
		},
		{
			Name: "presets",
			Help: "Lists the six resolution presets of a ratio, smallest first.",
			Arguments: []Arguments{
				{Argument: "<ratio>", Help: "Aspect ratio such as 16:9.", Values: "see ratios"},
			},
			Example: "presets 16:9",
		},
		{
			Name: "resolution",
			Help: "Moves your saved selection to a ratio, keeping your resolution when it is still offered.",
			Arguments: []Arguments{
				{Argument: "<ratio>", Help: "Aspect ratio to switch to.", Values: "see ratios"},
				{Argument: "--resolution", Help: "Preset to select, as listed by presets.", Values: "768x432"},
				{Argument: "--forget", Help: "Forget your saved selection."},
			},
			Example: "resolution 16:9 --resolution=\"1024x576 ( 0.56MP )\"",
		},
		{
			Name: "render",
			Help: "Queues a ComfyUI workflow with your selected resolution.",
			Arguments: []Arguments{
				{Argument: "<workflow>", Help: "Workflow name.", Values: "see workflows"},
				{Argument: "--ratio", Help: "Aspect ratio for this render.", Values: "see ratios"},
				{Argument: "--resolution", Help: "Preset for this render.", Values: ""},
				{Argument: "[prompt]", Help: "Text for the workflow's prompt node."},
				{Argument: "--enhance", Help: "Let the language model expand the prompt first."},
				{Argument: "--seed", Help: "Seed for --enhance.", Values: "0"},
			},
			Queueable: true,
			Example:   "render sdxl a heron in fog --ratio=9:16 --enhance",
		},
		{
			Name: "prompt",
			Help: "Writes an image prompt from a description, or a random one.",
			Arguments: []Arguments{
				{Argument: "[description]", Help: "What the image should show, in any language."},
				{Argument: "--mode", Help: "simple only translates, advanced expands.", Values: "simple, advanced"},
				{Argument: "--seed", Help: "Seed for repeatable prompts.", Values: "0"},
			},
			Example: "prompt --mode=simple un héron dans la brume",
		},
		{
			Name: "kontext",
			Help: "Writes an image editing instruction for an image you describe.",
			Arguments: []Arguments{
				{Argument: "[description]", Help: "Description of the image to edit."},
				{Argument: "--preset", Help: "Kind of edit.", Values: "see kontext --presets"},
				{Argument: "--instruction", Help: "Extra edit instruction."},
				{Argument: "--presets", Help: "Lists the presets."},
			},
			Example: "kontext --preset=relight a cat on a sofa",
		},
		{
			Name: "translate",
			Help: "Translates text with the language model.",
			Arguments: []Arguments{
				{Argument: "<text>", Help: "Text to translate."},
				{Argument: "--to", Help: "Target language code.", Values: "zh, en, es, fr, de, ja, ko, ru, it, pt"},
			},
			Example: "translate --to=ja good morning",
		},
		{
			Name: "workflows",
			Help: "Lists the workflows that can be rendered.",
		},
		{
			Name: "queue",
			Help: "Shows what is rendering and what is waiting.",
		},
		{
			Name: "help",
			Help: "Displays help information for available commands.",
			Arguments: []Arguments{
				{Argument: "[command]", Help: "Command to describe."},
			},
		},
	}
}

func Find(name string) (Help, bool) {
	for _, h := range Commands() {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return Help{}, false
}

func Names() []string {
	var names []string
	for _, h := range Commands() {
		names = append(names, h.Name)
	}
	return names
}

// Format renders one help entry for IRC.
func (h Help) Format(trigger string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{b}%s%s{b}: %s", trigger, h.Name, h.Help)
	for _, arg := range h.Arguments {
		fmt.Fprintf(&b, " {b}%s{b} %s", arg.Argument, arg.Help)
	}
	if h.Example != "" {
		fmt.Fprintf(&b, " Example: %s%s", trigger, h.Example)
	}
	return b.String()
}

func FindHelp(name, trigger string) string {
	h, ok := Find(name)
	if !ok {
		return fmt.Sprintf("Unknown command %s%s, try %shelp", trigger, name, trigger)
	}
	return h.Format(trigger)
}
